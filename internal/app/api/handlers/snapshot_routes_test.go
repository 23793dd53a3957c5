package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func routeSet(r *gin.Engine) map[string]bool {
	out := make(map[string]bool)
	for _, rt := range r.Routes() {
		out[rt.Method+" "+rt.Path] = true
	}
	return out
}

func TestRegisterSnapshotRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterSnapshotRoutes(g, nil)

	routes := routeSet(r)
	require.True(t, routes["GET /api/v1/snapshots"])
	require.True(t, routes["GET /api/v1/snapshots/range"])
	require.True(t, routes["GET /api/v1/snapshots/comparativo"])
	require.True(t, routes["GET /api/v1/snapshots/export"])
}

func TestRegisterAdminSnapshotRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1/admin")
	RegisterAdminSnapshotRoutes(g, nil, zap.NewNop().Sugar())

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/admin/snapshots/generate"])
	require.True(t, routes["POST /api/v1/admin/snapshots/list"])
}
