package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/grupomv/mapaventas/docs"
	"github.com/grupomv/mapaventas/internal/app/api/handlers"
	mw "github.com/grupomv/mapaventas/internal/app/api/middleware"
	snapsvc "github.com/grupomv/mapaventas/internal/app/service/snapshot"
	cfgpkg "github.com/grupomv/mapaventas/pkg/config"
	metrics "github.com/grupomv/mapaventas/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Trace middleware is global; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(r *gin.Engine, log *zap.SugaredLogger, cfg *cfgpkg.Config, snaps *snapsvc.Service) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authenticated query APIs: 30 requests per minute per caller
	apiV1 := r.Group("/api/v1")
	apiV1.Use(
		mw.AuthMiddleware(cfg),
		mw.RequestLoggerMiddleware(log),
		mw.AccessLogMiddleware(),
		mw.RateLimitMiddleware(30, time.Minute),
	)
	handlers.RegisterSnapshotRoutes(apiV1, snaps)

	// Admin APIs; the manual trigger carries its own 1-per-minute limit
	admin := r.Group("/api/v1/admin")
	admin.Use(
		mw.AuthMiddleware(cfg),
		mw.RequestLoggerMiddleware(log),
		mw.AccessLogMiddleware(),
		mw.RequireRoles(cfg.Auth.AdminRoles),
		mw.RateLimitMiddleware(30, time.Minute),
	)
	handlers.RegisterAdminSnapshotRoutes(admin, snaps, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
