package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grupomv/mapaventas/internal/app/api/middleware"
	snapsvc "github.com/grupomv/mapaventas/internal/app/service/snapshot"
	"github.com/grupomv/mapaventas/internal/models"
	"github.com/grupomv/mapaventas/pkg/logctx"
	"github.com/grupomv/mapaventas/pkg/response"
	"go.uber.org/zap"
)

// SnapshotListResponse is the paginated range listing payload.
type SnapshotListResponse struct {
	Items      []*snapsvc.SnapshotView `json:"items"`
	Pagination response.Pagination     `json:"pagination"`
}

// ScanSnapshotsResponse is the admin listing payload.
type ScanSnapshotsResponse struct {
	Items []*snapsvc.SnapshotView `json:"items"`
	Total int64                   `json:"total"`
}

func replyValidation(c *gin.Context, err error) bool {
	if errors.Is(err, snapsvc.ErrValidation) {
		c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
		return true
	}
	return false
}

// @Summary      Trigger snapshot generation (Admin)
// @Description  Synchronously runs snapshot generation for all active projects and returns the run summary, including partial successes.
// @Tags         Snapshots
// @Produce      json
// @Param        tipo  query  string  true  "Snapshot kind"  Enums(DIARIO, MENSUAL)
// @Success      200  {object}  handlers.RespRunSummary
// @Router       /api/v1/admin/snapshots/generate [post]
func ApiGenerateSnapshots(svc *snapsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tipo := models.SnapshotTipo(c.Query("tipo"))
		if !tipo.Valid() {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "tipo must be DIARIO or MENSUAL"))
			return
		}
		summary, err := svc.GenerateSnapshots(c.Request.Context(), tipo, snapsvc.TriggerManual)
		if err != nil {
			logctx.FromGin(c, log).Errorw("manual snapshot run failed", "err", err)
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

// @Summary      Snapshots by date
// @Description  Returns every project snapshot recorded for the given date. Monetary fields are omitted for callers without a finance role.
// @Tags         Snapshots
// @Produce      json
// @Param        fecha  query  string  true  "Date, YYYY-MM-DD"
// @Success      200  {object}  handlers.RespSnapshotViews
// @Router       /api/v1/snapshots [get]
func ApiSnapshotsPorFecha(svc *snapsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		fecha, err := svc.ParseFecha(c.Query("fecha"))
		if err != nil {
			replyValidation(c, err)
			return
		}
		views, err := svc.PorFecha(c.Request.Context(), fecha)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		authorized := svc.FinanceAuthorized(middleware.RolesFrom(c))
		c.JSON(http.StatusOK, response.OKT(snapsvc.RedactViews(views, authorized)))
	}
}

// @Summary      Snapshots in a date range
// @Description  Returns snapshots between desde and hasta inclusive, date ascending, paginated. Limit is capped at 100.
// @Tags         Snapshots
// @Produce      json
// @Param        desde  query  string  true   "Start date, YYYY-MM-DD"
// @Param        hasta  query  string  true   "End date, YYYY-MM-DD"
// @Param        page   query  int     false  "Page, starting at 1"
// @Param        limit  query  int     false  "Page size, max 100"
// @Success      200  {object}  handlers.RespSnapshotList
// @Router       /api/v1/snapshots/range [get]
func ApiSnapshotsPorRango(svc *snapsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		desde, err := svc.ParseFecha(c.Query("desde"))
		if err != nil {
			replyValidation(c, err)
			return
		}
		hasta, err := svc.ParseFecha(c.Query("hasta"))
		if err != nil {
			replyValidation(c, err)
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

		views, pagination, err := svc.PorRango(c.Request.Context(), desde, hasta, page, limit)
		if err != nil {
			if replyValidation(c, err) {
				return
			}
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		authorized := svc.FinanceAuthorized(middleware.RolesFrom(c))
		c.JSON(http.StatusOK, response.OKT(&SnapshotListResponse{
			Items:      snapsvc.RedactViews(views, authorized),
			Pagination: pagination,
		}))
	}
}

// @Summary      Two-period comparison
// @Description  Compares snapshots of two dates per project: current counts, previous counts (or null), and the count deltas.
// @Tags         Snapshots
// @Produce      json
// @Param        mesActual    query  string  true  "Current period date, YYYY-MM-DD"
// @Param        mesAnterior  query  string  true  "Previous period date, YYYY-MM-DD"
// @Success      200  {object}  handlers.RespComparativo
// @Router       /api/v1/snapshots/comparativo [get]
func ApiSnapshotsComparativo(svc *snapsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual, err := svc.ParseFecha(c.Query("mesActual"))
		if err != nil {
			replyValidation(c, err)
			return
		}
		anterior, err := svc.ParseFecha(c.Query("mesAnterior"))
		if err != nil {
			replyValidation(c, err)
			return
		}
		res, err := svc.Comparativo(c.Request.Context(), actual, anterior)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		authorized := svc.FinanceAuthorized(middleware.RolesFrom(c))
		c.JSON(http.StatusOK, response.OKT(snapsvc.RedactComparativo(res, authorized)))
	}
}

// @Summary      Export snapshots as XLSX
// @Description  Downloads one day's snapshots as an Excel workbook. Monetary columns require a finance role.
// @Tags         Snapshots
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        fecha  query  string  true  "Date, YYYY-MM-DD"
// @Success      200  {file}  binary
// @Router       /api/v1/snapshots/export [get]
func ApiSnapshotsExport(svc *snapsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		fecha, err := svc.ParseFecha(c.Query("fecha"))
		if err != nil {
			replyValidation(c, err)
			return
		}
		authorized := svc.FinanceAuthorized(middleware.RolesFrom(c))
		data, err := svc.ExportXLSX(c.Request.Context(), fecha, authorized)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		filename := "snapshots_" + fecha.Format(time.DateOnly) + ".xlsx"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	}
}

// @Summary      List snapshots (Admin)
// @Description  Filterable, sortable listing over snapshot history.
// @Tags         Snapshots
// @Accept       json
// @Produce      json
// @Param        request body snapshot.ScanRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespScanSnapshots
// @Router       /api/v1/admin/snapshots/list [post]
func ApiScanSnapshots(svc *snapsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req snapsvc.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		views, total, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		authorized := svc.FinanceAuthorized(middleware.RolesFrom(c))
		c.JSON(http.StatusOK, response.OKT(&ScanSnapshotsResponse{
			Items: snapsvc.RedactViews(views, authorized),
			Total: total,
		}))
	}
}

// RegisterSnapshotRoutes mounts the authenticated query endpoints.
func RegisterSnapshotRoutes(r gin.IRouter, svc *snapsvc.Service) {
	r.GET("/snapshots", ApiSnapshotsPorFecha(svc))
	r.GET("/snapshots/range", ApiSnapshotsPorRango(svc))
	r.GET("/snapshots/comparativo", ApiSnapshotsComparativo(svc))
	r.GET("/snapshots/export", ApiSnapshotsExport(svc))
}

// RegisterAdminSnapshotRoutes mounts the admin-only endpoints. Generation is
// rate limited to one request per minute on top of the group limit.
func RegisterAdminSnapshotRoutes(r gin.IRouter, svc *snapsvc.Service, log *zap.SugaredLogger) {
	r.POST("/snapshots/generate", middleware.RateLimitMiddleware(1, time.Minute), ApiGenerateSnapshots(svc, log))
	r.POST("/snapshots/list", ApiScanSnapshots(svc))
}
