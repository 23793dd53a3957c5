package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/grupomv/mapaventas/internal/models"
	"github.com/grupomv/mapaventas/pkg/response"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 100
)

// ErrValidation marks caller mistakes (bad dates, inverted ranges) that are
// rejected before any data access.
var ErrValidation = errors.New("validation error")

// ParseFecha parses an ISO YYYY-MM-DD date and normalizes it to midnight in
// the reference timezone.
func (s *Service) ParseFecha(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: missing date parameter", ErrValidation)
	}
	t, err := time.ParseInLocation(time.DateOnly, v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, v)
	}
	return t, nil
}

// SnapshotView is the query-layer representation of one snapshot row.
// Monetary fields are pointers so redaction can drop them from the payload.
type SnapshotView struct {
	ID             string              `json:"id"`
	FechaSnapshot  string              `json:"fecha_snapshot"`
	Tipo           models.SnapshotTipo `json:"tipo"`
	ProyectoID     *string             `json:"proyecto_id"`
	ProyectoNombre string              `json:"proyecto_nombre"`
	TotalUnidades  int                 `json:"total_unidades"`
	Disponibles    int                 `json:"disponibles"`
	Reservadas     int                 `json:"reservadas"`
	Vendidas       int                 `json:"vendidas"`
	NoDisponibles  int                 `json:"no_disponibles"`
	ValorStockUSD  *decimal.Decimal    `json:"valor_stock_usd,omitempty"`
	M2TotalesStock *decimal.Decimal    `json:"m2_totales_stock,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

func (s *Service) toViews(ctx context.Context, rows []*models.Snapshot) ([]*SnapshotView, error) {
	ids := lo.FilterMap(rows, func(r *models.Snapshot, _ int) (string, bool) {
		if r.ProyectoID == nil {
			return "", false
		}
		return *r.ProyectoID, true
	})
	names, err := s.inv.ProjectNames(ctx, lo.Uniq(ids))
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r *models.Snapshot, _ int) *SnapshotView {
		v := &SnapshotView{
			ID:            r.ID,
			FechaSnapshot: r.FechaSnapshot.Format(time.DateOnly),
			Tipo:          r.Tipo,
			ProyectoID:    r.ProyectoID,
			TotalUnidades: r.TotalUnidades,
			Disponibles:   r.Disponibles,
			Reservadas:    r.Reservadas,
			Vendidas:      r.Vendidas,
			NoDisponibles: r.NoDisponibles,
			CreatedAt:     r.CreatedAt,
		}
		valor := r.ValorStockUSD
		m2 := r.M2TotalesStock
		v.ValorStockUSD = &valor
		v.M2TotalesStock = &m2
		if r.ProyectoID != nil {
			v.ProyectoNombre = names[*r.ProyectoID]
		}
		return v
	}), nil
}

// PorFecha returns every snapshot recorded for the given calendar date,
// newest-created first, enriched with project names.
func (s *Service) PorFecha(ctx context.Context, fecha time.Time) ([]*SnapshotView, error) {
	rows, err := s.store.ByFecha(ctx, s.Midnight(fecha))
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, rows)
}

// PorRango returns snapshots between desde and hasta inclusive, date
// ascending, with a pagination envelope. Page values below 1 are clamped to 1
// and the limit is capped at 100 (also the default).
func (s *Service) PorRango(ctx context.Context, desde, hasta time.Time, page, limit int) ([]*SnapshotView, response.Pagination, error) {
	desde, hasta = s.Midnight(desde), s.Midnight(hasta)
	if desde.After(hasta) {
		return nil, response.Pagination{}, fmt.Errorf("%w: desde is after hasta", ErrValidation)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	rows, total, err := s.store.ByRango(ctx, desde, hasta, (page-1)*limit, limit)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	views, err := s.toViews(ctx, rows)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return views, response.NewPagination(page, limit, total), nil
}

// ComparativoPeriodo is one period's counts plus stock value. ValorStock stays
// present but null for callers without financial visibility.
type ComparativoPeriodo struct {
	TotalUnidades int              `json:"total_unidades"`
	Disponibles   int              `json:"disponibles"`
	Reservadas    int              `json:"reservadas"`
	Vendidas      int              `json:"vendidas"`
	NoDisponibles int              `json:"no_disponibles"`
	ValorStock    *decimal.Decimal `json:"valor_stock"`
}

// ComparativoDelta is current minus previous, count fields only.
type ComparativoDelta struct {
	TotalUnidades int `json:"total_unidades"`
	Disponibles   int `json:"disponibles"`
	Reservadas    int `json:"reservadas"`
	Vendidas      int `json:"vendidas"`
	NoDisponibles int `json:"no_disponibles"`
}

type ComparativoItem struct {
	ProyectoID     *string             `json:"proyecto_id"`
	ProyectoNombre string              `json:"proyecto_nombre"`
	Actual         *ComparativoPeriodo `json:"actual"`
	Anterior       *ComparativoPeriodo `json:"anterior"`
	Delta          *ComparativoDelta   `json:"delta"`
}

type ComparativoResult struct {
	FechaActual   string             `json:"fecha_actual"`
	FechaAnterior string             `json:"fecha_anterior"`
	Proyectos     []*ComparativoItem `json:"proyectos"`
}

func periodoFromView(v *SnapshotView) *ComparativoPeriodo {
	return &ComparativoPeriodo{
		TotalUnidades: v.TotalUnidades,
		Disponibles:   v.Disponibles,
		Reservadas:    v.Reservadas,
		Vendidas:      v.Vendidas,
		NoDisponibles: v.NoDisponibles,
		ValorStock:    v.ValorStockUSD,
	}
}

// Comparativo pairs each current-period snapshot with the same project's
// snapshot in the previous period. Projects present only in the previous
// period do not appear in the output; the join is driven by the current side.
func (s *Service) Comparativo(ctx context.Context, fechaActual, fechaAnterior time.Time) (*ComparativoResult, error) {
	actual, err := s.PorFecha(ctx, fechaActual)
	if err != nil {
		return nil, err
	}
	anterior, err := s.PorFecha(ctx, fechaAnterior)
	if err != nil {
		return nil, err
	}

	prevByProject := make(map[string]*SnapshotView, len(anterior))
	for _, v := range anterior {
		if v.ProyectoID != nil {
			prevByProject[*v.ProyectoID] = v
		}
	}

	result := &ComparativoResult{
		FechaActual:   s.Midnight(fechaActual).Format(time.DateOnly),
		FechaAnterior: s.Midnight(fechaAnterior).Format(time.DateOnly),
	}
	for _, cur := range actual {
		item := &ComparativoItem{
			ProyectoID:     cur.ProyectoID,
			ProyectoNombre: cur.ProyectoNombre,
			Actual:         periodoFromView(cur),
		}
		if cur.ProyectoID != nil {
			if prev, ok := prevByProject[*cur.ProyectoID]; ok {
				item.Anterior = periodoFromView(prev)
				item.Delta = &ComparativoDelta{
					TotalUnidades: cur.TotalUnidades - prev.TotalUnidades,
					Disponibles:   cur.Disponibles - prev.Disponibles,
					Reservadas:    cur.Reservadas - prev.Reservadas,
					Vendidas:      cur.Vendidas - prev.Vendidas,
					NoDisponibles: cur.NoDisponibles - prev.NoDisponibles,
				}
			}
		}
		result.Proyectos = append(result.Proyectos, item)
	}
	return result, nil
}

// Scan is the filterable admin listing over snapshot history.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) ([]*SnapshotView, int64, error) {
	rows, total, err := s.store.Scan(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.toViews(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
