package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/grupomv/mapaventas/internal/models"
)

func seedSnapshot(store *fakeStore, proyectoID string, fecha time.Time, disponibles int, valor string) *models.Snapshot {
	snap := &models.Snapshot{
		ID:            proyectoID + "-" + fecha.Format(time.DateOnly),
		FechaSnapshot: fecha,
		Tipo:          models.SnapshotTipoDiario,
		ProyectoID:    &proyectoID,
		TotalUnidades: disponibles,
		Disponibles:   disponibles,
		ValorStockUSD: decimal.RequireFromString(valor),
	}
	_ = store.CreateWithDetails(context.Background(), snap, nil)
	return snap
}

func TestParseFecha(t *testing.T) {
	svc := newTestService(t, &fakeInventory{}, newFakeStore())

	got, err := svc.ParseFecha("2026-08-30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), got)

	_, err = svc.ParseFecha("")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.ParseFecha("30/08/2026")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.ParseFecha("2026-13-01")
	require.ErrorIs(t, err, ErrValidation)
}

func TestPorRango_InvertedRangeFailsBeforeDataAccess(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeInventory{}, store)

	desde := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.PorRango(context.Background(), desde, hasta, 1, 100)
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, store.reads)
}

func TestPorRango_PaginationClamping(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	fecha := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedSnapshot(store, "p1", fecha, 10, "1000")
	svc := newTestService(t, inv, store)
	ctx := context.Background()

	// limit above the cap falls back to 100
	_, pag, err := svc.PorRango(ctx, fecha, fecha, 1, 500)
	require.NoError(t, err)
	require.Equal(t, 100, pag.Limit)

	// page 0 and negative pages clamp to 1
	_, pag, err = svc.PorRango(ctx, fecha, fecha, 0, 50)
	require.NoError(t, err)
	require.Equal(t, 1, pag.Page)
	_, pag, err = svc.PorRango(ctx, fecha, fecha, -3, 50)
	require.NoError(t, err)
	require.Equal(t, 1, pag.Page)
}

func TestPorRango_OrdersAndPaginates(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedSnapshot(store, "p1", base.AddDate(0, 0, i), i+1, "100")
	}
	svc := newTestService(t, inv, store)

	views, pag, err := svc.PorRango(context.Background(), base, base.AddDate(0, 0, 4), 1, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, int64(5), pag.Total)
	require.Equal(t, 3, pag.TotalPages)
	require.Equal(t, "2026-04-01", views[0].FechaSnapshot)
	require.Equal(t, "2026-04-02", views[1].FechaSnapshot)

	views, _, err = svc.PorRango(context.Background(), base, base.AddDate(0, 0, 4), 3, 2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "2026-04-05", views[0].FechaSnapshot)
}

func TestPorFecha_EnrichesProjectName(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	fecha := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedSnapshot(store, "p1", fecha, 3, "300")
	svc := newTestService(t, inv, store)

	views, err := svc.PorFecha(context.Background(), fecha)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Proyecto 1", views[0].ProyectoNombre)
	require.NotNil(t, views[0].ValorStockUSD)
}

func TestComparativo(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(3)}
	anterior := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	actual := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	// p1 exists in both periods, p2 only in the current one, p3 only in the
	// previous one.
	seedSnapshot(store, "p1", anterior, 8, "800")
	seedSnapshot(store, "p3", anterior, 2, "200")
	seedSnapshot(store, "p1", actual, 5, "500")
	seedSnapshot(store, "p2", actual, 4, "400")

	svc := newTestService(t, inv, store)
	res, err := svc.Comparativo(context.Background(), actual, anterior)
	require.NoError(t, err)
	require.Equal(t, "2026-07-01", res.FechaActual)
	require.Equal(t, "2026-06-01", res.FechaAnterior)
	require.Len(t, res.Proyectos, 2)

	byProject := make(map[string]*ComparativoItem)
	for _, item := range res.Proyectos {
		require.NotNil(t, item.ProyectoID)
		byProject[*item.ProyectoID] = item
	}

	p1 := byProject["p1"]
	require.NotNil(t, p1.Anterior)
	require.NotNil(t, p1.Delta)
	require.Equal(t, 5, p1.Actual.Disponibles)
	require.Equal(t, 8, p1.Anterior.Disponibles)
	require.Equal(t, -3, p1.Delta.Disponibles)

	// No previous match: anterior and delta stay null.
	p2 := byProject["p2"]
	require.Nil(t, p2.Anterior)
	require.Nil(t, p2.Delta)

	// Present only in the previous period: omitted entirely.
	_, ok := byProject["p3"]
	require.False(t, ok)
}
