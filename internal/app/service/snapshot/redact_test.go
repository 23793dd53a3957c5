package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grupomv/mapaventas/pkg/types"
)

func TestFinanceAuthorized(t *testing.T) {
	svc := newTestService(t, &fakeInventory{}, newFakeStore())

	require.True(t, svc.FinanceAuthorized(types.RoleSet{"superadminmv"}))
	require.True(t, svc.FinanceAuthorized(types.RoleSet{"adminmv", "vendedor"}))
	require.False(t, svc.FinanceAuthorized(types.RoleSet{"vendedor"}))
	// No role information never grants financial visibility.
	require.False(t, svc.FinanceAuthorized(nil))
	require.False(t, svc.FinanceAuthorized(types.RoleSet{}))
}

func TestRedactViews_StripsMonetaryKeys(t *testing.T) {
	views := []*SnapshotView{{
		ID:             "s1",
		Disponibles:    3,
		Vendidas:       1,
		TotalUnidades:  4,
		ValorStockUSD:  dec("760000"),
		M2TotalesStock: dec("380"),
	}}

	redacted := RedactViews(views, false)
	body, err := json.Marshal(redacted[0])
	require.NoError(t, err)
	require.NotContains(t, string(body), "valor_stock_usd")
	require.NotContains(t, string(body), "m2_totales_stock")
	// Counts are never redacted.
	require.Contains(t, string(body), "\"disponibles\":3")
	require.Contains(t, string(body), "\"vendidas\":1")
}

func TestRedactViews_AuthorizedKeepsFields(t *testing.T) {
	views := []*SnapshotView{{ID: "s1", ValorStockUSD: dec("100"), M2TotalesStock: dec("50")}}
	redacted := RedactViews(views, true)
	require.NotNil(t, redacted[0].ValorStockUSD)
	require.NotNil(t, redacted[0].M2TotalesStock)
}

func TestRedactComparativo_NullsValorStock(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	anterior := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	actual := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	seedSnapshot(store, "p1", anterior, 8, "800")
	seedSnapshot(store, "p1", actual, 5, "500")

	svc := newTestService(t, inv, store)
	res, err := svc.Comparativo(context.Background(), actual, anterior)
	require.NoError(t, err)

	res = RedactComparativo(res, false)
	item := res.Proyectos[0]
	require.Nil(t, item.Actual.ValorStock)
	require.Nil(t, item.Anterior.ValorStock)
	// The key stays present (as null) in the payload.
	body, err := json.Marshal(item.Actual)
	require.NoError(t, err)
	require.Contains(t, string(body), "\"valor_stock\":null")
	// Deltas and counts survive.
	require.NotNil(t, item.Delta)
	require.Equal(t, -3, item.Delta.Disponibles)
}

func TestRedactComparativo_AuthorizedUntouched(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	actual := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	seedSnapshot(store, "p1", actual, 5, "500")

	svc := newTestService(t, inv, store)
	res, err := svc.Comparativo(context.Background(), actual, actual.AddDate(0, -1, 0))
	require.NoError(t, err)
	res = RedactComparativo(res, true)
	require.NotNil(t, res.Proyectos[0].Actual.ValorStock)
}
