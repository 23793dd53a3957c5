package snapshot

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	fecha := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	seedSnapshot(store, "p1", fecha, 7, "350000")
	svc := newTestService(t, inv, store)

	data, err := svc.ExportXLSX(context.Background(), fecha, true)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Snapshots")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Contains(t, rows[0], "Valor Stock USD")
	require.Equal(t, "Proyecto 1", rows[1][0])
	require.Equal(t, "2026-08-15", rows[1][1])
	require.Equal(t, "350000.00", rows[1][8])
}

func TestExportXLSX_RedactsMonetaryColumns(t *testing.T) {
	store := newFakeStore()
	inv := &fakeInventory{projects: projectFixture(1)}
	fecha := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	seedSnapshot(store, "p1", fecha, 7, "350000")
	svc := newTestService(t, inv, store)

	data, err := svc.ExportXLSX(context.Background(), fecha, false)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Snapshots")
	require.NoError(t, err)
	require.NotContains(t, rows[0], "Valor Stock USD")
	require.NotContains(t, rows[0], "M2 Totales")
	require.Len(t, rows[0], 8)
}
