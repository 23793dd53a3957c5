package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders one day's snapshots as an Excel workbook. Monetary
// columns are included only for finance-authorized callers; the same
// redaction policy as the JSON listings applies.
func (s *Service) ExportXLSX(ctx context.Context, fecha time.Time, authorized bool) ([]byte, error) {
	views, err := s.PorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	views = RedactViews(views, authorized)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Snapshots"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Proyecto", "Fecha", "Tipo", "Total", "Disponibles", "Reservadas", "Vendidas", "No Disponibles"}
	if authorized {
		headers = append(headers, "Valor Stock USD", "M2 Totales")
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, v := range views {
		values := []any{
			v.ProyectoNombre,
			v.FechaSnapshot,
			string(v.Tipo),
			v.TotalUnidades,
			v.Disponibles,
			v.Reservadas,
			v.Vendidas,
			v.NoDisponibles,
		}
		if authorized {
			valor, m2 := "", ""
			if v.ValorStockUSD != nil {
				valor = v.ValorStockUSD.StringFixed(2)
			}
			if v.M2TotalesStock != nil {
				m2 = v.M2TotalesStock.StringFixed(2)
			}
			values = append(values, valor, m2)
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
