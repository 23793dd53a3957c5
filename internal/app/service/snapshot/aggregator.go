package snapshot

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grupomv/mapaventas/internal/models"
)

// EstadoCategoria is the closed categorization of a unit's free-text status.
// Upstream status strings are uncontrolled, so matching happens once at the
// boundary and everything downstream works on this enum.
type EstadoCategoria int

const (
	CategoriaDisponible EstadoCategoria = iota
	CategoriaReservada
	CategoriaVendida
	CategoriaNoDisponible
)

// CategorizeEstado buckets a free-text status by substring match.
// Order matters: "no disponible" contains "disponible", so the negative
// check must run before the positive one.
func CategorizeEstado(estado string) EstadoCategoria {
	s := strings.ToLower(strings.TrimSpace(estado))
	switch {
	case strings.Contains(s, "disponible") && !strings.Contains(s, "no disponible"):
		return CategoriaDisponible
	case strings.Contains(s, "reserva"):
		return CategoriaReservada
	case strings.Contains(s, "vendid"):
		return CategoriaVendida
	default:
		return CategoriaNoDisponible
	}
}

// Stats is the per-project aggregate computed from the live unit list.
// The four category counts always sum to TotalUnidades.
type Stats struct {
	TotalUnidades  int
	Disponibles    int
	Reservadas     int
	Vendidas       int
	NoDisponibles  int
	ValorStockUSD  decimal.Decimal
	M2TotalesStock decimal.Decimal
}

// aggregateUnits computes counts and decimal sums for one project's units.
// Stock value and m2 accumulate only for available and reserved units; a sold
// unit's price never contributes. Returns ok=false when the project has no
// units, which callers treat as "skip, write nothing".
func aggregateUnits(units []*models.Unidad) (Stats, bool) {
	if len(units) == 0 {
		return Stats{}, false
	}
	stats := Stats{
		TotalUnidades:  len(units),
		ValorStockUSD:  decimal.Zero,
		M2TotalesStock: decimal.Zero,
	}
	for _, u := range units {
		switch CategorizeEstado(u.Estado) {
		case CategoriaDisponible:
			stats.Disponibles++
			stats.accumulateStock(u)
		case CategoriaReservada:
			stats.Reservadas++
			stats.accumulateStock(u)
		case CategoriaVendida:
			stats.Vendidas++
		case CategoriaNoDisponible:
			stats.NoDisponibles++
		}
	}
	return stats, true
}

func (s *Stats) accumulateStock(u *models.Unidad) {
	if u.PrecioUSD != nil {
		s.ValorStockUSD = s.ValorStockUSD.Add(*u.PrecioUSD)
	}
	if u.M2 != nil {
		s.M2TotalesStock = s.M2TotalesStock.Add(*u.M2)
	}
}

// prevEstado is a unit's recorded state in the most recent prior snapshot.
type prevEstado struct {
	Estado string
	Dias   int
}

// buildPrevLookup maps unit id to its previously recorded state.
func buildPrevLookup(details []*models.SnapshotDetalle) map[string]prevEstado {
	lookup := make(map[string]prevEstado, len(details))
	for _, d := range details {
		lookup[d.UnidadID] = prevEstado{Estado: d.Estado, Dias: d.DiasEnEstado}
	}
	return lookup
}

// diffEstado computes a unit's previous-status and days-in-state counter
// against the prior run. The counter counts consecutive snapshot runs in the
// same status: it is previous+1 when unchanged and resets to 1 on any change
// or on the unit's first-ever snapshot.
func diffEstado(estadoActual string, prev *prevEstado) (estadoAnterior *string, dias int) {
	if prev == nil {
		return nil, 1
	}
	anterior := prev.Estado
	if estadoActual == prev.Estado {
		return &anterior, prev.Dias + 1
	}
	return &anterior, 1
}
