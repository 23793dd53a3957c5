package snapshot

import "github.com/grupomv/mapaventas/pkg/types"

// FinanceAuthorized decides financial visibility from the caller's role set.
// Missing or unparseable role information yields an empty set and therefore
// no visibility; absence of roles never grants access.
func (s *Service) FinanceAuthorized(roles types.RoleSet) bool {
	return roles.HasAny(s.cfg.Auth.FinanceRoles)
}

// RedactViews strips stock value and total m2 from every view unless the
// caller is finance-authorized. Count fields are never redacted.
func RedactViews(views []*SnapshotView, authorized bool) []*SnapshotView {
	if authorized {
		return views
	}
	for _, v := range views {
		v.ValorStockUSD = nil
		v.M2TotalesStock = nil
	}
	return views
}

// RedactComparativo nulls valor_stock inside actual/anterior for callers
// without financial visibility. The key stays in the payload, unlike the
// by-date and range listings where the fields are dropped entirely.
func RedactComparativo(res *ComparativoResult, authorized bool) *ComparativoResult {
	if authorized || res == nil {
		return res
	}
	for _, item := range res.Proyectos {
		if item.Actual != nil {
			item.Actual.ValorStock = nil
		}
		if item.Anterior != nil {
			item.Anterior.ValorStock = nil
		}
	}
	return res
}
