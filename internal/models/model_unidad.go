package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidad is a sellable unit within a project (lot, apartment, parking spot).
// Estado is uncontrolled free text maintained by the sales team; the snapshot
// aggregator categorizes it by substring match at aggregation time.
//
// Read-only from the snapshot engine's point of view.
type Unidad struct {
	ID         string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ProyectoID string `gorm:"column:proyecto_id;type:uuid;not null;index" json:"proyecto_id"`
	// Sector is the human identifier inside the project map (e.g. "Torre A - 302").
	Sector      string           `gorm:"column:sector;type:varchar(128)" json:"sector"`
	Tipo        string           `gorm:"column:tipo;type:varchar(64)" json:"tipo"`
	Estado      string           `gorm:"column:estado;type:varchar(128)" json:"estado"`
	PrecioUSD   *decimal.Decimal `gorm:"column:precio_usd;type:decimal(20,2);default:null" json:"precio_usd"`
	PrecioPorM2 *decimal.Decimal `gorm:"column:precio_por_m2;type:decimal(20,2);default:null" json:"precio_por_m2"`
	M2          *decimal.Decimal `gorm:"column:m2;type:decimal(12,2);default:null" json:"m2"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Unidad) TableName() string {
	return "unidad"
}
