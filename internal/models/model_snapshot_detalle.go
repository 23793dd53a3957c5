package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoDesconocido is recorded when a unit has no status string at all.
const EstadoDesconocido = "Desconocido"

// SnapshotDetalle records one unit's state inside a Snapshot. Fields like
// Sector, ProyectoNombre and TipoUnidad are denormalized on purpose: history
// must stay intact even if the live unit record changes later.
type SnapshotDetalle struct {
	ID         string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SnapshotID string `gorm:"column:snapshot_id;type:uuid;not null;index" json:"snapshot_id"`
	// Snapshot owns its detail rows; dropping a snapshot drops them too.
	Snapshot       *Snapshot        `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE" json:"-"`
	UnidadID       string           `gorm:"column:unidad_id;type:uuid;not null;index" json:"unidad_id"`
	Sector         string           `gorm:"column:sector;type:varchar(128)" json:"sector"`
	ProyectoNombre string           `gorm:"column:proyecto_nombre;type:varchar(255)" json:"proyecto_nombre"`
	TipoUnidad     string           `gorm:"column:tipo_unidad;type:varchar(64)" json:"tipo_unidad"`
	Estado         string           `gorm:"column:estado;type:varchar(128);not null" json:"estado"`
	PrecioUSD      *decimal.Decimal `gorm:"column:precio_usd;type:decimal(20,2);default:null" json:"precio_usd"`
	PrecioPorM2    *decimal.Decimal `gorm:"column:precio_por_m2;type:decimal(20,2);default:null" json:"precio_por_m2"`
	// EstadoAnterior is nil on the unit's first-ever snapshot.
	EstadoAnterior *string `gorm:"column:estado_anterior;type:varchar(128);default:null" json:"estado_anterior"`
	// DiasEnEstado counts consecutive snapshot runs in the same status, not
	// elapsed calendar days. Resets to 1 on every status change.
	DiasEnEstado int       `gorm:"column:dias_en_estado;not null;default:1" json:"dias_en_estado"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SnapshotDetalle) TableName() string {
	return "snapshot_detalle"
}
