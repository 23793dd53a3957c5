package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SnapshotTipo selects the generation cadence a snapshot belongs to.
type SnapshotTipo string

const (
	SnapshotTipoDiario  SnapshotTipo = "DIARIO"
	SnapshotTipoMensual SnapshotTipo = "MENSUAL"
)

// Valid reports whether t is one of the enumerated snapshot kinds.
func (t SnapshotTipo) Valid() bool {
	return t == SnapshotTipoDiario || t == SnapshotTipoMensual
}

// Snapshot is an immutable, dated aggregate of unit-inventory status for one
// project. Rows are append-only: they are never updated or deleted by the
// engine, and re-running generation for the same day appends new rows.
type Snapshot struct {
	ID string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	// FechaSnapshot is truncated to midnight in the reference timezone.
	FechaSnapshot time.Time    `gorm:"column:fecha_snapshot;type:date;not null;index:idx_snapshot_proyecto_fecha_tipo,priority:2;index" json:"fecha_snapshot"`
	Tipo          SnapshotTipo `gorm:"column:tipo;type:varchar(16);not null;index:idx_snapshot_proyecto_fecha_tipo,priority:3" json:"tipo"`
	// ProyectoID is nil only for cross-project rollups; per-project generation
	// always sets it.
	ProyectoID     *string         `gorm:"column:proyecto_id;type:uuid;index:idx_snapshot_proyecto_fecha_tipo,priority:1" json:"proyecto_id"`
	TotalUnidades  int             `gorm:"column:total_unidades;not null" json:"total_unidades"`
	Disponibles    int             `gorm:"column:disponibles;not null" json:"disponibles"`
	Reservadas     int             `gorm:"column:reservadas;not null" json:"reservadas"`
	Vendidas       int             `gorm:"column:vendidas;not null" json:"vendidas"`
	NoDisponibles  int             `gorm:"column:no_disponibles;not null" json:"no_disponibles"`
	ValorStockUSD  decimal.Decimal `gorm:"column:valor_stock_usd;type:decimal(20,2);default:0" json:"valor_stock_usd"`
	M2TotalesStock decimal.Decimal `gorm:"column:m2_totales_stock;type:decimal(14,2);default:0" json:"m2_totales_stock"`
	// Extra stores run metadata (run id, trigger, duration).
	Extra     datatypes.JSON `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Snapshot) TableName() string {
	return "snapshot"
}
