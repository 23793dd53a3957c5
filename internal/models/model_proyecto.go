package models

import "time"

// Proyecto is a real-estate development. Owned by the inventory-management
// subsystem; the snapshot engine only reads it.
type Proyecto struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Nombre    string    `gorm:"column:nombre;type:varchar(255);not null" json:"nombre"`
	Activo    bool      `gorm:"column:activo;default:true;index" json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Proyecto) TableName() string {
	return "proyecto"
}
