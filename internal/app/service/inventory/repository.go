package inventory

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/grupomv/mapaventas/internal/models"
)

// Reader exposes the read-only slice of the inventory tables the snapshot
// engine depends on. The engine never writes to proyecto or unidad.
type Reader interface {
	ActiveProjects(ctx context.Context) ([]*models.Proyecto, error)
	UnitsByProject(ctx context.Context, proyectoID string) ([]*models.Unidad, error)
	ProjectNames(ctx context.Context, ids []string) (map[string]string, error)
}

type gormReader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) Reader {
	return &gormReader{db: db}
}

func (r *gormReader) ActiveProjects(ctx context.Context) ([]*models.Proyecto, error) {
	var rows []*models.Proyecto
	if err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("nombre asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	return rows, nil
}

func (r *gormReader) UnitsByProject(ctx context.Context, proyectoID string) ([]*models.Unidad, error) {
	var rows []*models.Unidad
	if err := r.db.WithContext(ctx).
		Where("proyecto_id = ?", proyectoID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list units for project %s: %w", proyectoID, err)
	}
	return rows, nil
}

func (r *gormReader) ProjectNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []*models.Proyecto
	if err := r.db.WithContext(ctx).
		Select("id", "nombre").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve project names: %w", err)
	}
	for _, p := range rows {
		names[p.ID] = p.Nombre
	}
	return names, nil
}
