package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grupomv/mapaventas/internal/models"
	"github.com/grupomv/mapaventas/pkg/types"
)

// Store persists and queries snapshot history. The history is append-only:
// there is no update or upsert path anywhere on this interface.
type Store interface {
	// LatestByProject returns the most recent snapshot for a project together
	// with its detail rows, or (nil, nil, nil) when the project has none yet.
	LatestByProject(ctx context.Context, proyectoID string) (*models.Snapshot, []*models.SnapshotDetalle, error)
	// CreateWithDetails inserts the summary row and its detail rows in a
	// single transaction, so a crash can never leave an orphaned summary.
	CreateWithDetails(ctx context.Context, snap *models.Snapshot, details []*models.SnapshotDetalle) error
	ByFecha(ctx context.Context, fecha time.Time) ([]*models.Snapshot, error)
	ByRango(ctx context.Context, desde, hasta time.Time, offset, limit int) ([]*models.Snapshot, int64, error)
	Scan(ctx context.Context, req *ScanRequest) ([]*models.Snapshot, int64, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) LatestByProject(ctx context.Context, proyectoID string) (*models.Snapshot, []*models.SnapshotDetalle, error) {
	var snap models.Snapshot
	err := s.db.WithContext(ctx).
		Where("proyecto_id = ?", proyectoID).
		Order("fecha_snapshot desc, created_at desc").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load latest snapshot for project %s: %w", proyectoID, err)
	}
	var details []*models.SnapshotDetalle
	if err := s.db.WithContext(ctx).
		Where("snapshot_id = ?", snap.ID).
		Find(&details).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load snapshot details %s: %w", snap.ID, err)
	}
	return &snap, details, nil
}

func (s *gormStore) CreateWithDetails(ctx context.Context, snap *models.Snapshot, details []*models.SnapshotDetalle) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snap).Error; err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
		if len(details) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(details, 500).Error; err != nil {
			return fmt.Errorf("failed to insert snapshot details: %w", err)
		}
		return nil
	})
}

func (s *gormStore) ByFecha(ctx context.Context, fecha time.Time) ([]*models.Snapshot, error) {
	var rows []*models.Snapshot
	if err := s.db.WithContext(ctx).
		Where("fecha_snapshot = ?", fecha).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots by date: %w", err)
	}
	return rows, nil
}

func (s *gormStore) ByRango(ctx context.Context, desde, hasta time.Time, offset, limit int) ([]*models.Snapshot, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Snapshot{}).
		Where("fecha_snapshot >= ? AND fecha_snapshot <= ?", desde, hasta)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count snapshots in range: %w", err)
	}

	var rows []*models.Snapshot
	if err := q.Order("fecha_snapshot asc, created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list snapshots in range: %w", err)
	}
	return rows, total, nil
}

// ScanRequest is the admin listing request over snapshot history.
type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Scan implements the filterable admin listing.
func (s *gormStore) Scan(ctx context.Context, req *ScanRequest) ([]*models.Snapshot, int64, error) {
	if req == nil {
		return nil, 0, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Snapshot{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count snapshots: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy == "" {
		req.SortBy = "fecha_snapshot"
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})

	var rows []*models.Snapshot
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return rows, total, nil
}
