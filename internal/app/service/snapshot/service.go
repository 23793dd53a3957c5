package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/grupomv/mapaventas/internal/app/service/inventory"
	"github.com/grupomv/mapaventas/internal/models"
	"github.com/grupomv/mapaventas/pkg/config"
	"github.com/grupomv/mapaventas/pkg/metrics"
	"github.com/grupomv/mapaventas/pkg/tool"
)

const defaultBatchSize = 5

// RunTrigger labels what started a generation run.
type RunTrigger string

const (
	TriggerScheduler RunTrigger = "scheduler"
	TriggerManual    RunTrigger = "manual"
)

// RunDetalle is the per-project entry in a run summary.
type RunDetalle struct {
	Proyecto      string `json:"proyecto"`
	SnapshotID    string `json:"snapshot_id"`
	TotalUnidades int    `json:"total_unidades"`
	Disponibles   int    `json:"disponibles"`
	Reservadas    int    `json:"reservadas"`
	Vendidas      int    `json:"vendidas"`
}

// RunSummary reports the outcome of one generation run. Projects that failed
// or were skipped (zero units) are absent from Detalles; the caller can tell
// partial success apart from full success by comparing counts.
type RunSummary struct {
	Fecha               time.Time           `json:"fecha"`
	Tipo                models.SnapshotTipo `json:"tipo"`
	ProyectosProcesados int                 `json:"proyectos_procesados"`
	Detalles            []*RunDetalle       `json:"detalles"`
}

// Service is the stock snapshot engine: it materializes per-project inventory
// aggregates and answers queries against the resulting history.
type Service struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	inv   inventory.Reader
	store Store
	loc   *time.Location
	now   func() time.Time
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, inv inventory.Reader, store Store) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, log: log, inv: inv, store: store, loc: loc, now: time.Now}, nil
}

func (s *Service) batchSize() int {
	if s.cfg.Snapshot.BatchSize > 0 {
		return s.cfg.Snapshot.BatchSize
	}
	return defaultBatchSize
}

// Midnight truncates t to 00:00 in the reference timezone.
func (s *Service) Midnight(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// GenerateSnapshots runs the full pipeline for every active project: aggregate
// the live unit list, diff against the prior snapshot, persist one summary plus
// its detail rows. Projects are processed in fixed-size concurrent batches;
// batches run one after another to cap load on the store. A failing project is
// logged and excluded, it never aborts the run for its siblings.
func (s *Service) GenerateSnapshots(ctx context.Context, tipo models.SnapshotTipo, trigger RunTrigger) (*RunSummary, error) {
	if !tipo.Valid() {
		return nil, fmt.Errorf("invalid snapshot tipo: %s", tipo)
	}
	start := s.now()
	fecha := s.Midnight(start)
	runID := tool.GenerateUUIDV7()

	projects, err := s.inv.ActiveProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active projects: %w", err)
	}

	log := s.log.With("run_id", runID, "tipo", tipo, "trigger", trigger)
	log.Infow("snapshot run started", "fecha", fecha.Format(time.DateOnly), "proyectos", len(projects))

	summary := &RunSummary{Fecha: fecha, Tipo: tipo}
	var mu sync.Mutex

	for _, batch := range lo.Chunk(projects, s.batchSize()) {
		var wg sync.WaitGroup
		for _, p := range batch {
			wg.Add(1)
			go func(p *models.Proyecto) {
				defer wg.Done()
				det, err := s.processProject(ctx, p, fecha, tipo, runID, trigger)
				if err != nil {
					log.Errorw("snapshot failed for project", "proyecto", p.Nombre, "err", err)
					metrics.SnapshotProjectsProcessed.WithLabelValues("failed").Inc()
					return
				}
				if det == nil {
					log.Debugw("project skipped, no units", "proyecto", p.Nombre)
					metrics.SnapshotProjectsProcessed.WithLabelValues("skipped").Inc()
					return
				}
				metrics.SnapshotProjectsProcessed.WithLabelValues("ok").Inc()
				mu.Lock()
				summary.Detalles = append(summary.Detalles, det)
				mu.Unlock()
			}(p)
		}
		wg.Wait()
	}
	summary.ProyectosProcesados = len(summary.Detalles)

	elapsed := s.now().Sub(start)
	metrics.SnapshotRunsTotal.WithLabelValues(string(tipo), string(trigger)).Inc()
	metrics.SnapshotRunDuration.Observe(float64(elapsed.Milliseconds()))
	if warn := s.cfg.Snapshot.SlowRunWarn; warn > 0 && elapsed > warn {
		log.Warnw("snapshot run exceeded duration threshold", "elapsed", elapsed.String(), "threshold", warn.String())
	}
	log.Infow("snapshot run completed", "procesados", summary.ProyectosProcesados, "elapsed_ms", elapsed.Milliseconds())
	return summary, nil
}

// processProject aggregates and persists one project. Returns (nil, nil) when
// the project has no units and nothing should be written.
func (s *Service) processProject(ctx context.Context, p *models.Proyecto, fecha time.Time, tipo models.SnapshotTipo, runID string, trigger RunTrigger) (*RunDetalle, error) {
	units, err := s.inv.UnitsByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	stats, ok := aggregateUnits(units)
	if !ok {
		return nil, nil
	}

	// Previous state must be read before the new snapshot is written so the
	// days-in-state counters are computed against the immediately preceding run.
	_, prevDetails, err := s.store.LatestByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	lookup := buildPrevLookup(prevDetails)

	extra, _ := json.Marshal(map[string]any{"run_id": runID, "trigger": trigger})
	proyectoID := p.ID
	snap := &models.Snapshot{
		ID:             tool.GenerateUUIDV7(),
		FechaSnapshot:  fecha,
		Tipo:           tipo,
		ProyectoID:     &proyectoID,
		TotalUnidades:  stats.TotalUnidades,
		Disponibles:    stats.Disponibles,
		Reservadas:     stats.Reservadas,
		Vendidas:       stats.Vendidas,
		NoDisponibles:  stats.NoDisponibles,
		ValorStockUSD:  stats.ValorStockUSD,
		M2TotalesStock: stats.M2TotalesStock,
		Extra:          datatypes.JSON(extra),
	}

	details := make([]*models.SnapshotDetalle, 0, len(units))
	for _, u := range units {
		estado := u.Estado
		if estado == "" {
			estado = models.EstadoDesconocido
		}
		var prev *prevEstado
		if pe, ok := lookup[u.ID]; ok {
			prev = &pe
		}
		anterior, dias := diffEstado(estado, prev)
		details = append(details, &models.SnapshotDetalle{
			ID:             tool.GenerateUUIDV7(),
			SnapshotID:     snap.ID,
			UnidadID:       u.ID,
			Sector:         u.Sector,
			ProyectoNombre: p.Nombre,
			TipoUnidad:     u.Tipo,
			Estado:         estado,
			PrecioUSD:      u.PrecioUSD,
			PrecioPorM2:    u.PrecioPorM2,
			EstadoAnterior: anterior,
			DiasEnEstado:   dias,
		})
	}

	if err := s.store.CreateWithDetails(ctx, snap, details); err != nil {
		return nil, err
	}
	return &RunDetalle{
		Proyecto:      p.Nombre,
		SnapshotID:    snap.ID,
		TotalUnidades: stats.TotalUnidades,
		Disponibles:   stats.Disponibles,
		Reservadas:    stats.Reservadas,
		Vendidas:      stats.Vendidas,
	}, nil
}
