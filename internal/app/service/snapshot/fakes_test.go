package snapshot

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/grupomv/mapaventas/internal/models"
	"github.com/grupomv/mapaventas/pkg/config"
)

type fakeInventory struct {
	mu       sync.Mutex
	projects []*models.Proyecto
	units    map[string][]*models.Unidad
	unitErr  map[string]error
	calls    int
}

func (f *fakeInventory) ActiveProjects(context.Context) ([]*models.Proyecto, error) {
	return f.projects, nil
}

func (f *fakeInventory) UnitsByProject(_ context.Context, proyectoID string) ([]*models.Unidad, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.unitErr[proyectoID]; ok {
		return nil, err
	}
	return f.units[proyectoID], nil
}

func (f *fakeInventory) ProjectNames(_ context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	for _, p := range f.projects {
		names[p.ID] = p.Nombre
	}
	return names, nil
}

// fakeStore keeps an in-memory append-only history and counts data accesses
// so tests can assert validation short-circuits before any storage call.
type fakeStore struct {
	mu      sync.Mutex
	snaps   []*models.Snapshot
	details map[string][]*models.SnapshotDetalle
	reads   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{details: make(map[string][]*models.SnapshotDetalle)}
}

func (f *fakeStore) LatestByProject(_ context.Context, proyectoID string) (*models.Snapshot, []*models.SnapshotDetalle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var latest *models.Snapshot
	for _, s := range f.snaps {
		if s.ProyectoID != nil && *s.ProyectoID == proyectoID {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil, nil
	}
	return latest, f.details[latest.ID], nil
}

func (f *fakeStore) CreateWithDetails(_ context.Context, snap *models.Snapshot, details []*models.SnapshotDetalle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap.CreatedAt = time.Now()
	f.snaps = append(f.snaps, snap)
	f.details[snap.ID] = details
	return nil
}

func (f *fakeStore) ByFecha(_ context.Context, fecha time.Time) ([]*models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var out []*models.Snapshot
	for i := len(f.snaps) - 1; i >= 0; i-- {
		if f.snaps[i].FechaSnapshot.Equal(fecha) {
			out = append(out, f.snaps[i])
		}
	}
	return out, nil
}

func (f *fakeStore) ByRango(_ context.Context, desde, hasta time.Time, offset, limit int) ([]*models.Snapshot, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var in []*models.Snapshot
	for _, s := range f.snaps {
		if !s.FechaSnapshot.Before(desde) && !s.FechaSnapshot.After(hasta) {
			in = append(in, s)
		}
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].FechaSnapshot.Before(in[j].FechaSnapshot) })
	total := int64(len(in))
	if offset >= len(in) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end], total, nil
}

func (f *fakeStore) Scan(_ context.Context, req *ScanRequest) ([]*models.Snapshot, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.snaps, int64(len(f.snaps)), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Snapshot: config.SnapshotConfig{
			Timezone:    "UTC",
			BatchSize:   5,
			SlowRunWarn: 5 * time.Minute,
		},
		Auth: config.AuthConfig{
			AdminRoles:   []string{"superadminmv", "adminmv"},
			FinanceRoles: []string{"superadminmv", "adminmv"},
		},
	}
}

func newTestService(t interface{ Fatalf(string, ...any) }, inv *fakeInventory, store Store) *Service {
	svc, err := NewService(testConfig(), zap.NewNop().Sugar(), inv, store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
