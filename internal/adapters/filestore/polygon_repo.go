package filestore

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/samirrijal/listingmap/internal/core/domain"
	"github.com/samirrijal/listingmap/internal/pkg/metrics"
)

// PolygonRepo implements ports.PolygonRepository on a JSON object file
// mapping id to canonical polygon text. The mutex only serializes writers
// within this process.
type PolygonRepo struct {
	path string
	mu   sync.Mutex
}

// NewPolygonRepo creates a new PolygonRepo backed by path.
func NewPolygonRepo(path string) *PolygonRepo {
	return &PolygonRepo{path: path}
}

// Save adds or replaces one entry and rewrites the file.
func (r *PolygonRepo) Save(ctx context.Context, id, wkt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table := r.read()
	table[id] = wkt
	return writeJSON(r.path, table)
}

// Load returns the text stored under id.
func (r *PolygonRepo) Load(ctx context.Context, id string) (string, error) {
	r.mu.Lock()
	table := r.read()
	r.mu.Unlock()

	wkt, ok := table[id]
	if !ok {
		return "", domain.ErrPolygonNotFound
	}
	return wkt, nil
}

// Ping reports whether the table file can be read. A corrupt table is
// still healthy: reads treat it as empty and the next Save rewrites it.
func (r *PolygonRepo) Ping(ctx context.Context) error {
	var table map[string]string
	_, err := readJSON(r.path, &table)
	if errors.Is(err, errCorrupt) {
		slog.Warn("polygon table corrupt, serving as empty", "path", r.path, "error", err)
		return nil
	}
	return err
}

// read loads the table, falling back to an empty one when the file is
// missing, blank, unreadable or corrupt.
func (r *PolygonRepo) read() map[string]string {
	var table map[string]string
	if _, err := readJSON(r.path, &table); err != nil {
		if errors.Is(err, errCorrupt) {
			slog.Warn("polygon table corrupt, starting empty", "path", r.path, "error", err)
			metrics.StoreCorruptions.WithLabelValues("polygon").Inc()
		} else {
			slog.Error("polygon table unreadable", "path", r.path, "error", err)
		}
		return make(map[string]string)
	}
	if table == nil {
		table = make(map[string]string)
	}
	return table
}
