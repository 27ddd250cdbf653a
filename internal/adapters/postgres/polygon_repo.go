package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// PolygonRepo implements ports.PolygonRepository on the drawn_polygons table.
type PolygonRepo struct {
	db *DB
}

func NewPolygonRepo(db *DB) *PolygonRepo {
	return &PolygonRepo{db: db}
}

func (r *PolygonRepo) Save(ctx context.Context, id, wkt string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO drawn_polygons (id, wkt)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET wkt = EXCLUDED.wkt
	`, id, wkt)
	return err
}

func (r *PolygonRepo) Load(ctx context.Context, id string) (string, error) {
	var wkt string
	err := r.db.Pool.QueryRow(ctx, `
		SELECT wkt FROM drawn_polygons WHERE id = $1
	`, id).Scan(&wkt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrPolygonNotFound
	}
	if err != nil {
		slog.Error("load polygon", "id", id, "error", err)
		return "", domain.ErrPolygonNotFound
	}
	return wkt, nil
}

// Ping reports whether the database is reachable.
func (r *PolygonRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
