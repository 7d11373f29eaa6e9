package repository

import (
	"context"
	"database/sql"
)

// MarkerRepo handles markers.
type MarkerRepo struct {
	db DBTX
}

func NewMarkerRepo(db *sql.DB) *MarkerRepo {
	return &MarkerRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx, so a multi-statement
// rewrite commits or rolls back as one unit.
func (r *MarkerRepo) WithTx(tx *sql.Tx) *MarkerRepo {
	return &MarkerRepo{db: tx}
}

func (r *MarkerRepo) Upsert(ctx context.Context, m Marker) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO markers(id, path, line, lat, lng, name, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 path=excluded.path,
	 line=excluded.line,
	 lat=excluded.lat,
	 lng=excluded.lng,
	 name=excluded.name,
	 updated_at=excluded.updated_at;
	`, m.ID, m.Path, m.Line, m.Lat, m.Lng, m.Name, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *MarkerRepo) ListAll(ctx context.Context) ([]Marker, error) {
	return r.list(ctx, `SELECT id, path, line, lat, lng, name, created_at, updated_at FROM markers ORDER BY path, line`)
}

func (r *MarkerRepo) ListByPath(ctx context.Context, path string) ([]Marker, error) {
	return r.list(ctx, `SELECT id, path, line, lat, lng, name, created_at, updated_at FROM markers WHERE path = ? ORDER BY line`, path)
}

func (r *MarkerRepo) ListByPathLines(ctx context.Context, path string, from, to int) ([]Marker, error) {
	return r.list(ctx, `SELECT id, path, line, lat, lng, name, created_at, updated_at FROM markers WHERE path = ? AND line BETWEEN ? AND ? ORDER BY line`, path, from, to)
}

func (r *MarkerRepo) DeleteByPath(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM markers WHERE path = ?`, path)
	return err
}

func (r *MarkerRepo) list(ctx context.Context, query string, args ...any) ([]Marker, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Marker
	for rows.Next() {
		var m Marker
		if err := rows.Scan(&m.ID, &m.Path, &m.Line, &m.Lat, &m.Lng, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
