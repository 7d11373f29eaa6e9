package repository

import (
	"context"
	"database/sql"
)

// PlaceRepo handles places.
type PlaceRepo struct {
	db DBTX
}

func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

func (r *PlaceRepo) Upsert(ctx context.Context, p Place) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO places(id, name, lat, lng)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 lat=excluded.lat,
	 lng=excluded.lng;
	`, p.ID, p.Name, p.Lat, p.Lng)
	return err
}

func (r *PlaceRepo) List(ctx context.Context) ([]Place, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, lat, lng FROM places ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lng); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlaceRepo) Search(ctx context.Context, term string) ([]Place, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, lat, lng FROM places WHERE name LIKE ? ORDER BY name`, "%"+term+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Lat, &p.Lng); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
