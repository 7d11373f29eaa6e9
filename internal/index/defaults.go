package index

import (
	"context"
	"database/sql"

	"github.com/mwren/geonotes/internal/index/repository"
)

// SeedDefaults ensures a handful of well-known places exist for new
// databases, so search suggestions work before any import.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	placeRepo := repository.NewPlaceRepo(db)
	existing, err := placeRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []repository.Place{
		{Name: "London", Lat: 51.5074, Lng: -0.1278},
		{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
		{Name: "Berlin", Lat: 52.52, Lng: 13.405},
		{Name: "New York", Lat: 40.7128, Lng: -74.006},
		{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503},
		{Name: "Sydney", Lat: -33.8688, Lng: 151.2093},
	}
	for _, p := range defaults {
		p.ID = repository.PlaceID(p.Name)
		if err := placeRepo.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
