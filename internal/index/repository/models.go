package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DBTX is the handle the repositories run their statements on, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PlaceID derives a stable id from a place name, case-insensitively, so
// seeds and imports of the same name address the same row.
func PlaceID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("place:"+strings.ToLower(name))).String()
}

// Marker represents one geolocation found in a vault note.
type Marker struct {
	ID        string
	Path      string
	Line      int
	Lat       float64
	Lng       float64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Place represents a named location used for search suggestions.
type Place struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}
