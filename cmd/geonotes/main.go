package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwren/geonotes/internal/clipboard"
	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/index"
	"github.com/mwren/geonotes/internal/index/repository"
	"github.com/mwren/geonotes/internal/mapview"
	"github.com/mwren/geonotes/internal/service"
	"github.com/mwren/geonotes/internal/suggest"
	"github.com/mwren/geonotes/internal/sysopen"
	"github.com/mwren/geonotes/internal/tui"
	"github.com/mwren/geonotes/internal/urlconv"
	"github.com/mwren/geonotes/internal/vault"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		log.Fatalf("mkdir vault: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := index.RunMigrations(cfg.Database.Path, "internal/index/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := index.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := index.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	markerRepo := repository.NewMarkerRepo(db)
	placeRepo := repository.NewPlaceRepo(db)

	templates, err := vault.LoadTemplates()
	if err != nil {
		log.Printf("warn: using built-in templates: %v", err)
	}

	app := tui.New(ctx, cfg, tui.Collaborators{
		Creator:   &vault.Creator{Root: cfg.Vault.Path},
		Convertor: urlconv.New(cfg.URLRules),
		Searcher:  &suggest.Searcher{Places: placeRepo},
		Clipboard: clipboard.New(),
		URLOpener: sysopen.New(),
		Scan:      &service.ScanService{DB: db, Markers: markerRepo, Root: cfg.Vault.Path},
		Importer:  &service.ImportService{Places: placeRepo},
		Templates: templates,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	app.AttachSend(p.Send)
	// the navigator needs Send too, and Send needs the program: wire last
	app.SetNavigator(&mapview.Navigator{Markers: markerRepo, Send: p.Send})

	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
