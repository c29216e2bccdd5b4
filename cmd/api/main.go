package main

import (
	"context"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"decision-matrix/internal/config"
	"decision-matrix/internal/db"
	httpSrv "decision-matrix/internal/http"
	"decision-matrix/internal/matrix"
	"decision-matrix/internal/migrations"
	"decision-matrix/internal/sheets"
	"decision-matrix/internal/storage"
)

func main() {
	cfg := config.Load()

	// Run embedded migrations (idempotent)
	migrations.Run(cfg.DatabaseURL)

	// Start services
	dbase := db.MustOpen(cfg.DatabaseURL)
	store := sheets.NewPG(dbase)
	assets, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	session, warnings := matrix.Seed(context.Background(), store, cfg.Reviewers)
	for _, warn := range warnings {
		log.Println("seed warning:", warn)
	}

	srv := httpSrv.NewServer(cfg, dbase, store, assets, session, warnings)
	log.Printf("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
