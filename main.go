package main

import (
	"context"
	"log"
	"time"

	"github.com/devoapp/backend/config"
	_ "github.com/devoapp/backend/docs"
	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/internal/store/memstore"
	"github.com/devoapp/backend/internal/store/pgstore"
	"github.com/devoapp/backend/internal/worker"
	"github.com/devoapp/backend/routes"
)

// @title DevoApp REST API
// @version 1.0
// @description Team devotional sync and membership backend.
// @host localhost:8090
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	var st store.Store
	switch cfg.Store.Backend {
	case "memory":
		st = memstore.New()
	default:
		pg, err := pgstore.Open(cfg.DSN())
		if err != nil {
			log.Fatalf("Failed to open document store: %v", err)
		}
		pg.SetPollInterval(time.Duration(cfg.Store.PollIntervalMS) * time.Millisecond)
		st = pg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := worker.NewSweeper(
		devotional.NewRegistry(st),
		time.Duration(cfg.Sweep.CheckIntervalMinutes)*time.Minute,
	)
	go sweeper.Run(ctx)

	r := routes.SetupRoutes(cfg, st)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
