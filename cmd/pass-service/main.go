package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/app/background"
	"github.com/Dompi123/fomo-pr-sub002/internal/app/setup"
	"github.com/Dompi123/fomo-pr-sub002/internal/delivery/http/handlers"
	"github.com/Dompi123/fomo-pr-sub002/internal/infrastructure/migrate"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}

	if path := deps.Config.PassDB.MigrationsPath; path != "" {
		if err := migrate.RunMigrations(deps.DB, path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	usecases := setup.InitializeUsecases(deps)

	// Expiry sweeper
	tasks := background.NewBackgroundTasks(
		usecases.PassUsecase,
		time.Duration(deps.Config.PassRules.ExpirySweepSeconds)*time.Second,
	)
	tasks.StartAll(context.Background())

	mux := http.NewServeMux()
	handlers.NewFlagHandler(deps.Registry).RegisterRoutes(mux)
	handlers.NewEventHandler(usecases.Recorder).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf("%s:%s", deps.Config.HTTPServer.Host, deps.Config.HTTPServer.Port)
	log.Printf("pass-service started on %s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
