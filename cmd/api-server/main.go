package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/clinicflow/appointment-scheduling/internal/agent"
	"github.com/clinicflow/appointment-scheduling/internal/api"
	"github.com/clinicflow/appointment-scheduling/internal/config"
	"github.com/clinicflow/appointment-scheduling/internal/faq"
	"github.com/clinicflow/appointment-scheduling/internal/schedule"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s hours=%02d:00-%02d:00",
		cfg.Env, cfg.HTTPPort, cfg.OpenHour, cfg.CloseHour)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grid := schedule.NewGrid(cfg.OpenHour, cfg.CloseHour)
	ledger := schedule.NewLedger(grid)
	engine := schedule.NewService(grid, ledger)

	store := faq.NewStore()
	if err := store.LoadFile(cfg.ClinicInfoPath); err != nil {
		// The chat layer degrades to scheduling-only without clinic info.
		log.Printf("clinic info not loaded (%v), FAQ answers disabled", err)
	} else {
		log.Printf("clinic info loaded from %s", cfg.ClinicInfoPath)
	}

	chatAgent := agent.New(engine, store, cfg.ClinicPhone, cfg.DefaultDaysAhead)

	router := api.NewRouter(api.RouterConfig{
		Engine:           engine,
		Agent:            chatAgent,
		FAQReady:         store.Loaded(),
		DefaultDaysAhead: cfg.DefaultDaysAhead,
		Env:              cfg.Env,
		Version:          version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	log.Println("api-server stopped")
}
