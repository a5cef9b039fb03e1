package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abefas/taskapi/config"
	"github.com/abefas/taskapi/database"
	"github.com/abefas/taskapi/database/memory"
	"github.com/abefas/taskapi/handlers"
	"github.com/abefas/taskapi/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var (
		taskStore service.TaskStore
		userStore handlers.UserStore
	)
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Println("Using the in-memory store; data is lost on exit")
		taskStore = memory.NewTaskStore()
		userStore = memory.NewUserStore()
	default:
		db, err := database.Open(ctx, cfg.DBDriver, cfg.DSN())
		if err != nil {
			log.Fatalf("Failed to connect to the database: %v", err)
		}
		defer db.Close()

		// Ensure the tasks and users tables exist.
		if err := database.EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		taskStore = database.NewTaskStore(db)
		userStore = database.NewUserStore(db)
	}

	svc, err := service.New(taskStore)
	if err != nil {
		log.Fatalf("service initiation failed: %v", err)
	}

	var jwtKey []byte
	if cfg.JWTSecret != "" {
		jwtKey = []byte(cfg.JWTSecret)
	} else {
		log.Println("JWT_SECRET not set; task routes are unauthenticated")
		userStore = nil
	}

	h := handlers.NewHandlers(svc, userStore, jwtKey)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handlers.NewRouter(h),
	}

	go func() {
		log.Printf("Server listening on %s...", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	<-stop
	log.Println("shut down signal received...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
		return
	}

	log.Println("shut down gracefully")
}
