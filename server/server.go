// Package server is the HTTP transport layer. It translates catalog
// results to wire responses and carries no catalog logic of its own.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beatstore/cache"
	"beatstore/config"
	"beatstore/core/catalog"
	"beatstore/db"
	"beatstore/logger"
	"beatstore/repository"

	"github.com/gorilla/mux"
)

// Start wires the catalog service and runs the HTTP server until SIGINT or
// SIGTERM. All dependencies are constructed here once and passed down;
// handlers hold no process-wide state.
func Start(cfg *config.Config) {
	ensureDirExists(cfg.BeatsDir)

	conn, err := db.Connect(cfg.DBPath)
	if err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer conn.Close()

	if err := db.InitSchema(conn); err != nil {
		logger.Fatal("Failed to initialize database schema", logger.ErrorField(err))
	}

	var beatCache *cache.BeatCache
	if cfg.RedisEnabled {
		redisClient, err := db.ConnectRedis(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		beatCache = cache.NewBeatCache(redisClient, cfg.BeatCacheTTL)
		logger.Info("Beat cache enabled")
	}

	beatRepo := repository.NewSQLiteBeatRepository(conn)
	inquiryRepo := repository.NewSQLiteInquiryRepository(conn)
	synchronizer := catalog.NewSynchronizer(beatRepo, cfg.BeatsDir)
	service := catalog.NewService(beatRepo, inquiryRepo, synchronizer, beatCache)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchDir {
		watcher := catalog.NewWatcher(synchronizer, cfg.BeatsDir)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("Folder watcher stopped", logger.ErrorField(err))
			}
		}()
	}

	apiHandler := NewAPIHandler(service)
	audioHandler := NewAudioHandler(cfg.BeatsDir)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)
	router.Use(recoveryMiddleware)
	router.Use(accessLogMiddleware)

	router.HandleFunc("/api/beats", apiHandler.ListBeatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/beats/{id}", apiHandler.GetBeatHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/inquiry", apiHandler.SubmitInquiryHandler).Methods(http.MethodPost)

	// File names may contain characters mux path variables reject, so the
	// audio route matches by prefix and resolves the rest itself.
	router.PathPrefix("/api/audio/").Handler(audioHandler)

	// Storefront UI.
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.WebDir)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting",
			logger.String("addr", server.Addr),
			logger.String("beatsDir", cfg.BeatsDir),
			logger.String("db", cfg.DBPath))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

func ensureDirExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("Creating directory", logger.String("path", path))
		if err := os.MkdirAll(path, 0755); err != nil {
			logger.Fatal("Failed to create directory", logger.String("path", path), logger.ErrorField(err))
		}
	} else if err != nil {
		logger.Fatal("Failed to check directory", logger.String("path", path), logger.ErrorField(err))
	}
}
