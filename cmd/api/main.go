package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lost-found-search/internal/adapters/animalsapi"
	"lost-found-search/internal/adapters/geocoding/mapbox"
	pg "lost-found-search/internal/adapters/storage/postgres"
	"lost-found-search/internal/domain/search"
	"lost-found-search/internal/platform/config"
	"lost-found-search/internal/platform/logger"
	"lost-found-search/internal/ports/geocoding"
	"lost-found-search/internal/router"
)

// @title Lost & Found Search API
// @version 1.0
// @description Búsqueda, filtrado geográfico y conteo de coincidencias de animales perdidos y encontrados.
// @BasePath /
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
		Color:  cfg.Log.Color,
	})
	if cfg.Fluent.Enabled {
		fl, err := logger.NewFluent(logger.FluentOptions{
			Host:      cfg.Fluent.Host,
			Port:      cfg.Fluent.Port,
			TagPrefix: cfg.Log.App,
			Level:     logger.ParseLevel(cfg.Log.Level),
		})
		if err != nil {
			appLog.Warn("fluent disabled", map[string]any{"error": err})
		} else {
			defer fl.Close()
			appLog = logger.Multi(appLog, fl)
		}
	}

	// Sin DB_DSN las sesiones quedan en memoria (modo dev).
	var db *sql.DB
	if dsn := strings.TrimSpace(cfg.DBDSN); dsn != "" {
		db, err = pg.Open(dsn, pg.Pool{MaxConns: cfg.DBMaxConns, AppName: cfg.Log.App})
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer db.Close()

		if err := pg.Migrate(db); err != nil {
			log.Fatalf("migrate error: %v", err)
		}
	}

	catalog, err := animalsapi.NewClient(animalsapi.Config{
		BaseURL: cfg.AnimalsAPI.BaseURL,
		Token:   cfg.AnimalsAPI.Token,
		Timeout: cfg.AnimalsAPI.Timeout,
	})
	if err != nil {
		log.Fatalf("animals api error: %v", err)
	}

	var geocoder geocoding.Geocoder
	if strings.TrimSpace(cfg.Mapbox.AccessToken) != "" {
		g, err := mapbox.New(mapbox.Config{
			BaseURL:     cfg.Mapbox.BaseURL,
			AccessToken: cfg.Mapbox.AccessToken,
			Language:    cfg.Mapbox.Language,
			Country:     cfg.Mapbox.Country,
			Timeout:     cfg.Mapbox.Timeout,
		})
		if err != nil {
			log.Fatalf("mapbox error: %v", err)
		}
		geocoder = g
	} else {
		appLog.Warn("mapbox access token missing, reverse geocoding and autocomplete disabled", nil)
	}

	r, svc := router.NewRouter(router.Options{
		Logger:   appLog,
		DB:       db,
		Catalog:  catalog,
		Geocoder: geocoder,
		Search: search.Options{
			DefaultRadiusKm:      cfg.Search.DefaultRadiusKm,
			GeolocationTimeout:   cfg.Search.GeolocationTimeout,
			AutocompleteDebounce: cfg.Search.AutocompleteDebounce,
		},
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Sin WriteTimeout: el stream SSE de conteos es de larga duración.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLog.Info("starting server", map[string]any{"addr": srv.Addr, "postgres": db != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Cerrar los stores primero corta los streams SSE abiertos.
	svc.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("forced shutdown", map[string]any{"error": err})
	}
}
