package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tabwiki/internal/auth"
	"tabwiki/internal/config"
	"tabwiki/internal/data"
	"tabwiki/internal/handler"
	"tabwiki/internal/logger"
	"tabwiki/internal/middleware"
	"tabwiki/internal/service"
	"tabwiki/internal/view"
	"tabwiki/web"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Storage Initialization ---
	var (
		db *sqlx.DB
		kv data.KVStore
	)
	if cfg.Store.Driver == "memory" {
		log.Warn("Using in-memory storage; pages are lost on restart")
		kv = data.NewMemoryKVStore()
	} else {
		log.Info(fmt.Sprintf("Connecting to %s store...", cfg.Store.Driver))
		db, err = data.NewDB(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			log.Fatal(err, "Failed to connect to database")
		}
		defer db.Close()

		log.Info("Applying database migrations...")
		if err := data.ApplyMigrations(db, cfg.Store.Driver); err != nil {
			log.Fatal(err, "Failed to apply migrations")
		}
		log.Info("Migrations applied successfully.")
		kv = data.NewSQLKVStore(db)
	}

	// --- Document Store ---
	persistence := data.NewPersistence(kv, log, cfg.Store.PagesKey, cfg.Store.EditModeKey)
	renderer := service.NewContentRenderer(cfg.Editor.Sanitize)
	app := service.NewApp(persistence, data.MakeID, renderer, log)
	if err := app.Startup(context.Background()); err != nil {
		// The migrated pages are still served from memory.
		log.Error(err, "Failed to write migrated pages")
	}

	// --- Session Management Setup ---
	sessionManager := scs.New()
	switch cfg.Store.Driver {
	case "mysql":
		sessionManager.Store = mysqlstore.New(db.DB)
	case "sqlite", "sqlite3":
		sessionManager.Store = sqlite3store.New(db.DB)
	}
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	// --- Authorization Setup ---
	enforcer, err := auth.NewEnforcer()
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}

	// --- Handlers and Router ---
	handlers := handler.Handlers{
		Pages:  handler.NewPageHandler(app, viewService, sessionManager, log),
		Editor: handler.NewEditorHandler(app, viewService, sessionManager, log),
		API:    handler.NewAPIHandler(app, log),
		SEO:    handler.NewSeoHandler(app, cfg.Server.BaseURL),
	}
	gate := middleware.EditGate(enforcer, app, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)
	router := handler.NewRouter(handlers, gate, errorMiddleware, sessionManager, web.StaticFS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "Could not start HTTP server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
