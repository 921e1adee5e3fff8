package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/shoplens/shoplens/internal/api"
	"github.com/shoplens/shoplens/internal/browser"
	"github.com/shoplens/shoplens/internal/config"
	"github.com/shoplens/shoplens/internal/database"
	"github.com/shoplens/shoplens/internal/events"
	"github.com/shoplens/shoplens/internal/extract"
	"github.com/shoplens/shoplens/internal/models"
	"github.com/shoplens/shoplens/internal/monitor"
	"github.com/shoplens/shoplens/internal/registry"
	"github.com/shoplens/shoplens/internal/router"
	"github.com/shoplens/shoplens/internal/settings"
	"github.com/shoplens/shoplens/internal/store"
	"github.com/shoplens/shoplens/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logg.Info("starting shoplens")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logg.Info("shutdown signal received")
		cancel()
	}()

	reg := registry.New()
	adapters := extract.NewSet()
	rt := router.New(reg, adapters)

	// Embedded browser session; the engine still serves URL resolution and
	// collections when the browser fails to start.
	var mon *monitor.Monitor
	b, err := browser.New(&browser.Options{
		Headless:       cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
	})
	if err != nil {
		logg.Error("failed to start browser, continuing without a session", "error", err)
	} else {
		defer b.Close()

		session, err := b.NewSession(nil)
		if err != nil {
			logg.Error("failed to open browser session", "error", err)
		} else {
			defer session.Close()
			mon = monitor.New(session, rt, adapters, logg, &monitor.Options{
				LoadTimeout: cfg.Monitor.LoadTimeout,
			})
			session.Bind(mon)
		}
	}

	cartPersistence, favPersistence := buildPersistence(ctx, cfg, logg)
	cart := store.NewCollection(ctx, "cart", cartPersistence, logg)
	favorites := store.NewCollection(ctx, "favorites", favPersistence, logg)

	settingsStore := buildSettings(cfg)

	if mon != nil && cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		publisher := events.NewPublisher(redisClient, events.DefaultStream, logg)
		mon.OnProductInfoChanged(func(p *models.ProductInfo) {
			if !p.Usable() {
				return
			}
			resolution := rt.ProcessURL(p.URL)
			if err := publisher.PublishProductDetected(ctx, resolution.RetailerName, p); err != nil {
				logg.Error("failed to publish product event", "error", err)
			}
		})
	}

	handlers := api.NewHandlers(reg, rt, mon, cart, favorites, settingsStore, logg)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown failed", "error", err)
	}
	logg.Info("stopped")
}

func buildPersistence(ctx context.Context, cfg *config.Config, logg *slog.Logger) (store.Persistence, store.Persistence) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.New(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.DBName,
			MaxConns: 5,
			MinConns: 1,
		})
		if err != nil {
			logg.Error("failed to connect to postgres, falling back to memory", "error", err)
			return store.NewMemoryPersistence(), store.NewMemoryPersistence()
		}
		return store.NewPostgresPersistence(db, "cart"), store.NewPostgresPersistence(db, "favorites")
	case "memory":
		return store.NewMemoryPersistence(), store.NewMemoryPersistence()
	default:
		return store.NewFilePersistence(cfg.Storage.CartFile), store.NewFilePersistence(cfg.Storage.FavoritesFile)
	}
}

func buildSettings(cfg *config.Config) settings.Store {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return settings.NewRedisStore(client, "")
	}
	return settings.NewMemoryStore()
}
