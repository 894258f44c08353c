package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/auth"
	"github.com/safar/storefront/internal/backend"
	"github.com/safar/storefront/internal/config"
	"github.com/safar/storefront/internal/database"
	"github.com/safar/storefront/internal/guestcart"
	"github.com/safar/storefront/internal/httpapi"
	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/notify"
	"github.com/safar/storefront/internal/provinces"
	"github.com/safar/storefront/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const purgeInterval = time.Hour

func main() {
	if err := run(); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	zlog := logger.Get()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db      *sql.DB
		storage guestcart.Storage = guestcart.NewMemoryStorage()
		carts   *store.GuestCarts
	)
	if cfg.GuestCart.Store == "postgres" {
		db, err = database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		carts = store.NewGuestCarts(db)
		storage = carts
		zlog.Info("guest carts stored in postgres")
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger.Named("backend"))
	router := httpapi.NewRouter(cfg, httpapi.Deps{
		Backend:   backend.NewServices(client),
		Locations: provinces.NewClient(cfg.Provinces.URL, cfg.Provinces.Timeout, logger.Named("provinces")),
		Guests:    guestcart.NewRepository(storage, logger.Named("guestcart")),
		Board:     notify.NewBoard(notify.DefaultTTL),
		Verifier:  auth.NewVerifier(cfg.Auth.JWTSecret),
		DB:        db,
	}, zlog)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("backend", cfg.Backend.URL),
			zap.String("guest_store", cfg.GuestCart.Store))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		zlog.Info("server shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if carts != nil {
		g.Go(func() error {
			purgeGuestCarts(gctx, carts, cfg.GuestCart.CookieMaxAge, zlog.Named("janitor"))
			return nil
		})
	}

	return g.Wait()
}

// purgeGuestCarts drops guest carts whose cookie can no longer be presented.
func purgeGuestCarts(ctx context.Context, carts *store.GuestCarts, maxAge time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := carts.PurgeStale(ctx, time.Now().Add(-maxAge))
			if err != nil {
				log.Warn("purge guest carts failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged stale guest carts", zap.Int64("count", n))
			}
		}
	}
}
