package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/wedding-venue-booking/internal/cache"
	"github.com/iliyamo/wedding-venue-booking/internal/config"
	"github.com/iliyamo/wedding-venue-booking/internal/database"
	"github.com/iliyamo/wedding-venue-booking/internal/handler"
	"github.com/iliyamo/wedding-venue-booking/internal/middleware"
	"github.com/iliyamo/wedding-venue-booking/internal/queue"
	"github.com/iliyamo/wedding-venue-booking/internal/repository"
	"github.com/iliyamo/wedding-venue-booking/internal/repository/memory"
	"github.com/iliyamo/wedding-venue-booking/internal/router"
	"github.com/iliyamo/wedding-venue-booking/internal/service"
)

// backend is everything the HTTP layer needs from storage.  Both
// repository.Store and memory.Store implement it.
type backend interface {
	service.ReservationStore
	handler.VenueStore
	handler.ServiceStore
	handler.InquiryStore
}

var (
	_ backend = (*repository.Store)(nil)
	_ backend = (*memory.Store)(nil)
)

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, migrateUp)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "apply database migrations on startup (mysql store only)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, migrateUp bool) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(glog.INFO)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infoj(glog.JSON{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
			})
			return nil
		},
	}))

	checks := map[string]handler.Check{}

	var store backend
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := database.Open(cfg.DB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if migrateUp {
			if err := database.MigrateUp(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		store = repository.NewStore(db)
		checks["mysql"] = db.PingContext
	case config.StoreMemory:
		store = memory.New()
		log.Printf("using in-memory store; data is lost on restart")
	}

	rdb := config.NewRedisClient(cfg.Redis)
	var availability service.AvailabilityCache
	if rdb != nil {
		defer rdb.Close()
		availability = cache.NewAvailabilityCache(rdb, cfg.AvailabilityTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var events service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		pub, err := queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			e.Logger.Warnj(glog.JSON{"msg": "rabbitmq unavailable, reservation events disabled", "error": err.Error()})
		} else {
			defer pub.Close()
			events = pub
		}
		consumer := &queue.AuditConsumer{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
			LogPath:  cfg.RabbitMQ.AuditLog,
			Logger:   e.Logger,
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				e.Logger.Errorj(glog.JSON{"msg": "reservation consumer stopped", "error": err.Error()})
			}
		}()
	}

	booking := service.NewBookingService(store, availability, events, e.Logger, service.Options{
		RequireIdentity: cfg.RequireIdentity,
		Location:        cfg.Location(),
	})

	router.Register(e, router.Deps{
		JWTSecret:    cfg.JWT.Secret,
		Health:       handler.NewHealth(checks),
		Venues:       handler.NewVenueHandler(store),
		Services:     handler.NewServiceHandler(store),
		Inquiries:    handler.NewInquiryHandler(store),
		Reservations: handler.NewReservationHandler(booking),
		Cache:        middleware.NewRedisCache(cfg.Cache, rdb),
		RateLimit:    middleware.NewTokenBucket(cfg.RateLimit, rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)
	errc := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
