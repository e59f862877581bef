package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dverho/innkeep/internal/adapter/handler"
	"github.com/dverho/innkeep/internal/adapter/payment"
	"github.com/dverho/innkeep/internal/adapter/repository/csvfile"
	"github.com/dverho/innkeep/internal/adapter/repository/postgres"
	"github.com/dverho/innkeep/internal/core/ports"
	"github.com/dverho/innkeep/internal/core/services"
	"github.com/dverho/innkeep/internal/platform/config"
	"github.com/dverho/innkeep/internal/platform/database"
	"github.com/dverho/innkeep/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(cfg.App.LogLevel, cfg.App.LogFormat)

	var roomStore ports.RoomStore
	var bookingStore ports.BookingStore

	switch cfg.Store.Driver {
	case "csv":
		store := csvfile.NewStore(cfg.Store.RoomsFile, cfg.Store.BookingsFile, log)
		roomStore, bookingStore = store, store
	case "postgres":
		db, err := database.NewPostgresDB(database.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DBName:   cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database after retries")
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		defer db.Close()

		roomStore = postgres.NewRoomStore(db)
		bookingStore = postgres.NewBookingStore(db)
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("unknown store driver")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   0,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected, availability cache enabled")
	}

	gateway := payment.NewSimulator(cfg.Payment.ChargeFailRate, cfg.Payment.RefundFailRate)

	bookingService, err := services.NewBookingService(context.Background(), roomStore, bookingStore, gateway, redisClient, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reservation state")
	}

	bookingHandler := handler.NewBookingHandler(bookingService, log)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      bookingHandler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := bookingService.Flush(ctx); err != nil {
		log.Error().Err(err).Msg("final booking flush failed")
	}

	log.Info().Msg("server exiting")
}
