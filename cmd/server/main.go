package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/booking"
	"github.com/iliyamo/hotel-back-office/internal/config"
	"github.com/iliyamo/hotel-back-office/internal/database"
	"github.com/iliyamo/hotel-back-office/internal/handler"
	"github.com/iliyamo/hotel-back-office/internal/middleware"
	"github.com/iliyamo/hotel-back-office/internal/queue"
	"github.com/iliyamo/hotel-back-office/internal/repository"
	"github.com/iliyamo/hotel-back-office/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	clients := repository.NewClientRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Lifecycle core.  The reconciler owns every write to the cached
	// room status column; the manager drives it after each mutation and
	// Run keeps the cache fresh on a timer.
	clock := booking.UTCClock{}
	reconciler := booking.NewReconciler(reservations, rooms, clock, cfg.StatusSyncInterval)
	manager := booking.NewManager(reservations, rooms, clients, clock, reconciler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := reconciler.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("reconciler stopped: %v", err)
		}
	}()

	// The broker is optional: without a URL reservations are still
	// booked, just not announced.
	brokerConfigured := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	if brokerConfigured {
		go func() {
			if err := queue.StartReservationConsumer(); err != nil {
				log.Printf("queue consumer: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)

	// Redis-backed response cache and rate limiting; both collapse to
	// pass-through middleware when disabled or when Redis is absent.
	rdb := config.NewRedisClient()
	extra := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}
	router.RegisterBackOffice(e,
		handler.NewClientHandler(clients),
		handler.NewRoomHandler(rooms, reconciler, clock),
		handler.NewReservationHandler(manager, reservations, brokerConfigured),
		cfg.JWTSecret,
		extra...,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, sync every %s)", addr, cfg.Env, cfg.StatusSyncInterval)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
