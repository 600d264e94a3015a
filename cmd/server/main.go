package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/booking"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/config"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/database"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/handler"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/queue"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/repository"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/router"
	queue_publisher "github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/service"
	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/worker"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	bookings := repository.NewBookingRepo(db)
	locations := repository.NewLocationRepo(db)
	reviews := repository.NewReviewRepo(db)
	history := repository.NewHistoryRepo(db)
	notifications := repository.NewNotificationRepo(db)

	engine := booking.NewEngine(bookings, locations, reviews, history,
		queue_publisher.Dispatcher{}, booking.Options{
			FailOpen:   cfg.AvailabilityFailOpen,
			PaymentTTL: cfg.PaymentTTL,
		})

	// Background pieces: the event consumer writes notification rows, the
	// sweeper completes elapsed stays and purges abandoned payments.
	go func() {
		if err := queue.StartEventConsumer(notifications); err != nil {
			log.Printf("event-consumer: stopped: %v", err)
		}
	}()
	sweeper := worker.NewSweeper(engine, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterBooking(e,
		handler.NewBookingHandler(engine, bookings, locations, history),
		handler.NewNotificationHandler(notifications),
		cfg.JWTSecret,
		config.NewRedisClient(),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
