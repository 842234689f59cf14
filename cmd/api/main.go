package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/freshbins/freshbins-api/internal/infra/cache"
	"github.com/freshbins/freshbins-api/internal/infra/database"
	"github.com/freshbins/freshbins-api/internal/infra/http/handlers"
	"github.com/freshbins/freshbins-api/internal/infra/http/middleware"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
	"github.com/freshbins/freshbins-api/internal/infra/queue"
	"github.com/freshbins/freshbins-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("rabbitmq connection failed: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	formRepo := database.NewAbandonedFormRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	waitlistRepo := database.NewWaitlistRepository(db)
	areaRepo := database.NewServiceAreaRepository(db)
	photoRepo := database.NewPhotoRepository(db)

	// Adapters
	areaCache := cache.NewAreaCache(rdb, time.Hour)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envIntOr("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@freshbins.co.uk"),
		envOr("TRACKING_BASE_URL", "https://api.freshbins.co.uk"),
	)

	// Confirmation email worker
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender, bookingRepo)
	go worker.Start(queue.QueueName)

	// Use cases
	captureUC := usecase.NewCaptureFormUseCase(formRepo)
	logContactUC := usecase.NewLogContactUseCase(formRepo)
	sendEmailUC := usecase.NewSendRecoveryEmailUseCase(formRepo, mailSender)
	createBookingUC := usecase.NewCreateBookingUseCase(bookingRepo, producer)
	checkPostcodeUC := usecase.NewCheckPostcodeUseCase(areaRepo, areaCache)

	// Handlers
	formHandler := handlers.NewAbandonedFormHandler(captureUC, logContactUC, sendEmailUC, formRepo)
	trackingHandler := handlers.NewTrackingHandler(formRepo)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, bookingRepo)
	waitlistHandler := handlers.NewWaitlistHandler(waitlistRepo)
	postcodeHandler := handlers.NewPostcodeHandler(checkPostcodeUC)
	areaHandler := handlers.NewServiceAreaHandler(areaRepo, areaCache)
	photoHandler := handlers.NewPhotoHandler(photoRepo)
	healthHandler := handlers.NewHealthHandler(db, rdb, rabbitMQ.Conn)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{envOr("CORS_ORIGIN", "https://freshbins.co.uk"), "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/abandoned-forms", formHandler.HandleCapture)
	r.Get("/abandoned-forms", formHandler.HandleList)
	r.Patch("/abandoned-forms", formHandler.HandlePatch)
	r.Delete("/abandoned-forms", formHandler.HandleDelete)
	r.Post("/abandoned-forms/log-contact", formHandler.HandleLogContact)
	r.Post("/abandoned-forms/send-email", formHandler.HandleSendEmail)
	r.Get("/track-email-open", trackingHandler.HandleOpen)

	r.Post("/bookings", bookingHandler.HandleCreate)
	r.Get("/bookings", bookingHandler.HandleList)
	r.Patch("/bookings", bookingHandler.HandlePatch)
	r.Delete("/bookings", bookingHandler.HandleDelete)

	r.Post("/waitlist", waitlistHandler.HandleJoin)
	r.Get("/waitlist", waitlistHandler.HandleList)
	r.Patch("/waitlist", waitlistHandler.HandlePatch)
	r.Delete("/waitlist", waitlistHandler.HandleDelete)
	r.Get("/waitlist/stats", waitlistHandler.HandleStats)

	r.Post("/postcodes/check", postcodeHandler.HandleCheck)

	r.Get("/service-areas", areaHandler.HandleList)
	r.Post("/service-areas", areaHandler.HandleUpsert)
	r.Delete("/service-areas", areaHandler.HandleDelete)

	r.Get("/photos", photoHandler.HandleList)
	r.Post("/photos", photoHandler.HandleCreate)
	r.Patch("/photos", photoHandler.HandlePatch)
	r.Delete("/photos", photoHandler.HandleDelete)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + envOr("PORT", "8080")
	log.Printf("FreshBins API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
