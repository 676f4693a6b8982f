package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecoTrackAPI/handlers"
	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/services"
)

var (
	store                *repository.Store
	challengeService     *services.ChallengeService
	participationService *services.ParticipationService
	userService          *services.UserService
	statsService         *services.StatsService
	feedService          *services.FeedService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is not set")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "ecotrack-db"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	store, err = repository.Connect(ctx, mongoURI, dbName)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	// The unique (userId, challengeId) index is the only guard against a
	// double join, so refuse to start without it.
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to ensure indexes:", err)
	}

	log.Println("Successfully connected to MongoDB")

	challengeRepo := store.Challenges()
	participationRepo := store.Participations()

	challengeService = services.NewChallengeService(challengeRepo)
	participationService = services.NewParticipationService(participationRepo, challengeRepo)
	userService = services.NewUserService(store.Users())
	statsService = services.NewStatsService(challengeRepo)
	feedService = services.NewFeedService(store.Feed())

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing MongoDB connection...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		}
	}()

	// Initialize handlers
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	participationHandler := handlers.NewParticipationHandler(participationService)
	userHandler := handlers.NewUserHandler(userService)
	statsHandler := handlers.NewStatsHandler(statsService)
	feedHandler := handlers.NewFeedHandler(feedService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Server is running"))
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "ecotrack-api"}`))
	}).Methods("GET")

	r.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	r.HandleFunc("/challenges-active", challengeHandler.GetActiveChallenges).Methods("GET")
	r.HandleFunc("/challenges/{id}", challengeHandler.GetChallengeByID).Methods("GET")
	r.HandleFunc("/challenges-add", challengeHandler.AddChallenge).Methods("POST")
	r.HandleFunc("/challenges-join/{id}", participationHandler.JoinChallenge).Methods("PATCH")

	// The item route must be registered before the {userId} route or
	// "item" would be captured as a user id.
	r.HandleFunc("/user-challenges/item/{id}", participationHandler.GetUserChallengeDetail).Methods("GET")
	r.HandleFunc("/user-challenges/update/{id}", participationHandler.TrackProgress).Methods("PATCH")
	r.HandleFunc("/user-challenges/{id}/progress", participationHandler.UpdateProgress).Methods("PATCH")
	r.HandleFunc("/user-challenges/{userId}", participationHandler.ListUserChallenges).Methods("GET")

	r.HandleFunc("/my-activities/{email}", participationHandler.ListUserActivities).Methods("GET")
	r.HandleFunc("/users", userHandler.RegisterUser).Methods("POST")
	r.HandleFunc("/statistics", statsHandler.GetStatistics).Methods("GET")
	r.HandleFunc("/recent-tips", feedHandler.GetRecentTips).Methods("GET")
	r.HandleFunc("/events-upcoming", feedHandler.GetUpcomingEvents).Methods("GET")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-ID"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("EcoTrack server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
