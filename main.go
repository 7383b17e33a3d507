package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diegomolina2/appreset/handlers"
	"github.com/diegomolina2/appreset/internal/catalog"
	"github.com/diegomolina2/appreset/internal/store"
	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

var (
	dbPool           *pgxpool.Pool
	trackerService   *services.TrackerService
	planService      *services.PlanService
	challengeService *services.ChallengeService
	courseService    *services.CourseService
	contentService   *services.ContentService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	contentCatalog, err := catalog.Load()
	if err != nil {
		log.Fatal("Failed to load content catalog:", err)
	}

	// Without DATABASE_URL documents live in process memory only. Fine for
	// local development, not for a deployment.
	var kv store.KV
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("DATABASE_URL not set, using in-memory storage")
		kv = store.NewMemory()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		poolConfig, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			log.Fatal("Failed to parse database URL:", err)
		}

		poolConfig.MaxConns = 25
		poolConfig.MinConns = 5
		poolConfig.MaxConnLifetime = time.Hour
		poolConfig.MaxConnIdleTime = 30 * time.Minute
		poolConfig.HealthCheckPeriod = time.Minute

		dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Fatal("Failed to create connection pool:", err)
		}

		if err := dbPool.Ping(ctx); err != nil {
			log.Fatal("Failed to ping database:", err)
		}

		pg := store.NewPostgres(dbPool)
		if err := pg.Init(ctx); err != nil {
			log.Fatal("Failed to initialize storage schema:", err)
		}
		kv = pg

		log.Println("Successfully connected to Postgres")
	}

	st := store.New(kv)
	trackerService = services.NewTrackerService(st, contentCatalog)
	planService = services.NewPlanService(st)
	challengeService = services.NewChallengeService(trackerService, planService, contentCatalog)
	courseService = services.NewCourseService(trackerService, contentCatalog)
	contentService = services.NewContentService(contentCatalog, trackerService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		if dbPool != nil {
			log.Println("Closing database connection pool...")
			dbPool.Close()
		}
	}()

	// Initialize handlers
	trackerHandler := handlers.NewTrackerHandler(trackerService)
	challengeHandler := handlers.NewChallengeHandler(challengeService, contentService)
	courseHandler := handlers.NewCourseHandler(courseService)
	contentHandler := handlers.NewContentHandler(contentService)
	badgeHandler := handlers.NewBadgeHandler(trackerService)
	planHandler := handlers.NewPlanHandler(planService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if dbPool != nil {
			if err := dbPool.Ping(ctx); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "appreset-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/plans", planHandler.ListPlans).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE X-Device-ID HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.DeviceAuthMiddleware)

	protected.HandleFunc("/state", trackerHandler.GetState).Methods("GET")
	protected.HandleFunc("/state", trackerHandler.ResetData).Methods("DELETE")
	protected.HandleFunc("/profile", trackerHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/settings", trackerHandler.UpdateSettings).Methods("PUT")

	protected.HandleFunc("/logs/weight", trackerHandler.LogWeight).Methods("POST")
	protected.HandleFunc("/logs/mood", trackerHandler.LogMood).Methods("POST")
	protected.HandleFunc("/logs/water", trackerHandler.LogWater).Methods("POST")
	protected.HandleFunc("/logs/calories", trackerHandler.LogCalories).Methods("POST")
	protected.HandleFunc("/logs/exercise", trackerHandler.LogExercise).Methods("POST")
	protected.HandleFunc("/logs/meal", trackerHandler.LogMeal).Methods("POST")
	protected.HandleFunc("/logs/measurements", trackerHandler.LogMeasurements).Methods("POST")

	protected.HandleFunc("/streak", trackerHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/stats", trackerHandler.GetStats).Methods("GET")
	protected.HandleFunc("/stats/periods", trackerHandler.GetPeriodStats).Methods("GET")
	protected.HandleFunc("/calendar", trackerHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/wellness-score", trackerHandler.GetWellnessScore).Methods("GET")

	protected.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	protected.HandleFunc("/challenges/{id}", challengeHandler.GetChallenge).Methods("GET")
	protected.HandleFunc("/challenges/{id}/start", challengeHandler.StartChallenge).Methods("POST")
	protected.HandleFunc("/challenges/{id}/restart", challengeHandler.RestartChallenge).Methods("POST")
	protected.HandleFunc("/challenges/{id}/tasks/complete", challengeHandler.CompleteTask).Methods("POST")
	protected.HandleFunc("/challenges/{id}/tasks/uncomplete", challengeHandler.UncompleteTask).Methods("POST")

	protected.HandleFunc("/courses", courseHandler.ListCourses).Methods("GET")
	protected.HandleFunc("/courses/{id}", courseHandler.GetCourse).Methods("GET")
	protected.HandleFunc("/courses/{id}/start", courseHandler.StartCourse).Methods("POST")
	protected.HandleFunc("/courses/{id}/lessons/complete", courseHandler.CompleteLesson).Methods("POST")
	protected.HandleFunc("/courses/{id}/lessons/uncomplete", courseHandler.UncompleteLesson).Methods("POST")

	protected.HandleFunc("/badges", badgeHandler.GetBadges).Methods("GET")

	protected.HandleFunc("/exercises", contentHandler.GetExercises).Methods("GET")
	protected.HandleFunc("/meals", contentHandler.GetMeals).Methods("GET")
	protected.HandleFunc("/quotes", contentHandler.GetQuotes).Methods("GET")
	protected.HandleFunc("/quotes/daily", contentHandler.GetQuoteOfTheDay).Methods("GET")
	protected.HandleFunc("/favorites", contentHandler.ToggleFavorite).Methods("POST")

	protected.HandleFunc("/plans/activate", planHandler.ActivatePlan).Methods("POST")
	protected.HandleFunc("/plans/current", planHandler.GetCurrentPlan).Methods("GET")
	protected.HandleFunc("/plans/current", planHandler.DeactivatePlan).Methods("DELETE")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "X-Device-ID"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
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
		log.Printf("Starting server on port %s", port)
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
