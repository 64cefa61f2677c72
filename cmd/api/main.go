// Package main is the entry point for the recommendation API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/uninest/recommender/internal/api"
	"github.com/uninest/recommender/internal/config"
	"github.com/uninest/recommender/internal/db"
	"github.com/uninest/recommender/internal/health"
	"github.com/uninest/recommender/internal/listing"
	"github.com/uninest/recommender/internal/middleware"
	"github.com/uninest/recommender/internal/profile"
	"github.com/uninest/recommender/internal/recommend"
)

func main() {
	help := flag.Bool("help", false, "display help message")
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	if *help {
		fmt.Println("UniNest Recommendation API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	ctx := context.Background()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect from mongodb", "error", err)
		}
	}()

	colls := db.DefaultCollections()
	database := client.Database(cfg.MongoDB)
	listingRepo := listing.NewMongoRepository(database, colls.Listings)
	profileStore := profile.NewMongoStore(database, colls.Profiles)
	resolver := profile.NewResolver(profileStore)

	// Metrics registry with process/runtime collectors plus our own.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics()
	if err := httpMetrics.Register(registry); err != nil {
		logger.Error("failed to register http metrics", "error", err)
		os.Exit(1)
	}
	engineMetrics := recommend.NewMetrics()
	if err := engineMetrics.Register(registry); err != nil {
		logger.Error("failed to register engine metrics", "error", err)
		os.Exit(1)
	}

	// Calibration failures fall back to defaults; already logged inside.
	weights, tuning, _ := recommend.LoadCalibration(cfg.CalibrationPath)
	engine := recommend.NewEngine(weights, tuning, nil, engineMetrics)

	// Rate limit state is shared via Redis when configured; otherwise each
	// replica keeps its own counters.
	var limitStore middleware.RateLimitStore
	var redisChecker api.HealthChecker
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis client", "error", err)
			}
		}()
		limitStore = middleware.NewRedisRateLimitStore(redisClient, httpMetrics)
		redisChecker = health.NewRedisChecker(redisClient)
	} else {
		memStore := middleware.NewInMemoryRateLimitStore()
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				memStore.Cleanup()
			}
		}()
		limitStore = memStore
	}
	limit := middleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimitPerMinute,
		WindowDuration:    time.Minute,
	}
	if err := limit.Validate(); err != nil {
		logger.Error("invalid rate limit config", "error", err)
		os.Exit(1)
	}

	recommendHandlers := api.NewRecommendHandlers(resolver, listingRepo, engine)
	debugHandlers := api.NewDebugHandlers(listingRepo, profileStore)
	healthHandlers := api.NewHealthHandlers(api.HealthHandlersConfig{
		DBChecker:    health.NewMongoChecker(client),
		RedisChecker: redisChecker,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /recommendations/{studentID}", recommendHandlers.GetRecommendations)
	mux.HandleFunc("GET /debug/listings", debugHandlers.GetListings)
	mux.HandleFunc("GET /debug/profiles", debugHandlers.GetProfiles)
	mux.HandleFunc("GET /health", healthHandlers.Health)
	mux.HandleFunc("GET /ready", healthHandlers.Ready)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			api.WriteError(w, r, http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		api.WriteJSON(w, r, http.StatusOK, map[string]string{
			"message": "Property Recommendation API is running",
		})
	})

	// Middleware chain: RequestID -> Logging -> CORS -> RateLimit -> Metrics.
	var handler http.Handler = mux
	handler = middleware.HTTPMetrics(httpMetrics)(handler)
	handler = middleware.RateLimiter(limitStore, limit, middleware.IPKeyFunc(), httpMetrics)(handler)
	handler = middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins))(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
