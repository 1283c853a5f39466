// Package main implements the golden web server: fair meeting-time scoring
// over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/syncgroove/golden/pkg/golden"
	"github.com/syncgroove/golden/pkg/nudge"
	"github.com/syncgroove/golden/pkg/rescache"
)

var errOutOfRangeHour = errors.New("utc_hour must be 0-23")

var (
	port     = flag.String("port", "", "Port for web server (or set PORT)")
	cacheTTL = flag.Duration("cache-ttl", 5*time.Minute, "Response cache TTL (or set CACHE_TTL)")
	verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	version  = flag.Bool("version", false, "Show version")
)

// decisionStore keeps nudge outcomes in memory. Enough for the reclaimed
// report; a restart resets the trend window.
type decisionStore struct {
	mu      sync.Mutex
	records []nudge.DecisionRecord
}

func (s *decisionStore) add(r nudge.DecisionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// between returns records with start <= DecidedAt < end.
func (s *decisionStore) between(start, end time.Time) []nudge.DecisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []nudge.DecisionRecord
	for _, r := range s.records {
		if !r.DecidedAt.Before(start) && r.DecidedAt.Before(end) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DecidedAt.Before(out[j].DecidedAt) })
	return out
}

func setupRoutes(handlers *Handlers, store *decisionStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())

	api := router.Group("/api")
	{
		api.POST("/best-times", handlers.BestTimesHandler)
		api.POST("/heatmap", handlers.HeatmapHandler)
		api.POST("/sacrifice", handlers.SacrificeHandler)
		api.POST("/nudge", handlers.NudgeHandler)
		api.POST("/decisions", handlers.DecisionHandler(store))
		api.GET("/reclaimed", handlers.ReclaimedHandler(store))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("golden Server v1.2.0")
		return
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose || os.Getenv("VERBOSE") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *port == "" {
		*port = os.Getenv("PORT")
		if *port == "" {
			*port = "8080"
		}
	}
	if env := os.Getenv("CACHE_TTL"); env != "" {
		parsed, err := time.ParseDuration(env)
		if err != nil {
			logger.Error("invalid CACHE_TTL", "value", env, "error", err)
			os.Exit(1)
		}
		*cacheTTL = parsed
	}

	if !*verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := golden.New(golden.WithLogger(logger))
	cache := rescache.New(*cacheTTL, logger)
	handlers := NewHandlers(engine, cache, logger)
	store := &decisionStore{}

	router := setupRoutes(handlers, store)

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", *port, "cache_ttl", cacheTTL.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
