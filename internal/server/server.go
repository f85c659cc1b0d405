// Package server provides the HTTP REST API for fleet damage estimates.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fleet-estimator/internal/config"
	"github.com/jonathan/fleet-estimator/internal/db"
	"github.com/jonathan/fleet-estimator/internal/estimate"
	"github.com/jonathan/fleet-estimator/internal/llm"
	"github.com/jonathan/fleet-estimator/internal/server/middleware"
	"github.com/jonathan/fleet-estimator/internal/server/ratelimit"
	"github.com/jonathan/fleet-estimator/internal/sketch"
	"github.com/jonathan/fleet-estimator/internal/types"
)

// shutdownTimeout bounds graceful shutdown once the serve context ends.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       VehicleStore
	estimator   *estimate.AIEstimator
	cache       *estimateCache
	geometry    sketch.Geometry
	fleetID     string
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	now         func() time.Time
	closers     []func() error
}

// Config holds server configuration
type Config struct {
	Port            int
	FleetID         string
	ModelTier       llm.ModelTier
	EstimateTimeout time.Duration
	CacheSize       int
	CacheTTL        time.Duration
}

// Deps are the collaborators a Server is built from. Store and Model may be
// nil; the routes that need them then answer 503.
type Deps struct {
	Store     VehicleStore
	Model     estimate.Model
	JWT       *JWTService
	RateLimit *ratelimit.Config
}

// ConfigFrom converts the file/env configuration into server settings.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		Port:            cfg.Port,
		FleetID:         cfg.FleetID,
		ModelTier:       cfg.Tier(),
		EstimateTimeout: cfg.Timeout(),
		CacheSize:       cfg.CacheSize,
		CacheTTL:        cfg.TTL(),
	}
}

// New creates a server wired to PostgreSQL and Gemini. Without a database URL
// the vehicle routes are disabled; without an API key the AI routes are.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	deps := Deps{
		JWT:       NewJWTService(jwtConfig),
		RateLimit: ratelimit.LoadConfig(),
	}
	var closers []func() error

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		deps.Store = database
		closers = append(closers, func() error { database.Close(); return nil })
	} else {
		log.Println("DATABASE_URL not set, vehicle routes disabled")
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		deps.Model = client
		closers = append(closers, client.Close)
	} else {
		log.Println("GEMINI_API_KEY not set, AI estimate routes disabled")
	}

	s := NewWithDeps(ConfigFrom(cfg), deps)
	s.closers = closers
	return s, nil
}

// NewWithDeps creates a server from explicit collaborators.
func NewWithDeps(cfg Config, deps Deps) *Server {
	if cfg.FleetID == "" {
		cfg.FleetID = types.DefaultFleetID
	}
	if cfg.ModelTier == "" {
		cfg.ModelTier = llm.TierStandard
	}

	s := &Server{
		store:       deps.Store,
		cache:       newEstimateCache(cfg.CacheSize, cfg.CacheTTL),
		geometry:    sketch.DefaultGeometry(),
		fleetID:     cfg.FleetID,
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		jwtService:  deps.JWT,
		now:         time.Now,
	}
	if deps.Model != nil {
		s.estimator = estimate.NewAIEstimator(deps.Model,
			estimate.WithTier(cfg.ModelTier),
			estimate.WithTimeout(cfg.EstimateTimeout),
		)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the full middleware chain and router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /parts", s.handleParts)

	auth := s.requireAuth
	// Damage endpoints
	mux.Handle("POST /damage/areas", auth(s.handleDamageAreas))
	mux.Handle("POST /damage/sketch", auth(s.handleDamageSketch))

	// Estimate endpoints
	mux.Handle("POST /estimates/manual", auth(s.handleManualEstimate))
	mux.Handle("POST /estimates/ai", auth(s.handleAIEstimate))

	// Vehicle endpoints
	mux.Handle("GET /vehicles", auth(s.handleListVehicles))
	mux.Handle("POST /vehicles", auth(s.handleCreateVehicle))
	mux.Handle("GET /vehicles/{id}", auth(s.handleGetVehicle))
	mux.Handle("DELETE /vehicles/{id}", auth(s.handleDeleteVehicle))
	mux.Handle("POST /vehicles/{id}/estimate", auth(s.handleVehicleEstimate))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

func (s *Server) requireAuth(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.errorResponse(w, http.StatusServiceUnavailable, "authentication is not configured")
		})
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	log.Println("Server stopped")
	return err
}

// Close releases the rate limiter, database pool and model client.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Printf("Error closing resource: %v", err)
		}
	}
	s.closers = nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"kind":      "rate_limit_exceeded",
		"retryable": true,
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
