// Package server provides the HTTP REST API for PARfolio: transcript
// structuring, tagging, coaching, and story storage, all scoped to the
// authenticated user.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/parfolio/internal/agent"
	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/config"
	"github.com/jonathan/parfolio/internal/db"
	"github.com/jonathan/parfolio/internal/llm"
	"github.com/jonathan/parfolio/internal/pipeline"
	"github.com/jonathan/parfolio/internal/research"
	"github.com/jonathan/parfolio/internal/server/middleware"
	"github.com/jonathan/parfolio/internal/server/ratelimit"
	"github.com/jonathan/parfolio/internal/toolcache"
	"github.com/jonathan/parfolio/internal/tools"
	"github.com/jonathan/parfolio/internal/types"
)

// storyCoach runs the agentic coaching path
type storyCoach interface {
	CoachStory(ctx context.Context, userID string, input chains.CoachingInput) (*types.CoachingResult, error)
}

// storyProcessor runs the full transcript-to-coached-story pipeline
type storyProcessor interface {
	Process(ctx context.Context, opts pipeline.ProcessOptions) (*pipeline.ProcessResult, error)
}

// storyStore is the subset of db.DB the handlers need
type storyStore interface {
	ListStories(ctx context.Context, userID string) ([]types.Story, error)
	GetStory(ctx context.Context, userID, storyID string) (*types.Story, error)
	CreateStory(ctx context.Context, story types.Story) (string, error)
	UpdateStoryTags(ctx context.Context, userID, storyID string, tags []string) error
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	UpsertProfile(ctx context.Context, userID string, profile types.UserProfile) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	database   *db.DB

	client    llm.Client
	coach     storyCoach
	processor storyProcessor
	stories   storyStore

	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// New wires up a server from configuration. The database and external search
// are optional; without them the corresponding tools degrade gracefully.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	modelConfig := llm.DefaultConfig()
	if cfg.PrimaryModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierPrimary, cfg.PrimaryModel)
	}
	if cfg.FallbackModel != "" {
		modelConfig = modelConfig.WithModel(llm.TierFallback, cfg.FallbackModel)
	}

	client, err := llm.NewClient(ctx, modelConfig, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		client:   client,
		validate: validator.New(),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.database = database
		s.stories = database
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	deps := tools.Deps{
		Cache: toolcache.New[string](cfg.CacheMaxEntries),
	}
	if cfg.CacheTTLHours > 0 {
		deps.CacheTTL = time.Duration(cfg.CacheTTLHours) * time.Hour
	}
	if cfg.SearchTimeoutSeconds > 0 {
		deps.SearchTimeout = time.Duration(cfg.SearchTimeoutSeconds) * time.Second
	}
	if s.database != nil {
		deps.Stories = s.database
		deps.Memory = s.database
	}
	if searcher, err := research.NewGoogleSearcher(ctx, cfg.SearchAPIKey, cfg.SearchEngineID); err == nil {
		deps.Search = searcher
	} else {
		log.Printf("external search not configured: %v", err)
	}

	var coachOpts []agent.Option
	if cfg.MaxAgentTurns > 0 {
		coachOpts = append(coachOpts, agent.WithMaxTurns(cfg.MaxAgentTurns))
	}
	coach := agent.NewCoach(client, deps, coachOpts...)
	s.coach = coach

	var profiles pipeline.ProfileStore
	if s.database != nil {
		profiles = s.database
	}
	s.processor = pipeline.NewProcessor(client, coach, profiles)

	addr := cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Coaching requests can take a while
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the full handler chain. Everything except the health check
// requires a valid bearer token.
func (s *Server) routes() http.Handler {
	authed := http.NewServeMux()
	authed.HandleFunc("POST /ai/structure", s.handleStructure)
	authed.HandleFunc("POST /ai/tag", s.handleTag)
	authed.HandleFunc("POST /ai/coach", s.handleCoach)
	authed.HandleFunc("POST /ai/process", s.handleProcess)

	authed.HandleFunc("GET /stories", s.handleListStories)
	authed.HandleFunc("POST /stories", s.handleCreateStory)
	authed.HandleFunc("GET /stories/{id}", s.handleGetStory)
	authed.HandleFunc("PUT /stories/{id}/tags", s.handleUpdateStoryTags)

	authed.HandleFunc("GET /profile", s.handleGetProfile)
	authed.HandleFunc("PUT /profile", s.handleUpsertProfile)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/", middleware.Auth(s.jwtService)(authed))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	if err := s.client.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
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

// withRateLimit enforces per-client budgets
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client for rate limiting by IP address
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
