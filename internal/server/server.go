package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finquest/finquest/internal/achievement"
	"github.com/finquest/finquest/internal/auth"
	"github.com/finquest/finquest/internal/character"
	"github.com/finquest/finquest/internal/database"
	"github.com/finquest/finquest/internal/handler"
	"github.com/finquest/finquest/internal/leaderboard"
	"github.com/finquest/finquest/internal/logger"
	"github.com/finquest/finquest/internal/metrics"
	"github.com/finquest/finquest/internal/minigame"
	"github.com/finquest/finquest/internal/quest"
	"github.com/finquest/finquest/internal/social"
)

// Services bundles everything the router needs. Keeps NewServer's signature
// from growing a parameter per feature.
type Services struct {
	Auth        auth.Service
	Character   character.Service
	Quest       quest.Service
	MiniGame    minigame.Service
	Achievement achievement.Service
	Leaderboard leaderboard.Service
	Social      social.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(svcs.Auth, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.HandleRegister(svcs.Auth))
			r.Post("/login", handler.HandleLogin(svcs.Auth))
			r.Get("/me", handler.HandleGetMe(svcs.Auth))
		})

		characterHandler := handler.NewCharacterHandler(svcs.Character)
		r.Route("/characters", func(r chi.Router) {
			r.Post("/", characterHandler.Create)
			r.Get("/", characterHandler.GetProfile)
			r.Put("/name", characterHandler.Rename)
			r.Put("/snapshot", characterHandler.UpdateSnapshot)
			r.Get("/stats", characterHandler.GetStats)
		})

		questHandler := handler.NewQuestHandler(svcs.Quest)
		r.Route("/quests", func(r chi.Router) {
			r.Get("/", questHandler.List)
			r.Get("/{questID}", questHandler.Get)
			r.Post("/{questID}/accept", questHandler.Accept)
			r.Post("/{questID}/submit", questHandler.Submit)
		})

		miniGameHandler := handler.NewMiniGameHandler(svcs.MiniGame)
		r.Route("/minigames", func(r chi.Router) {
			r.Post("/play", miniGameHandler.RecordPlay)
			r.Get("/history", miniGameHandler.History)
			r.Get("/best", miniGameHandler.BestScores)
		})

		achievementHandler := handler.NewAchievementHandler(svcs.Achievement, svcs.Character)
		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", achievementHandler.List)
			r.Get("/unlocked", achievementHandler.ListUnlocked)
		})

		r.Get("/leaderboard", handler.HandleGetLeaderboard(svcs.Leaderboard))

		socialHandler := handler.NewSocialHandler(svcs.Social)
		r.Route("/social", func(r chi.Router) {
			r.Get("/friends", socialHandler.ListFriends)
			r.Get("/requests", socialHandler.ListRequests)
			r.Post("/add", socialHandler.AddFriend)
			r.Put("/accept/{friendshipID}", socialHandler.AcceptFriend)
			r.Delete("/{friendshipID}", socialHandler.RemoveFriend)
			r.Get("/search", socialHandler.SearchUsers)
			r.Get("/compare/{userID}", socialHandler.Compare)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
