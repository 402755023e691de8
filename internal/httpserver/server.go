// internal/httpserver/server.go
//
// HTTP server wiring for the valentine puzzle.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Session endpoints: POST /session creates one; everything under /session
//     requires the signed session token (cookie or bearer).
//   - Admin endpoint: GET /admin/outcomes (basic auth, bcrypt).
//
// Notes:
//   - The browser is the rendering surface. It reports rendered slot centers and
//     pointer events; the puzzle core runs here, one session per page load.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/config"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/journal"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/metrics"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/puzzle"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/store"
)

// Recorder persists confirmed outcomes. *journal.Journal satisfies it.
type Recorder interface {
	Record(ctx context.Context, o session.Outcome) error
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
}

// Server bundles router, session store, content and optional journal.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	content *puzzle.Content
	journal Recorder // nil when DATABASE_PATH is unset
	metrics *metrics.Metrics

	// sessionOpts are appended to every new session (tests pin schedulers here).
	sessionOpts []session.Option
}

// Option configures a Server.
type Option func(*Server)

// WithJournal enables outcome recording and the admin endpoint.
func WithJournal(j Recorder) Option { return func(s *Server) { s.journal = j } }

// WithSessionOptions adds options to every session the server creates.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) { s.sessionOpts = append(s.sessionOpts, opts...) }
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, c *puzzle.Content, opts ...Option) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, content: c, metrics: metrics.New()}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(s.corsFromConfig)                // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"valentine","endpoints":["/health","POST /session","/session/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountSession(r)
		s.mountAdmin(r)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Metrics exposes the counters (useful for tests).
func (s *Server) Metrics() *metrics.Metrics { return s.metrics }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromConfig enables credentialed CORS for the configured client origin.
func (s *Server) corsFromConfig(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the `{"error": code}` body used by every failing route.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
