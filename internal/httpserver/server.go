// internal/httpserver/server.go
//
// HTTP server wiring for the planet quiz.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/planets", "/explain".
//   - Session endpoints: POST /session/new, GET /session, POST /session/{select,guess,next}.
//   - Journal-backed stats: mounted under /stats (see routes_stats.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - Command errors map to 400 (unknown planet) or 409 (wrong phase); the
//     session is left untouched in both cases.
//   - Journal writes are best effort: a failure is logged, never returned.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/lci-upiiz/adivina-planeta/internal/explain"
	"github.com/lci-upiiz/adivina-planeta/internal/game"
	"github.com/lci-upiiz/adivina-planeta/internal/journal"
	"github.com/lci-upiiz/adivina-planeta/internal/store"
)

// Journal is the round log the server writes guesses to. Optional.
type Journal interface {
	Record(ctx context.Context, o game.Outcome) error
	Recent(ctx context.Context, sessionID string, limit int) ([]journal.Entry, error)
	Confusion(ctx context.Context) ([]journal.Cell, error)
}

// Options carries the server's collaborators and session settings.
type Options struct {
	Store        store.Store
	Generator    *game.Generator
	Journal      Journal // nil disables /stats and journaling
	Explain      explain.Dialog
	Secret       string
	TTL          time.Duration
	CookieName   string
	Secure       bool // production cookies: Secure + SameSite=None
	ClientOrigin string
}

// Server bundles router, session store, round generator and journal.
type Server struct {
	r          *chi.Mux
	store      store.Store
	gen        *game.Generator
	journal    Journal
	explain    explain.Dialog
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:          chi.NewRouter(),
		store:      opts.Store,
		gen:        opts.Generator,
		journal:    opts.Journal,
		explain:    opts.Explain,
		secret:     []byte(opts.Secret),
		ttl:        opts.TTL,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	if s.cookieName == "" {
		s.cookieName = "planet_session"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           600,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"adivina-planeta","endpoints":["/health","/planets","/explain","POST /session/new","/session","POST /session/select","POST /session/guess","POST /session/next","/stats/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- static tables ---
	s.r.Get("/planets", s.handlePlanets)
	s.r.Get("/explain", s.handleExplain)

	// --- game ---
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession())
		r.Get("/session", s.handleState)
		r.Post("/session/select", s.handleSelect)
		r.Post("/session/guess", s.handleGuess)
		r.Post("/session/next", s.handleNext)
	})

	s.mountStats()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests and for wrapping in http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one access log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("dur", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("http")
	})
}

// ------------------------------ GAME ---------------------------------------

type newSessionRes struct {
	Token string      `json:"token"`
	State sessionView `json:"state"`
}

// handleNewSession starts a session with its first round, stores it and
// hands the caller a signed token (also set as a cookie).
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := game.NewSession(s.gen)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signSession(sess.ID())
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("session", sess.ID()).Msg("session started")
	writeJSON(w, http.StatusOK, newSessionRes{Token: tok, State: renderState(sess.State())})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, renderState(sessionFrom(r).State()))
}

type selectReq struct {
	Planet string `json:"planet"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	st, err := sessionFrom(r).SelectAnswer(req.Planet)
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderState(st))
}

// handleGuess submits the selection, journals the outcome and returns the
// revealed view.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	out, err := sessionFrom(r).SubmitGuess()
	if err != nil {
		writeCommandError(w, err)
		return
	}
	log.Info().
		Str("session", out.SessionID).
		Int("round", out.Round).
		Bool("correct", out.Correct).
		Int("score", out.Score.Correct).
		Int("attempts", out.Score.Total).
		Msg("guess submitted")

	if s.journal != nil {
		if err := s.journal.Record(r.Context(), out); err != nil {
			log.Warn().Err(err).Str("session", out.SessionID).Msg("journal round")
		}
	}
	writeJSON(w, http.StatusOK, renderState(out.State))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, renderState(sessionFrom(r).NewRound()))
}

// ------------------------------ tables -------------------------------------

func (s *Server) handlePlanets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.gen.Catalog().All())
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.explain)
}

// ------------------------------- helpers -----------------------------------

// writeCommandError maps a rejected game command to a status and error code.
func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownPlanet):
		writeError(w, http.StatusBadRequest, "unknown_planet")
	case errors.Is(err, game.ErrNoSelection):
		writeError(w, http.StatusConflict, "no_selection")
	case errors.Is(err, game.ErrRoundRevealed):
		writeError(w, http.StatusConflict, "round_revealed")
	case errors.Is(err, game.ErrInvalidOperation):
		writeError(w, http.StatusConflict, "invalid_operation")
	default:
		log.Error().Err(err).Msg("unexpected command error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
