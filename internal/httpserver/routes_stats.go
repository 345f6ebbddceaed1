// internal/httpserver/routes_stats.go
//
// Journal-backed statistics under /stats:
//   - GET /stats/confusion → (target, guess) counts across all sessions
//   - GET /stats/recent    → the caller's last rounds (session required)
//
// Both answer 503 journal_disabled when the server runs without a journal.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxRecent = 50

func (s *Server) mountStats() {
	s.r.Route("/stats", func(r chi.Router) {
		r.Use(s.requireJournal)
		r.Get("/confusion", s.handleConfusion)
		r.With(s.requireSession()).Get("/recent", s.handleRecent)
	})
}

func (s *Server) requireJournal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.journal == nil {
			writeError(w, http.StatusServiceUnavailable, "journal_disabled")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleConfusion(w http.ResponseWriter, r *http.Request) {
	cells, err := s.journal.Confusion(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("confusion query")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

// handleRecent accepts ?limit=N, clamped to 1..50.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := maxRecent
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < maxRecent {
			limit = n
		}
	}
	rows, err := s.journal.Recent(r.Context(), sessionFrom(r).ID(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent query")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
