// internal/httpserver/routes_admin.go
//
// Admin routes (basic auth):
//   - GET /admin/outcomes?limit=N → most recent confirmed outcomes from the journal
//
// The route only exists when a journal is configured and ADMIN_USER /
// ADMIN_PASSWORD_HASH are both set; otherwise it falls through to the JSON 404.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func (s *Server) mountAdmin(r chi.Router) {
	if s.journal == nil || s.cfg.AdminUser == "" || s.cfg.AdminHash == "" {
		return
	}
	r.With(s.requireAdmin).Get("/admin/outcomes", s.handleOutcomes)
}

func (s *Server) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	entries, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list outcomes")
		writeError(w, http.StatusInternalServerError, "journal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": entries})
}
