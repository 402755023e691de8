// internal/httpserver/routes_session.go
//
// HTTP routes for one page session:
//   - POST /session                  → create a session (sets cookie, returns token + view)
//   - GET  /session                  → read back the full view
//   - POST /session/layout           → report rendered slot centers of a wheel
//   - POST /session/pointer          → one pointer event (down | move | up)
//   - POST /session/word             → submit a word directly
//   - POST /session/shuffle          → rearrange the main wheel
//   - POST /session/giveup           → give up and open the confirmation
//   - POST /session/yes/input        → replace the confirmation buffer
//   - POST /session/yes/submit       → submit the confirmation buffer
//   - POST /session/incorrect/reset  → clear the incorrect banner
//
// Every mutating route answers with the update (when there is one) and the fresh view.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/wheel"
)

// mountSession registers all /session routes.
func (s *Server) mountSession(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession())
			r.Get("/", s.handleView)
			r.Post("/layout", s.handleLayout)
			r.Post("/pointer", s.handlePointer)
			r.Post("/word", s.handleWord)
			r.Post("/shuffle", s.handleShuffle)
			r.Post("/giveup", s.handleGiveUp)
			r.Post("/yes/input", s.handleYesInput)
			r.Post("/yes/submit", s.handleYesSubmit)
			r.Post("/incorrect/reset", s.handleResetIncorrect)
		})
	})
}

// viewRes wraps a view with the update that produced it.
type viewRes struct {
	Update *session.Update `json:"update,omitempty"`
	View   session.View    `json:"view"`
}

// newSessionRes is returned by POST /session.
type newSessionRes struct {
	Token string       `json:"token"`
	View  session.View `json:"view"`
}

// handleNewSession creates a session with a seeded random source and signs its token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	opts := append([]session.Option{
		session.WithRand(session.NewRand(s.cfg.JWTSecret, id)),
		session.WithObserver(s.recordOutcome),
	}, s.sessionOpts...)
	sess := session.New(id, s.content, opts...)

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	s.metrics.SessionsStarted.Inc()
	log.Info().Str("session", id).Msg("session started")

	writeJSON(w, http.StatusCreated, newSessionRes{Token: tok, View: sess.View()})
}

// recordOutcome is the session observer: it journals the confirmed outcome.
func (s *Server) recordOutcome(o session.Outcome) {
	log.Info().
		Str("session", o.SessionID).
		Int("wrongAttempts", o.WrongAttempts).
		Bool("gaveUp", o.GaveUp).
		Int("confirmAttempts", o.ConfirmAttempts).
		Dur("elapsed", o.Elapsed()).
		Msg("proposal accepted")
	if s.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.journal.Record(ctx, o); err != nil {
		log.Warn().Err(err).Str("session", o.SessionID).Msg("record outcome")
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewRes{View: sessionFrom(r).View()})
}

// layoutReq reports the rendered centers of one wheel's slots, in slot order.
type layoutReq struct {
	Wheel   session.WheelID `json:"wheel"`
	Centers []wheel.Point   `json:"centers"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	if err := sess.RegisterLayout(req.Wheel, req.Centers); err != nil {
		writeError(w, http.StatusBadRequest, errCode(err))
		return
	}
	writeJSON(w, http.StatusOK, viewRes{View: sess.View()})
}

// pointerReq is one pointer event.
type pointerReq struct {
	Wheel session.WheelID     `json:"wheel"`
	Kind  session.PointerKind `json:"kind"`
	X     float64             `json:"x"`
	Y     float64             `json:"y"`
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var req pointerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	u, err := sess.Pointer(req.Wheel, req.Kind, wheel.Point{X: req.X, Y: req.Y})
	if err != nil {
		writeError(w, http.StatusBadRequest, errCode(err))
		return
	}
	s.observe(u)
	writeJSON(w, http.StatusOK, viewRes{Update: &u, View: sess.View()})
}

// wordReq submits a word without tracing it.
type wordReq struct {
	Word string `json:"word"`
}

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	u := sess.SubmitWord(req.Word)
	s.observe(u)
	writeJSON(w, http.StatusOK, viewRes{Update: &u, View: sess.View()})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Shuffle()
	writeJSON(w, http.StatusOK, viewRes{View: sess.View()})
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess.GiveUp() {
		s.metrics.GiveUps.Inc()
		log.Info().Str("session", sess.ID()).Msg("gave up")
	}
	writeJSON(w, http.StatusOK, viewRes{View: sess.View()})
}

// yesInputReq replaces the confirmation buffer.
type yesInputReq struct {
	Input string `json:"input"`
}

func (s *Server) handleYesInput(w http.ResponseWriter, r *http.Request) {
	var req yesInputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	if err := sess.UpdateConfirmationInput(req.Input); err != nil {
		writeError(w, http.StatusConflict, errCode(err))
		return
	}
	writeJSON(w, http.StatusOK, viewRes{View: sess.View()})
}

func (s *Server) handleYesSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	already := sess.View().Confirmed
	ok, err := sess.SubmitConfirmation()
	if err != nil {
		writeError(w, http.StatusConflict, errCode(err))
		return
	}
	// resubmitting after confirmation is a no-op, not another answer
	if !already {
		s.metrics.Confirmation(ok)
	}
	writeJSON(w, http.StatusOK, viewRes{Update: &session.Update{Confirmed: &ok}, View: sess.View()})
}

func (s *Server) handleResetIncorrect(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.ResetIncorrect()
	writeJSON(w, http.StatusOK, viewRes{View: sess.View()})
}

// observe counts what an update did.
func (s *Server) observe(u session.Update) {
	s.metrics.Word(u.Result)
	if u.Confirmed != nil {
		s.metrics.Confirmation(*u.Confirmed)
	}
}

// errCode maps session errors to stable JSON error codes.
func errCode(err error) string {
	switch {
	case errors.Is(err, session.ErrUnknownWheel):
		return "unknown_wheel"
	case errors.Is(err, session.ErrUnknownPointer):
		return "unknown_pointer"
	case errors.Is(err, session.ErrNotConfirming):
		return "not_confirming"
	default:
		return "bad_request"
	}
}
