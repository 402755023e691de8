// internal/httpserver/auth.go
//
// Session tokens and admin authentication.
//   - Session tokens are HS256 JWTs carrying the session id in a "sid" claim. They
//     are sent back as an HttpOnly cookie and in the JSON body (for bearer use).
//   - The admin endpoint uses HTTP basic auth checked against a bcrypt hash.

package httpserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/store"
)

// ctxSessionKey is the context key type for storing the resolved session.
type ctxSessionKey struct{}

// sessionFrom returns the session placed in the context by requireSession.
func sessionFrom(r *http.Request) *session.Session {
	s, _ := r.Context().Value(ctxSessionKey{}).(*session.Session)
	return s
}

// signToken creates an HS256 JWT for sid that expires with the session TTL.
func (s *Server) signToken(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseToken validates a token and returns its session id.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("invalid token")
	}
	return sid, nil
}

// requireSession enforces a valid token and injects the live session into the context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.bearerOrCookie(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "no_session")
				return
			}
			sid, err := s.parseToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			sess, err := s.store.Get(r.Context(), sid)
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "session_expired")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "store_error")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// setSessionCookie writes the token cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// requireAdmin checks basic auth against ADMIN_USER / ADMIN_PASSWORD_HASH.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pw, ok := r.BasicAuth()
		if !ok || !s.checkAdmin(user, pw) {
			w.Header().Set("WWW-Authenticate", `Basic realm="valentine"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkAdmin(user, pw string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.AdminUser)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminHash), []byte(pw)) == nil
}
