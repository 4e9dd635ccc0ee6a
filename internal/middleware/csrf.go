package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// SessionName is the gorilla session that holds the CSRF token and the cart
const SessionName = "session"

const (
	csrfSessionKey = "csrf_token"
	csrfContextKey contextKey = "csrf_token"

	// CSRFHeader is the header HTMX requests carry the token in
	CSRFHeader = "X-CSRF-Token"
	// CSRFFormField is the form field regular posts carry the token in
	CSRFFormField = "csrf_token"
)

// CSRFMiddleware provides CSRF protection functionality
type CSRFMiddleware struct {
	store  sessions.Store
	logger *zap.Logger
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(store sessions.Store, logger *zap.Logger) *CSRFMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSRFMiddleware{
		store:  store,
		logger: logger,
	}
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() string {
	return uuid.NewString()
}

// GetCSRFToken returns the token EnsureCSRFToken put in the context
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfContextKey).(string)
	return token
}

// EnsureCSRFToken makes sure the session has a CSRF token and exposes it to templates
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// Unreadable or expired session: carry on with the fresh one
			m.logger.Debug("discarding unreadable session", zap.Error(err))
		}

		token, ok := session.Values[csrfSessionKey].(string)
		if !ok || token == "" {
			token = GenerateCSRFToken()
			session.Values[csrfSessionKey] = token
			if err := session.Save(r, w); err != nil {
				m.logger.Error("failed to save session", zap.Error(err))
				writeError(w, r, http.StatusInternalServerError, "Session error")
				return
			}
		}

		ctx := context.WithValue(r.Context(), csrfContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFProtection rejects state-changing requests whose token does not match the session's
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip CSRF check for safe methods
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r, SessionName)
		if err != nil {
			writeError(w, r, http.StatusForbidden, "Your session has expired. Please refresh the page and try again.")
			return
		}

		sessionToken, _ := session.Values[csrfSessionKey].(string)

		requestToken := r.Header.Get(CSRFHeader)
		if requestToken == "" {
			requestToken = r.FormValue(CSRFFormField)
		}

		if sessionToken == "" || subtle.ConstantTimeCompare([]byte(requestToken), []byte(sessionToken)) != 1 {
			m.logger.Warn("csrf token mismatch",
				zap.String("path", r.URL.Path),
				zap.Bool("has_session_token", sessionToken != ""),
				zap.Bool("has_request_token", requestToken != ""),
			)
			writeError(w, r, http.StatusForbidden, "Security token mismatch. Please refresh the page and try again.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
