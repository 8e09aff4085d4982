package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"bloomviewer/internal/auth"
	"bloomviewer/internal/models"

	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwt  *auth.JWTManager
	logr *zap.Logger
}

type contextKey string

const ContextSubjectKey contextKey = "subject"

// NewAuthMiddleware creates a reusable JWT auth middleware instance
func NewAuthMiddleware(jwtMgr *auth.JWTManager, logr *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtMgr, logr: logr}
}

// RequireEditor only lets requests through that carry a valid bearer token
// with the editor role, and attaches the token subject to the context.
func (m *AuthMiddleware) RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			deny(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			deny(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwt.VerifyToken(tokenString)
		if err != nil {
			m.logr.Warn("token verification failed", zap.Error(err))
			deny(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		subject, _ := claims["sub"].(string)
		if !auth.HasRole(claims, auth.RoleEditor) {
			m.logr.Warn("token lacks editor role", zap.String("subject", subject))
			deny(w, http.StatusForbidden, "Editor role required")
			return
		}

		ctx := context.WithValue(r.Context(), ContextSubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFrom returns the authenticated subject, if any.
func SubjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(ContextSubjectKey).(string)
	return s
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.Response{Success: false, Message: msg})
}
