package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/baechuer/eventhub/internal/application/auth"
	appCtx "github.com/baechuer/eventhub/internal/pkg/context"
	"github.com/baechuer/eventhub/internal/transport/http/response"
)

type ctxKey string

const (
	ctxUserID   ctxKey = "user_id"
	ctxUsername ctxKey = "username"
	ctxIsStaff  ctxKey = "is_staff"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (auth.TokenClaims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuth(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Require rejects requests without a valid bearer token.
func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.parse(r)
		if err != nil {
			response.Fail(w, http.StatusUnauthorized, "unauthorized", "unauthorized",
				nil, appCtx.GetRequestID(r.Context()))
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxUsername, claims.Username)
		ctx = context.WithValue(ctx, ctxIsStaff, claims.IsStaff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AuthMiddleware) parse(r *http.Request) (auth.TokenClaims, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(h, "Bearer ") {
		return auth.TokenClaims{}, errors.New("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return a.verifier.VerifyAccessToken(raw)
}

func UserID(r *http.Request) string {
	if v, ok := r.Context().Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func Username(r *http.Request) string {
	if v, ok := r.Context().Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

func IsStaff(r *http.Request) bool {
	if v, ok := r.Context().Value(ctxIsStaff).(bool); ok {
		return v
	}
	return false
}
