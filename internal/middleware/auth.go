package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jaekwang-park/todo-summary/internal/identity"
	"github.com/jaekwang-park/todo-summary/internal/model"
)

type AuthConfig struct {
	DevMode  bool
	Verifier identity.Verifier
}

type Auth struct {
	cfg AuthConfig
}

func NewAuth(cfg AuthConfig) (*Auth, error) {
	if !cfg.DevMode && cfg.Verifier == nil {
		return nil, fmt.Errorf("middleware: Verifier is required when DevMode is false")
	}
	return &Auth{cfg: cfg}, nil
}

// Middleware rejects requests without a valid bearer credential and stores
// the verified identity in the request context.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.DevMode {
			a.handleDevMode(w, r, next)
			return
		}

		a.handleBearer(w, r, next)
	})
}

func (a *Auth) handleDevMode(w http.ResponseWriter, r *http.Request, next http.Handler) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header required in dev mode")
		return
	}

	ctx := SetIdentity(r.Context(), model.Identity{
		ID:    userID,
		Email: r.Header.Get("X-User-Email"),
	})
	next.ServeHTTP(w, r.WithContext(ctx))
}

func (a *Auth) handleBearer(w http.ResponseWriter, r *http.Request, next http.Handler) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "no token provided")
		return
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
		return
	}

	id, err := a.cfg.Verifier.Verify(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		slog.WarnContext(r.Context(), "token verification failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		return
	}

	next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), id)))
}
