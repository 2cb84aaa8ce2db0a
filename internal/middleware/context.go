package middleware

import (
	"context"
	"net/http"

	"github.com/jaekwang-park/todo-summary/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

func SetIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the caller stored by the auth middleware, or the zero
// Identity when the request was not authenticated.
func GetIdentity(r *http.Request) model.Identity {
	v, _ := r.Context().Value(identityKey).(model.Identity)
	return v
}
