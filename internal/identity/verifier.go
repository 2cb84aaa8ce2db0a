// Package identity verifies bearer credentials issued by an external
// identity provider and turns them into a model.Identity.
package identity

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaekwang-park/todo-summary/internal/model"
)

// ErrUnauthenticated is returned for absent, malformed or rejected credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

type Verifier interface {
	Verify(ctx context.Context, credential string) (model.Identity, error)
}

// KeySource resolves a JWT kid header to an RSA public key.
type KeySource interface {
	GetKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// JWTVerifier validates RS256 ID tokens against a provider's signing keys,
// issuer and audience.
type JWTVerifier struct {
	keys     KeySource
	issuer   string
	audience string
}

func NewJWTVerifier(keys KeySource, issuer, audience string) (*JWTVerifier, error) {
	if keys == nil {
		return nil, fmt.Errorf("identity: key source is required")
	}
	if issuer == "" || audience == "" {
		return nil, fmt.Errorf("identity: issuer and audience are required")
	}
	return &JWTVerifier{keys: keys, issuer: issuer, audience: audience}, nil
}

func (v *JWTVerifier) Verify(ctx context.Context, credential string) (model.Identity, error) {
	if credential == "" {
		return model.Identity{}, fmt.Errorf("%w: credential is empty", ErrUnauthenticated)
	}

	token, err := jwt.Parse(credential, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("kid header not found")
		}

		return v.keys.GetKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return model.Identity{}, fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, fmt.Errorf("%w: invalid token claims", ErrUnauthenticated)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return model.Identity{}, fmt.Errorf("%w: sub claim not found", ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)

	return model.Identity{ID: sub, Email: email}, nil
}

var _ Verifier = (*JWTVerifier)(nil)
