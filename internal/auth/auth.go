package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// User is the externally issued identity. Session issuance and verification
// are delegated to the auth provider at the edge; this service only consumes
// the already-verified identity.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

var ErrNoUser = errors.New("auth: no authenticated user")

// Provider resolves the current user for a request.
type Provider interface {
	CurrentUser(r *http.Request) (*User, error)
}

// HeaderProvider reads the identity headers attached by the edge after it
// verified the session (X-User-Id, X-User-Email, X-User-Meta).
type HeaderProvider struct{}

func NewHeaderProvider() *HeaderProvider { return &HeaderProvider{} }

func (p *HeaderProvider) CurrentUser(r *http.Request) (*User, error) {
	id := r.Header.Get("X-User-Id")
	if id == "" {
		return nil, ErrNoUser
	}
	u := &User{
		ID:    id,
		Email: r.Header.Get("X-User-Email"),
	}
	// Optional name metadata, same shape the provider stores at signup.
	if meta := r.Header.Get("X-User-Meta"); meta != "" {
		var m struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := json.Unmarshal([]byte(meta), &m); err == nil {
			u.FirstName = m.FirstName
			u.LastName = m.LastName
		}
	}
	return u, nil
}

type contextKey struct{}

// WithUser and FromContext pass the resolved identity through middleware.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok
}

// Middleware resolves the current user when present and stores it on the
// request context. Requests without an identity pass through untouched;
// handlers that require one decide for themselves.
func Middleware(p Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := p.CurrentUser(r); err == nil {
				r = r.WithContext(WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}
