// Package identity models the signed-in user as an explicit value handed to
// every operation that needs it.
package identity

import (
	"context"
	"net/http"
	"strings"

	"bidboard/internal/config"
	"bidboard/internal/models"
)

type State int

const (
	// Unresolved means the identity provider has not answered yet.
	Unresolved State = iota
	// Anonymous means the provider answered and nobody is signed in.
	Anonymous
	Resolved
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Resolved:
		return "resolved"
	default:
		return "unresolved"
	}
}

type Identity struct {
	State       State
	Email       string
	DisplayName string
	PhotoURL    string
}

func New(email, displayName, photoURL string) Identity {
	return Identity{
		State:       Resolved,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
	}
}

func NewAnonymous() Identity {
	return Identity{State: Anonymous}
}

func (id Identity) IsResolved() bool {
	return id.State == Resolved
}

// Buyer returns the buyer sub-record a job posted by this identity carries.
func (id Identity) Buyer() models.Buyer {
	return models.Buyer{
		Email: id.Email,
		Name:  id.DisplayName,
		Photo: id.PhotoURL,
	}
}

// Provider resolves the identity behind a request.
type Provider interface {
	Resolve(r *http.Request) Identity
}

// HeaderProvider reads the identity from headers set by an authenticating
// proxy. A request with the state header set to "pending" is unresolved; a
// request without an email header is anonymous.
type HeaderProvider struct {
	cfg config.IdentityConfig
}

func NewHeaderProvider(cfg config.IdentityConfig) *HeaderProvider {
	return &HeaderProvider{cfg: cfg}
}

func (p *HeaderProvider) Resolve(r *http.Request) Identity {
	if strings.EqualFold(r.Header.Get(p.cfg.StateHeader), "pending") {
		return Identity{}
	}

	email := strings.TrimSpace(r.Header.Get(p.cfg.EmailHeader))
	if email == "" {
		return NewAnonymous()
	}

	return New(email, r.Header.Get(p.cfg.NameHeader), r.Header.Get(p.cfg.PhotoHeader))
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by Middleware, or an unresolved
// identity when there is none.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}

func Middleware(p Provider, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), p.Resolve(r))))
	})
}
