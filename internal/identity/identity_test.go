package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bidboard/internal/config"

	gofakeit "github.com/brianvoe/gofakeit/v7"
)

func testIdentityConfig() config.IdentityConfig {
	return config.IdentityConfig{
		EmailHeader: "X-User-Email",
		NameHeader:  "X-User-Name",
		PhotoHeader: "X-User-Photo",
		StateHeader: "X-Auth-State",
	}
}

func TestHeaderProvider(t *testing.T) {
	p := NewHeaderProvider(testIdentityConfig())

	email, name, photo := gofakeit.Email(), gofakeit.Name(), gofakeit.URL()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-Email", email)
	req.Header.Set("X-User-Name", name)
	req.Header.Set("X-User-Photo", photo)

	id := p.Resolve(req)
	if !id.IsResolved() {
		t.Fatalf("expected resolved identity, got %s", id.State)
	}
	buyer := id.Buyer()
	if buyer.Email != email || buyer.Name != name || buyer.Photo != photo {
		t.Errorf("unexpected buyer %+v", buyer)
	}

	req = httptest.NewRequest("GET", "/", nil)
	if id := p.Resolve(req); id.State != Anonymous {
		t.Errorf("request without headers should be anonymous, got %s", id.State)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Auth-State", "Pending")
	req.Header.Set("X-User-Email", email)
	if id := p.Resolve(req); id.State != Unresolved {
		t.Errorf("pending request should be unresolved, got %s", id.State)
	}
}

func TestMiddleware(t *testing.T) {
	var got Identity
	h := Middleware(NewHeaderProvider(testIdentityConfig()), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-Email", "buyer@example.com")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got.Email != "buyer@example.com" || !got.IsResolved() {
		t.Errorf("unexpected identity in context: %+v", got)
	}

	if id := FromContext(req.Context()); id.State != Unresolved {
		t.Errorf("bare context should give unresolved identity, got %s", id.State)
	}
}
