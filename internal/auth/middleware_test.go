package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func protectedEndpoint(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	reached := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &reached
}

func adminToken(t *testing.T, svc *Service) string {
	t.Helper()
	session, err := svc.Authenticate(context.Background(), "admin@prefscale.io", "admin-pass")
	if err != nil {
		t.Fatalf("admin Authenticate error: %v", err)
	}
	return session.Token
}

func userToken(t *testing.T, svc *Service) string {
	t.Helper()
	ctx := context.Background()
	if err := svc.Register(ctx, "Ann", "Acme", "ann@x.com", "pw123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	session, err := svc.Authenticate(ctx, "ann@x.com", "pw123")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	return session.Token
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	next, reached := protectedEndpoint(t)
	h := Middleware(svc)(next)

	for _, header := range []string{"", "Token abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/blog", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
	if *reached {
		t.Fatalf("handler must not run without a token")
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	other := NewService(newFakeAccountStore(), "other-secret", "admin@prefscale.io", "admin-pass", time.Hour)
	next, reached := protectedEndpoint(t)
	h := Middleware(svc)(next)

	tokens := []string{
		"not-a-jwt",
		adminToken(t, other), // signed with the wrong secret
	}
	expired := NewService(newFakeAccountStore(), "test-secret", "admin@prefscale.io", "admin-pass", -time.Minute)
	tokens = append(tokens, adminToken(t, expired))

	for _, tok := range tokens {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/blog", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %d", tok, rec.Code)
		}
	}
	if *reached {
		t.Fatalf("handler must not run with a bad token")
	}
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	tok := userToken(t, svc)

	var got *Identity
	h := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatalf("identity not attached")
	}
	if got.Role != RoleUser || got.Email != "ann@x.com" || got.AccountID == 0 {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	next, reached := protectedEndpoint(t)
	h := Middleware(svc)(RequireAdmin(next))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/blog", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, svc))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user token on admin route: expected 403, got %d", rec.Code)
	}
	if *reached {
		t.Fatalf("handler must not run for non-admin")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/blog", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, svc))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin token: expected 200, got %d", rec.Code)
	}
	if !*reached {
		t.Fatalf("handler should run for admin")
	}
}

func TestRequireAdminWithoutMiddleware(t *testing.T) {
	next, reached := protectedEndpoint(t)
	h := RequireAdmin(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/blog", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if *reached {
		t.Fatalf("handler must not run without an identity")
	}
}
