package middleware

import (
	"context"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/domain"
)

type fakeResolver struct {
	tokens map[string]string
}

func (r *fakeResolver) ResolveToken(_ context.Context, value string) (string, error) {
	if id, ok := r.tokens[value]; ok {
		return id, nil
	}
	return "", domain.ErrTokenNotFound
}

func runMiddleware(t *testing.T, authHeader string) (*fasthttp.RequestCtx, bool) {
	t.Helper()

	resolver := &fakeResolver{tokens: map[string]string{"valid-token": "user-1"}}
	called := false
	handler := TokenAuth(resolver, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	if authHeader != "" {
		ctx.Request.Header.Set("Authorization", authHeader)
	}
	handler(ctx)
	return ctx, called
}

func TestTokenAuth_ValidTokenSetsUserHeader(t *testing.T) {
	ctx, called := runMiddleware(t, "Bearer valid-token")
	if !called {
		t.Fatal("next handler must run")
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "user-1" {
		t.Fatalf("unexpected user header: %q", got)
	}
}

func TestTokenAuth_MissingHeader(t *testing.T) {
	ctx, called := runMiddleware(t, "")
	if called {
		t.Fatal("next handler must not run")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", ctx.Response.StatusCode())
	}
}

func TestTokenAuth_UnknownToken(t *testing.T) {
	ctx, called := runMiddleware(t, "Bearer revoked-token")
	if called {
		t.Fatal("next handler must not run")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", ctx.Response.StatusCode())
	}
}

func TestTokenAuth_BareTokenWithoutBearerPrefix(t *testing.T) {
	_, called := runMiddleware(t, "valid-token")
	if !called {
		t.Fatal("bare token must still be accepted")
	}
}
