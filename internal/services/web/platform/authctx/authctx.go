// Package authctx threads the resolved authentication state through request
// contexts so each request resolves its session at most once.
package authctx

import (
	"context"
	"net/http"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/requestctx"
	"github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
)

type stateKey struct{}

// Middleware resolves the request's authentication state once and stores it
// in the context. User and session ids ride along for log correlation.
func Middleware(resolve module.ResolveState) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolve == nil {
				next.ServeHTTP(w, r)
				return
			}
			state := resolve(r)
			ctx := context.WithValue(r.Context(), stateKey{}, state)
			if state.User != nil {
				ctx = requestctx.WithUserID(ctx, state.User.ID)
			}
			if state.Session != nil {
				ctx = requestctx.WithSessionID(ctx, state.Session.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StateFromContext returns the resolved state, or the anonymous state when
// the middleware did not run.
func StateFromContext(ctx context.Context) auth.State {
	if ctx == nil {
		return auth.Anonymous()
	}
	if state, ok := ctx.Value(stateKey{}).(auth.State); ok {
		return state
	}
	return auth.Anonymous()
}

// FromRequest returns the resolved state for a request.
func FromRequest(r *http.Request) auth.State {
	if r == nil {
		return auth.Anonymous()
	}
	return StateFromContext(r.Context())
}
