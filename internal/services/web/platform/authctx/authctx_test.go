package authctx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/requestctx"
)

func TestMiddlewareStoresState(t *testing.T) {
	user := auth.User{ID: "user-1", Email: "irmao@luz.org.br"}
	session := auth.Session{ID: "session-1", UserID: "user-1"}
	resolve := func(*http.Request) auth.State {
		return auth.State{User: &user, Session: &session, IsMember: true}
	}

	var observed auth.State
	var observedUserID string
	handler := Middleware(resolve)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		observed = FromRequest(r)
		observedUserID = requestctx.UserIDFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members", nil))

	if observed.User == nil || observed.User.ID != "user-1" || !observed.IsMember {
		t.Fatalf("state = %+v", observed)
	}
	if observedUserID != "user-1" {
		t.Fatalf("request user id = %q", observedUserID)
	}
}

func TestFromRequestDefaultsToAnonymous(t *testing.T) {
	state := FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	if state.User != nil || state.IsMember || state.Loading {
		t.Fatalf("expected anonymous state, got %+v", state)
	}
}
