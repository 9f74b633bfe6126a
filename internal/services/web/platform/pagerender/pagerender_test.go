package pagerender

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/platform/authctx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/flash"
	"github.com/luzeprogresso/portal/internal/services/web/templates"
)

func gatedResponse(t *testing.T, state auth.State) *httptest.ResponseRecorder {
	t.Helper()
	resolve := module.ResolveState(func(*http.Request) auth.State { return state })
	handler := authctx.Middleware(resolve)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := WriteGated(w, r, func(s auth.State) bool { return s.IsMember }, func() Page {
			return Page{Title: "Área do Membro", Body: templates.EmptyState("conteúdo reservado")}
		})
		if err != nil {
			t.Fatalf("write gated: %v", err)
		}
	}))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/members", nil))
	return recorder
}

func TestGatedLoadingRendersNeutralPlaceholder(t *testing.T) {
	recorder := gatedResponse(t, auth.State{Loading: true})
	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", recorder.Code)
	}
	body := recorder.Body.String()
	if strings.Contains(body, "conteúdo reservado") {
		t.Fatal("loading state must not leak content")
	}
	if strings.Contains(body, "Faça login") || strings.Contains(body, "autorizados") {
		t.Fatal("loading state must not render a denial")
	}
}

func TestGatedAnonymousGetsSignInPrompt(t *testing.T) {
	recorder := gatedResponse(t, auth.Anonymous())
	body := recorder.Body.String()
	if !strings.Contains(body, "Faça login para acessar esta área.") {
		t.Fatalf("expected sign-in prompt, got: %s", body)
	}
	if strings.Contains(body, "conteúdo reservado") {
		t.Fatal("anonymous state must not leak content")
	}
}

func TestGatedWithoutFlagGetsForbidden(t *testing.T) {
	user := auth.User{ID: "user-1", Email: "irmao@luz.org.br"}
	recorder := gatedResponse(t, auth.State{User: &user})
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Acesso apenas para membros autorizados.") {
		t.Fatalf("expected forbidden copy, got: %s", body)
	}
	if strings.Contains(body, "conteúdo reservado") {
		t.Fatal("forbidden state must not leak content")
	}
}

func TestGatedMemberSeesContent(t *testing.T) {
	user := auth.User{ID: "user-1", Email: "irmao@luz.org.br"}
	recorder := gatedResponse(t, auth.State{User: &user, IsMember: true})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "conteúdo reservado") {
		t.Fatal("expected gated content for member")
	}
}

func TestGatedCopyFollowsAcceptLanguage(t *testing.T) {
	resolve := module.ResolveState(func(*http.Request) auth.State { return auth.Anonymous() })
	handler := authctx.Middleware(resolve)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteGated(w, r, func(s auth.State) bool { return s.IsMember }, func() Page {
			return Page{Body: templates.EmptyState("conteúdo reservado")}
		})
	}))
	request := httptest.NewRequest(http.MethodGet, "/members", nil)
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if !strings.Contains(recorder.Body.String(), "Sign in to access this area.") {
		t.Fatalf("expected English sign-in prompt, got: %s", recorder.Body.String())
	}
}

func TestWriteConsumesToastCookie(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(toastCookie(t))
	recorder := httptest.NewRecorder()

	if err := Write(recorder, request, Page{Title: "Início"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(recorder.Body.String(), "Sessão encerrada") {
		t.Fatal("expected toast in rendered page")
	}
	cookies := recorder.Result().Cookies()
	var cleared bool
	for _, cookie := range cookies {
		if cookie.Name == flash.CookieName && cookie.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected toast cookie cleared")
	}
}

func toastCookie(t *testing.T) *http.Cookie {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	flash.Write(recorder, request, flash.Success("Sessão encerrada", "Você saiu da área restrita com sucesso."))
	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one toast cookie, got %d", len(cookies))
	}
	return cookies[0]
}
