// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/i18n"
	"github.com/luzeprogresso/portal/internal/services/web/platform/authctx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/flash"
	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
	"github.com/luzeprogresso/portal/internal/services/web/templates"
)

// Page describes one rendered page.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

// Write renders a page inside the shared layout, consuming any pending
// toast cookie.
func Write(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	var toast *templates.Toast
	if notice, ok := flash.ReadAndClear(w, r); ok {
		toast = &templates.Toast{
			Title:       notice.Title,
			Description: notice.Description,
			Variant:     string(notice.Variant),
		}
	}

	locale := RequestLocale(r)
	layout := templates.Layout(templates.LayoutParams{
		Title: page.Title,
		Lang:  locale.String(),
		State: authctx.FromRequest(r),
		Toast: toast,
	}, page.Body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return layout.Render(httpx.RequestContext(r), w)
}

// WriteGated enforces the access contract for a restricted page. The state
// must fully resolve before any content or denial renders: an unresolved
// state gets a neutral placeholder, an anonymous visitor a sign-in prompt,
// and a user without the required flag the insufficient-privilege message.
func WriteGated(w http.ResponseWriter, r *http.Request, allowed func(auth.State) bool, page func() Page) error {
	if !Gate(w, r, allowed) {
		return nil
	}
	return Write(w, r, page())
}

// Gate writes the appropriate restricted page when the request may not pass
// and reports whether the caller should proceed. Handlers that redirect or
// stream use it directly instead of WriteGated.
func Gate(w http.ResponseWriter, r *http.Request, allowed func(auth.State) bool) bool {
	state := authctx.FromRequest(r)
	printer := RequestLocale(r).Printer()
	title := printer.Sprintf("restricted.title")
	if state.Loading {
		_ = Write(w, r, Page{
			Title:      title,
			StatusCode: http.StatusServiceUnavailable,
			Body:       templates.RestrictedLoading(printer),
		})
		return false
	}
	if state.User == nil {
		_ = Write(w, r, Page{
			Title: title,
			Body:  templates.RestrictedSignIn(printer),
		})
		return false
	}
	if allowed == nil || !allowed(state) {
		_ = Write(w, r, Page{
			Title:      title,
			StatusCode: http.StatusForbidden,
			Body:       templates.RestrictedForbidden(printer),
		})
		return false
	}
	return true
}

// RequestLocale resolves the effective locale from the Accept-Language
// header, defaulting to the canonical site locale.
func RequestLocale(r *http.Request) i18n.Locale {
	if r == nil {
		return i18n.DefaultLocale()
	}
	locale, _ := i18n.ParseLocale(r.Header.Get("Accept-Language"))
	return locale
}
