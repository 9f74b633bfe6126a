// Package flash provides one-time toast notices persisted across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
)

// CookieName is the canonical cookie used for one-time toast notices.
const CookieName = "lp_flash"

// Variant classifies toast presentation.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast stores one pending notification.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Success creates a default-variant toast.
func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDefault}
}

// Destructive creates a destructive-variant toast.
func Destructive(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDestructive}
}

// Write stores a toast cookie for the next page render.
func Write(w http.ResponseWriter, r *http.Request, toast Toast) {
	if w == nil {
		return
	}
	normalized, ok := normalizeToast(toast)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   httpx.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear reads and clears the toast cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Toast, bool) {
	if r == nil {
		return Toast{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Toast{}, false
	}
	if w != nil {
		Clear(w, r)
	}
	return decodeToast(cookie.Value)
}

// Clear expires any toast cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   httpx.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeToast(raw string) (Toast, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Toast{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Toast{}, false
	}
	var toast Toast
	if err := json.Unmarshal(decoded, &toast); err != nil {
		return Toast{}, false
	}
	return normalizeToast(toast)
}

func normalizeToast(toast Toast) (Toast, bool) {
	toast.Title = strings.TrimSpace(toast.Title)
	toast.Description = strings.TrimSpace(toast.Description)
	if toast.Title == "" {
		return Toast{}, false
	}
	toast.Variant = Variant(strings.ToLower(strings.TrimSpace(string(toast.Variant))))
	switch toast.Variant {
	case VariantDefault, VariantDestructive:
		return toast, true
	case "":
		toast.Variant = VariantDefault
		return toast, true
	default:
		return Toast{}, false
	}
}
