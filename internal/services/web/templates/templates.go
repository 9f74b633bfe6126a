// Package templates renders the portal's server-side pages. Components are
// written against the templ runtime so handlers compose them the same way
// generated templates would be composed.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/branding"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
)

// Toast carries a one-time notification into the layout.
type Toast struct {
	Title       string
	Description string
	Variant     string
}

// LayoutParams configures the shared page shell.
type LayoutParams struct {
	Title string
	Lang  string
	State auth.State
	Toast *Toast
}

func esc(value string) string {
	return templ.EscapeString(value)
}

func write(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("02/01/2006")
}

func formatDateTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("02/01/2006 15:04")
}

// Layout renders the full page shell around a body component.
func Layout(params LayoutParams, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := params.Lang
		if lang == "" {
			lang = "pt-BR"
		}
		title := strings.TrimSpace(params.Title)
		if title == "" {
			title = branding.AppName
		} else {
			title = title + " | " + branding.ShortName
		}
		if err := write(w, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/static/portal.css"></head><body>`, esc(lang), esc(title)); err != nil {
			return err
		}
		if err := renderNav(w, params.State); err != nil {
			return err
		}
		if params.Toast != nil {
			if err := renderToast(w, *params.Toast); err != nil {
				return err
			}
		}
		if err := write(w, `<main class="container">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if err := write(w, `</main>`); err != nil {
			return err
		}
		if err := renderFooter(w); err != nil {
			return err
		}
		return write(w, `</body></html>`)
	})
}

func renderNav(w io.Writer, state auth.State) error {
	if err := write(w, `<header class="site-header"><nav class="nav"><a class="brand" href="%s">%s</a><ul class="nav-links">`, routepath.Root, esc(branding.ShortName)); err != nil {
		return err
	}
	links := []struct {
		href  string
		label string
	}{
		{routepath.About, "A Loja"},
		{routepath.Activities, "Atividades"},
		{routepath.Events, "Eventos"},
		{routepath.Education, "Educação"},
		{routepath.Contact, "Contato"},
	}
	for _, link := range links {
		if err := write(w, `<li><a href="%s">%s</a></li>`, link.href, esc(link.label)); err != nil {
			return err
		}
	}
	if state.IsMember {
		if err := write(w, `<li><a href="%s">Área do Membro</a></li>`, routepath.MembersMenu); err != nil {
			return err
		}
	}
	if state.IsCommissionMember {
		if err := write(w, `<li><a href="%s">Comissão</a></li>`, routepath.CommissionMenu); err != nil {
			return err
		}
	}
	if state.User != nil {
		if err := write(w, `<li><a href="%s">Perfil</a></li><li><form method="post" action="%s"><button type="submit" class="link-button">Sair</button></form></li>`, routepath.Profile, routepath.AuthSignOut); err != nil {
			return err
		}
	} else if !state.Loading {
		if err := write(w, `<li><a href="%s">Entrar</a></li>`, routepath.AuthLogin); err != nil {
			return err
		}
	}
	return write(w, `</ul></nav></header>`)
}

func renderToast(w io.Writer, toast Toast) error {
	variant := "default"
	if toast.Variant == "destructive" {
		variant = "destructive"
	}
	if err := write(w, `<div class="toast toast-%s" role="status"><strong>%s</strong>`, variant, esc(toast.Title)); err != nil {
		return err
	}
	if toast.Description != "" {
		if err := write(w, `<p>%s</p>`, esc(toast.Description)); err != nil {
			return err
		}
	}
	return write(w, `</div>`)
}

func renderFooter(w io.Writer) error {
	return write(w, `<footer class="site-footer"><p>%s</p></footer>`, esc(branding.AppName))
}

// EmptyState renders the shared no-results block used by list pages.
func EmptyState(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if strings.TrimSpace(message) == "" {
			message = "Nenhum registro encontrado."
		}
		return write(w, `<div class="empty-state"><p>%s</p></div>`, esc(message))
	})
}

func pageHeading(w io.Writer, title, subtitle string) error {
	if err := write(w, `<section class="page-heading"><h1>%s</h1>`, esc(title)); err != nil {
		return err
	}
	if strings.TrimSpace(subtitle) != "" {
		if err := write(w, `<p class="subtitle">%s</p>`, esc(subtitle)); err != nil {
			return err
		}
	}
	return write(w, `</section>`)
}
