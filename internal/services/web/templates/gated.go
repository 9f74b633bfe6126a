package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/luzeprogresso/portal/internal/platform/i18n"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
)

// The restricted components draw their copy from the locale catalog so the
// gated path speaks the visitor's language even before any page content is
// allowed to render.

func restrictedPrinter(p *message.Printer) *message.Printer {
	if p == nil {
		return i18n.DefaultLocale().Printer()
	}
	return p
}

// RestrictedLoading renders the neutral placeholder shown while the session
// state is still unresolved. It must not reveal content or a denial.
func RestrictedLoading(p *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return write(w, `<section class="restricted restricted-loading"><p>%s</p></section>`,
			esc(restrictedPrinter(p).Sprintf("restricted.resolving")))
	})
}

// RestrictedSignIn renders the prompt shown to anonymous visitors.
func RestrictedSignIn(p *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		printer := restrictedPrinter(p)
		if err := write(w, `<section class="restricted"><h1>%s</h1><p>%s</p>`,
			esc(printer.Sprintf("restricted.title")),
			esc(printer.Sprintf("restricted.sign_in"))); err != nil {
			return err
		}
		return write(w, `<p><a class="button" href="%s">Entrar</a></p></section>`, routepath.AuthLogin)
	})
}

// RestrictedForbidden renders the insufficient-privilege message for
// authenticated users without the required role.
func RestrictedForbidden(p *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		printer := restrictedPrinter(p)
		return write(w, `<section class="restricted"><h1>%s</h1><p>%s</p></section>`,
			esc(printer.Sprintf("restricted.title")),
			esc(printer.Sprintf("restricted.members_only")))
	})
}
