// Package i18n resolves locales and localized copy for the portal.
//
// The site is written for a Brazilian audience, so pt-BR is the canonical
// locale; an English catalog exists for the few shared strings surfaced to
// non-member visitors.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Locale identifies a supported UI language.
type Locale struct {
	tag language.Tag
}

var (
	ptBR = Locale{tag: language.MustParse("pt-BR")}
	enUS = Locale{tag: language.AmericanEnglish}
)

var matcher = language.NewMatcher([]language.Tag{ptBR.tag, enUS.tag})

// DefaultLocale returns the canonical site locale.
func DefaultLocale() Locale {
	return ptBR
}

// ParseLocale resolves a BCP 47 tag (or Accept-Language list) to a supported
// locale. The boolean reports whether the input matched a supported locale.
func ParseLocale(value string) (Locale, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultLocale(), false
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return DefaultLocale(), false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale(), false
	}
	switch index {
	case 1:
		return enUS, true
	default:
		return ptBR, true
	}
}

// String returns the locale's BCP 47 tag.
func (l Locale) String() string {
	if l.tag == (language.Tag{}) {
		return ptBR.tag.String()
	}
	return l.tag.String()
}

// Printer returns a message printer bound to the locale's catalog.
func (l Locale) Printer() *message.Printer {
	tag := l.tag
	if tag == (language.Tag{}) {
		tag = ptBR.tag
	}
	return message.NewPrinter(tag, message.Catalog(sharedCatalog))
}

var sharedCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(ptBR.tag))
	for key, text := range ptBRMessages {
		_ = builder.SetString(ptBR.tag, key, text)
	}
	for key, text := range enUSMessages {
		_ = builder.SetString(enUS.tag, key, text)
	}
	return builder
}

// The catalogs carry the copy rendered outside a specific feature page: the
// gated-access states and the sign-out toasts. Feature pages are pt-BR only.
var ptBRMessages = map[string]string{
	"restricted.title":         "Acesso Restrito",
	"restricted.sign_in":       "Faça login para acessar esta área.",
	"restricted.members_only":  "Acesso apenas para membros autorizados.",
	"restricted.resolving":     "Verificando credenciais...",
	"toast.signed_out.title":   "Sessão encerrada",
	"toast.signed_out.body":    "Você saiu da área restrita com sucesso.",
	"toast.sign_out_err.title": "Erro",
	"toast.sign_out_err.body":  "Ocorreu um erro ao encerrar a sessão.",
}

var enUSMessages = map[string]string{
	"restricted.title":         "Restricted Area",
	"restricted.sign_in":       "Sign in to access this area.",
	"restricted.members_only":  "Access limited to authorized members.",
	"restricted.resolving":     "Checking credentials...",
	"toast.signed_out.title":   "Signed out",
	"toast.signed_out.body":    "You have left the restricted area.",
	"toast.sign_out_err.title": "Error",
	"toast.sign_out_err.body":  "Something went wrong while signing out.",
}
