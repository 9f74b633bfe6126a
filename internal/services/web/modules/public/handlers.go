package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/luzeprogresso/portal/internal/storage"

	platformerrors "github.com/luzeprogresso/portal/internal/platform/errors"
	"github.com/luzeprogresso/portal/internal/services/web/platform/flash"
	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/pagerender"
	"github.com/luzeprogresso/portal/internal/services/web/platform/sessioncookie"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/services/web/templates"
)

const homeSectionLimit = 3

type handlers struct {
	deps Dependencies
}

func (h handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Read-path failures log and render the empty state so public pages never
// show an error banner.
func (h handlers) home(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)

	info, err := h.deps.LodgeInfo.GetLodgeInfo(ctx)
	if err != nil {
		h.logRead("lodge info", err)
		info = storage.LodgeInfo{}
	}
	featured, err := h.deps.Activities.ListFeaturedActivities(ctx, homeSectionLimit)
	if err != nil {
		h.logRead("featured activities", err)
		featured = nil
	}
	upcoming, err := h.deps.Events.ListUpcomingPublicEvents(ctx, homeSectionLimit)
	if err != nil {
		h.logRead("upcoming events", err)
		upcoming = nil
	}
	articles, err := h.deps.Articles.ListPublishedArticles(ctx, homeSectionLimit)
	if err != nil {
		h.logRead("articles", err)
		articles = nil
	}

	_ = pagerender.Write(w, r, pagerender.Page{
		Body: templates.HomePage(info, featured, upcoming, articles),
	})
}

func (h handlers) about(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)

	info, err := h.deps.LodgeInfo.GetLodgeInfo(ctx)
	if err != nil {
		h.logRead("lodge info", err)
		info = storage.LodgeInfo{}
	}
	officers, err := h.deps.Officers.ListActiveOfficers(ctx)
	if err != nil {
		h.logRead("officers", err)
		officers = nil
	}

	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "A Loja",
		Body:  templates.AboutPage(info, officers),
	})
}

func (h handlers) activities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.deps.Activities.ListPublicActivities(httpx.RequestContext(r))
	if err != nil {
		h.logRead("activities", err)
		activities = nil
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Atividades",
		Body:  templates.ActivitiesPage(activities),
	})
}

func (h handlers) events(w http.ResponseWriter, r *http.Request) {
	events, err := h.deps.Events.ListPublicEvents(httpx.RequestContext(r))
	if err != nil {
		h.logRead("events", err)
		events = nil
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Eventos",
		Body:  templates.EventsPage(events),
	})
}

func (h handlers) education(w http.ResponseWriter, r *http.Request) {
	entries, err := h.deps.Education.ListEducationalContent(httpx.RequestContext(r))
	if err != nil {
		h.logRead("educational content", err)
		entries = nil
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Educação",
		Body:  templates.EducationPage(entries),
	})
}

func (h handlers) contactForm(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, templates.ContactForm{}, http.StatusOK)
}

func (h handlers) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	form := templates.ContactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	if form.Name == "" || form.Email == "" || form.Message == "" {
		form.Error = "Preencha nome, e-mail e mensagem."
		h.renderContact(w, r, form, http.StatusUnprocessableEntity)
		return
	}

	messageID, err := h.deps.NewID()
	if err != nil {
		h.deps.Logf("public: generate contact id: %v", err)
		form.Error = "Não foi possível enviar a mensagem. Tente novamente."
		h.renderContact(w, r, form, http.StatusInternalServerError)
		return
	}
	_, err = h.deps.Contact.InsertContactMessage(httpx.RequestContext(r), storage.ContactMessage{
		ID:      messageID,
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		h.deps.Logf("public: insert contact message: %v", err)
		form.Error = "Não foi possível enviar a mensagem. Tente novamente."
		h.renderContact(w, r, form, http.StatusInternalServerError)
		return
	}

	flash.Write(w, r, flash.Success("Mensagem enviada", "Retornaremos em breve. Obrigado pelo contato."))
	http.Redirect(w, r, routepath.Contact, http.StatusSeeOther)
}

func (h handlers) renderContact(w http.ResponseWriter, r *http.Request, form templates.ContactForm, status int) {
	info, err := h.deps.LodgeInfo.GetLodgeInfo(httpx.RequestContext(r))
	if err != nil {
		h.logRead("lodge info", err)
		info = storage.LodgeInfo{}
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:      "Contato",
		StatusCode: status,
		Body:       templates.ContactPage(info, form),
	})
}

func (h handlers) authForm(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != "signup" {
		mode = "login"
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Área Restrita",
		Body:  templates.AuthPage(templates.AuthForm{Mode: mode}),
	})
}

func (h handlers) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	session, err := h.deps.Auth.SignIn(httpx.RequestContext(r), email, password)
	if err != nil {
		form := templates.AuthForm{Mode: "login", Email: strings.TrimSpace(email)}
		form.Error = authMessage(err, "Não foi possível entrar. Tente novamente.")
		_ = pagerender.Write(w, r, pagerender.Page{
			Title:      "Área Restrita",
			StatusCode: http.StatusUnprocessableEntity,
			Body:       templates.AuthPage(form),
		})
		return
	}

	sessioncookie.Write(w, r, session.ID)
	http.Redirect(w, r, routepath.MembersMenu, http.StatusSeeOther)
}

func (h handlers) signUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	fullName := r.PostFormValue("full_name")

	token, err := h.deps.Auth.SignUp(httpx.RequestContext(r), email, r.PostFormValue("password"), fullName, routepath.MembersMenu)
	if err != nil {
		form := templates.AuthForm{
			Mode:     "signup",
			Email:    strings.TrimSpace(email),
			FullName: strings.TrimSpace(fullName),
		}
		form.Error = authMessage(err, "Não foi possível concluir o cadastro. Tente novamente.")
		_ = pagerender.Write(w, r, pagerender.Page{
			Title:      "Área Restrita",
			StatusCode: http.StatusUnprocessableEntity,
			Body:       templates.AuthPage(form),
		})
		return
	}

	// Email delivery is handled out of band; the confirmation link lands in
	// the server log so operators can forward it while SMTP is not wired.
	h.deps.Logf("public: confirmation link %s?token=%s", routepath.AuthConfirm, token)

	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Área Restrita",
		Body: templates.AuthPage(templates.AuthForm{
			Mode:   "login",
			Notice: "Cadastro realizado. Verifique seu e-mail para confirmar o acesso.",
		}),
	})
}

// signOut clears local state first: cookies go away before the store
// revocation is attempted, and navigation lands on the home page whether the
// revocation worked or not.
func (h handlers) signOut(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessioncookie.Read(r)
	sessioncookie.Clear(w, r)

	printer := pagerender.RequestLocale(r).Printer()
	if h.deps.Auth.SignOut(httpx.RequestContext(r), sessionID) {
		flash.Write(w, r, flash.Success(
			printer.Sprintf("toast.signed_out.title"),
			printer.Sprintf("toast.signed_out.body"),
		))
	} else {
		flash.Write(w, r, flash.Destructive(
			printer.Sprintf("toast.sign_out_err.title"),
			printer.Sprintf("toast.sign_out_err.body"),
		))
	}
	http.Redirect(w, r, routepath.Root, http.StatusSeeOther)
}

func (h handlers) confirm(w http.ResponseWriter, r *http.Request) {
	redirect, err := h.deps.Auth.Confirm(httpx.RequestContext(r), r.URL.Query().Get("token"))
	if err != nil {
		_ = pagerender.Write(w, r, pagerender.Page{
			Title:      "Área Restrita",
			StatusCode: http.StatusUnprocessableEntity,
			Body: templates.AuthPage(templates.AuthForm{
				Mode:  "login",
				Error: authMessage(err, "Link de confirmação inválido ou expirado."),
			}),
		})
		return
	}

	flash.Write(w, r, flash.Success("E-mail confirmado", "Sua conta foi confirmada. Faça login para continuar."))
	if strings.TrimSpace(redirect) == "" {
		redirect = routepath.AuthLogin
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func authMessage(err error, fallback string) string {
	var typed *platformerrors.Error
	if errors.As(err, &typed) && strings.TrimSpace(typed.Message) != "" {
		return typed.Message
	}
	return fallback
}

func (h handlers) logRead(what string, err error) {
	h.deps.Logf("public: load %s: %v", what, err)
}
