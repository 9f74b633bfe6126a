package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/luzeprogresso/portal/internal/platform/branding"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage"
)

// ContactForm carries the contact page form state across failed submissions.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
	Error   string
}

// AuthForm carries the sign-in/sign-up form state.
type AuthForm struct {
	Mode     string
	Email    string
	FullName string
	Error    string
	Notice   string
}

// HomePage renders the public landing page.
func HomePage(info storage.LodgeInfo, featured []storage.Activity, upcoming []storage.Event, articles []storage.Article) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		name := info.Name
		if strings.TrimSpace(name) == "" {
			name = branding.AppName
		}
		if err := write(w, `<section class="hero"><h1>%s</h1>`, esc(name)); err != nil {
			return err
		}
		if strings.TrimSpace(info.Subtitle) != "" {
			if err := write(w, `<p class="subtitle">%s</p>`, esc(info.Subtitle)); err != nil {
				return err
			}
		}
		if err := write(w, `</section>`); err != nil {
			return err
		}

		if err := write(w, `<section class="home-activities"><h2>Atividades em Destaque</h2>`); err != nil {
			return err
		}
		if len(featured) == 0 {
			if err := write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`); err != nil {
				return err
			}
		}
		for _, activity := range featured {
			if err := write(w, `<article class="card"><h3>%s</h3><p>%s</p></article>`, esc(activity.Title), esc(activity.Description)); err != nil {
				return err
			}
		}
		if err := write(w, `</section>`); err != nil {
			return err
		}

		if err := write(w, `<section class="home-events"><h2>Próximos Eventos</h2>`); err != nil {
			return err
		}
		if len(upcoming) == 0 {
			if err := write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`); err != nil {
				return err
			}
		}
		for _, event := range upcoming {
			if err := write(w, `<article class="card"><h3>%s</h3><p class="date">%s</p><p>%s</p></article>`, esc(event.Title), esc(formatDateTime(event.EventDate)), esc(event.Location)); err != nil {
				return err
			}
		}
		if err := write(w, `</section>`); err != nil {
			return err
		}

		if len(articles) > 0 {
			if err := write(w, `<section class="home-articles"><h2>Artigos</h2>`); err != nil {
				return err
			}
			for _, article := range articles {
				if err := write(w, `<article class="card"><h3>%s</h3><p>%s</p></article>`, esc(article.Title), esc(article.Excerpt)); err != nil {
					return err
				}
			}
			if err := write(w, `</section>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// AboutPage renders institutional information and the officer roster.
func AboutPage(info storage.LodgeInfo, officers []storage.Officer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "A Loja", info.Subtitle); err != nil {
			return err
		}
		for _, block := range []struct {
			title string
			text  string
		}{
			{"Quem Somos", info.Description},
			{"Missão", info.Mission},
			{"Visão", info.Vision},
			{"Valores", info.Values},
		} {
			if strings.TrimSpace(block.text) == "" {
				continue
			}
			if err := write(w, `<section class="about-block"><h2>%s</h2><p>%s</p></section>`, esc(block.title), esc(block.text)); err != nil {
				return err
			}
		}

		if err := write(w, `<section class="officers"><h2>Oficialato</h2>`); err != nil {
			return err
		}
		if len(officers) == 0 {
			if err := write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`); err != nil {
				return err
			}
		}
		for _, officer := range officers {
			if err := write(w, `<article class="card officer"><h3>%s</h3><p class="position">%s</p></article>`, esc(officer.Name), esc(officer.Position)); err != nil {
				return err
			}
		}
		return write(w, `</section>`)
	})
}

// ActivitiesPage renders the public activities listing.
func ActivitiesPage(activities []storage.Activity) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Atividades", "Ações filantrópicas e culturais da loja"); err != nil {
			return err
		}
		if len(activities) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, activity := range activities {
			if err := write(w, `<article class="card activity"><h2>%s</h2>`, esc(activity.Title)); err != nil {
				return err
			}
			if activity.Category != "" {
				if err := write(w, `<p class="category">%s</p>`, esc(activity.Category)); err != nil {
					return err
				}
			}
			if activity.EventDate != nil {
				if err := write(w, `<p class="date">%s</p>`, esc(formatDate(*activity.EventDate))); err != nil {
					return err
				}
			}
			if err := write(w, `<p>%s</p>`, esc(activity.Description)); err != nil {
				return err
			}
			for _, partner := range activity.Partnerships {
				if err := write(w, `<span class="badge">%s</span>`, esc(partner)); err != nil {
					return err
				}
			}
			if err := write(w, `</article>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// EventsPage renders the public events calendar.
func EventsPage(events []storage.Event) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Eventos", "Agenda pública da loja"); err != nil {
			return err
		}
		if len(events) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, event := range events {
			if err := write(w, `<article class="card event"><h2>%s</h2><p class="date">%s</p>`, esc(event.Title), esc(formatDateTime(event.EventDate))); err != nil {
				return err
			}
			if event.Location != "" {
				if err := write(w, `<p class="location">%s</p>`, esc(event.Location)); err != nil {
					return err
				}
			}
			if err := write(w, `<p>%s</p></article>`, esc(event.Description)); err != nil {
				return err
			}
		}
		return nil
	})
}

// EducationPage renders study content grouped by category.
func EducationPage(entries []storage.EducationalContent) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Educação", "Conteúdo de estudo aberto ao público"); err != nil {
			return err
		}
		if len(entries) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		currentCategory := ""
		open := false
		for _, entry := range entries {
			if entry.Category != currentCategory {
				if open {
					if err := write(w, `</section>`); err != nil {
						return err
					}
				}
				currentCategory = entry.Category
				open = true
				if err := write(w, `<section class="education-category"><h2>%s</h2>`, esc(currentCategory)); err != nil {
					return err
				}
			}
			if err := write(w, `<article class="card"><h3>%s</h3>`, esc(entry.Title)); err != nil {
				return err
			}
			if entry.Author != "" {
				if err := write(w, `<p class="author">%s</p>`, esc(entry.Author)); err != nil {
					return err
				}
			}
			if err := write(w, `<p>%s</p></article>`, esc(entry.Content)); err != nil {
				return err
			}
		}
		if open {
			return write(w, `</section>`)
		}
		return nil
	})
}

// ContactPage renders the contact form, with lodge contact details alongside.
func ContactPage(info storage.LodgeInfo, form ContactForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Contato", "Envie uma mensagem para a loja"); err != nil {
			return err
		}
		if form.Error != "" {
			if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
				return err
			}
		}
		if err := write(w, `<form class="form" method="post" action="%s">`, routepath.Contact); err != nil {
			return err
		}
		if err := write(w, `<label>Nome<input type="text" name="name" value="%s" required></label>`, esc(form.Name)); err != nil {
			return err
		}
		if err := write(w, `<label>E-mail<input type="email" name="email" value="%s" required></label>`, esc(form.Email)); err != nil {
			return err
		}
		if err := write(w, `<label>Assunto<input type="text" name="subject" value="%s" placeholder="Contato pelo site"></label>`, esc(form.Subject)); err != nil {
			return err
		}
		if err := write(w, `<label>Mensagem<textarea name="message" required>%s</textarea></label>`, esc(form.Message)); err != nil {
			return err
		}
		if err := write(w, `<button type="submit">Enviar</button></form>`); err != nil {
			return err
		}

		if err := write(w, `<section class="contact-details">`); err != nil {
			return err
		}
		for _, detail := range []struct {
			label string
			value string
		}{
			{"Endereço", info.Address},
			{"Telefone", info.Phone},
			{"E-mail", info.Email},
		} {
			if strings.TrimSpace(detail.value) == "" {
				continue
			}
			if err := write(w, `<p><strong>%s:</strong> %s</p>`, esc(detail.label), esc(detail.value)); err != nil {
				return err
			}
		}
		return write(w, `</section>`)
	})
}

// AuthPage renders the combined sign-in/sign-up surface.
func AuthPage(form AuthForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Área Restrita", "Acesso exclusivo para membros"); err != nil {
			return err
		}
		if form.Notice != "" {
			if err := write(w, `<div class="form-notice" role="status">%s</div>`, esc(form.Notice)); err != nil {
				return err
			}
		}
		if form.Error != "" {
			if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
				return err
			}
		}

		signUp := form.Mode == "signup"
		if signUp {
			if err := write(w, `<form class="form" method="post" action="%s">`, routepath.AuthSignUp); err != nil {
				return err
			}
			if err := write(w, `<label>Nome completo<input type="text" name="full_name" value="%s" required></label>`, esc(form.FullName)); err != nil {
				return err
			}
		} else {
			if err := write(w, `<form class="form" method="post" action="%s">`, routepath.AuthLogin); err != nil {
				return err
			}
		}
		if err := write(w, `<label>E-mail<input type="email" name="email" value="%s" required></label>`, esc(form.Email)); err != nil {
			return err
		}
		if err := write(w, `<label>Senha<input type="password" name="password" required></label>`); err != nil {
			return err
		}
		if signUp {
			if err := write(w, `<button type="submit">Cadastrar</button></form><p><a href="%s">Já tem conta? Entrar</a></p>`, routepath.AuthLogin); err != nil {
				return err
			}
		} else {
			if err := write(w, `<button type="submit">Entrar</button></form><p><a href="%s?mode=signup">Não tem conta? Cadastre-se</a></p>`, routepath.AuthLogin); err != nil {
				return err
			}
		}
		return nil
	})
}
