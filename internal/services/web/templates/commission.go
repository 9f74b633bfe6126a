package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage"
)

// EventForm carries the commission event form state.
type EventForm struct {
	ID          string
	Title       string
	Description string
	EventDate   string
	Location    string
	IsPublic    bool
	Error       string
}

// ActivityForm carries the commission activity form state.
type ActivityForm struct {
	ID          string
	Title       string
	Category    string
	Description string
	EventDate   string
	IsFeatured  bool
	IsPublic    bool
	Error       string
}

// CommissionMenuPage renders the commission area menu.
func CommissionMenuPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Comissão", "Administração do conteúdo da loja"); err != nil {
			return err
		}
		entries := []struct {
			href  string
			title string
			desc  string
		}{
			{routepath.CommissionEvents, "Eventos", "Criar, editar e remover eventos"},
			{routepath.CommissionActivities, "Atividades", "Criar, editar e remover atividades"},
			{routepath.CommissionSecretary, "Secretaria", "Mensagens recebidas pelo site"},
			{routepath.CommissionFinance, "Tesouraria", "Controle financeiro"},
		}
		if err := write(w, `<div class="menu-grid">`); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := write(w, `<a class="menu-card" href="%s"><h2>%s</h2><p>%s</p></a>`, entry.href, esc(entry.title), esc(entry.desc)); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// CommissionEventsPage renders the event CRUD surface.
func CommissionEventsPage(events []storage.Event, form EventForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Eventos", "Gestão da agenda da loja"); err != nil {
			return err
		}
		if err := renderEventForm(w, form); err != nil {
			return err
		}
		if len(events) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, event := range events {
			visibility := "Reservado"
			if event.IsPublic {
				visibility = "Público"
			}
			if err := write(w, `<article class="card admin-row"><h3>%s</h3><p class="date">%s</p><span class="badge">%s</span>`,
				esc(event.Title), esc(formatDateTime(event.EventDate)), esc(visibility)); err != nil {
				return err
			}
			if err := write(w, `<a class="link-button" href="%s?edit=%s">Editar</a>`, routepath.CommissionEvents, esc(event.ID)); err != nil {
				return err
			}
			if err := write(w, `<form method="post" action="%s"><button type="submit" class="link-button">Excluir</button></form></article>`,
				routepath.CommissionEventDeletePath(event.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderEventForm(w io.Writer, form EventForm) error {
	if form.Error != "" {
		if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
			return err
		}
	}
	action := routepath.CommissionEventsCreate
	if form.ID != "" {
		action = routepath.CommissionEventUpdatePath(form.ID)
	}
	if err := write(w, `<form class="form" method="post" action="%s">`, action); err != nil {
		return err
	}
	if err := write(w, `<label>Título<input type="text" name="title" value="%s" required></label>`, esc(form.Title)); err != nil {
		return err
	}
	if err := write(w, `<label>Data<input type="datetime-local" name="event_date" value="%s" required></label>`, esc(form.EventDate)); err != nil {
		return err
	}
	if err := write(w, `<label>Local<input type="text" name="location" value="%s"></label>`, esc(form.Location)); err != nil {
		return err
	}
	if err := write(w, `<label>Descrição<textarea name="description">%s</textarea></label>`, esc(form.Description)); err != nil {
		return err
	}
	checked := ""
	if form.IsPublic {
		checked = " checked"
	}
	if err := write(w, `<label class="checkbox"><input type="checkbox" name="is_public" value="1"%s> Visível ao público</label>`, checked); err != nil {
		return err
	}
	return write(w, `<button type="submit">Salvar</button></form>`)
}

// CommissionActivitiesPage renders the activity CRUD surface.
func CommissionActivitiesPage(activities []storage.Activity, form ActivityForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Atividades", "Gestão das ações da loja"); err != nil {
			return err
		}
		if err := renderActivityForm(w, form); err != nil {
			return err
		}
		if len(activities) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, activity := range activities {
			visibility := "Reservada"
			if activity.IsPublic {
				visibility = "Pública"
			}
			if err := write(w, `<article class="card admin-row"><h3>%s</h3><span class="badge">%s</span>`, esc(activity.Title), esc(visibility)); err != nil {
				return err
			}
			if activity.IsFeatured {
				if err := write(w, `<span class="badge badge-active">Destaque</span>`); err != nil {
					return err
				}
			}
			if err := write(w, `<a class="link-button" href="%s?edit=%s">Editar</a>`, routepath.CommissionActivities, esc(activity.ID)); err != nil {
				return err
			}
			if err := write(w, `<form method="post" action="%s"><button type="submit" class="link-button">Excluir</button></form></article>`,
				routepath.CommissionActivityDeletePath(activity.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderActivityForm(w io.Writer, form ActivityForm) error {
	if form.Error != "" {
		if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
			return err
		}
	}
	action := routepath.CommissionActivitiesCreate
	if form.ID != "" {
		action = routepath.CommissionActivityUpdatePath(form.ID)
	}
	if err := write(w, `<form class="form" method="post" action="%s">`, action); err != nil {
		return err
	}
	if err := write(w, `<label>Título<input type="text" name="title" value="%s" required></label>`, esc(form.Title)); err != nil {
		return err
	}
	if err := write(w, `<label>Categoria<input type="text" name="category" value="%s"></label>`, esc(form.Category)); err != nil {
		return err
	}
	if err := write(w, `<label>Data<input type="date" name="event_date" value="%s"></label>`, esc(form.EventDate)); err != nil {
		return err
	}
	if err := write(w, `<label>Descrição<textarea name="description">%s</textarea></label>`, esc(form.Description)); err != nil {
		return err
	}
	featured := ""
	if form.IsFeatured {
		featured = " checked"
	}
	if err := write(w, `<label class="checkbox"><input type="checkbox" name="is_featured" value="1"%s> Destaque na página inicial</label>`, featured); err != nil {
		return err
	}
	public := ""
	if form.IsPublic {
		public = " checked"
	}
	if err := write(w, `<label class="checkbox"><input type="checkbox" name="is_public" value="1"%s> Visível ao público</label>`, public); err != nil {
		return err
	}
	return write(w, `<button type="submit">Salvar</button></form>`)
}

// SecretaryPage renders received contact messages with mark-read actions.
func SecretaryPage(messages []storage.ContactMessage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Secretaria", "Mensagens recebidas pelo site"); err != nil {
			return err
		}
		if len(messages) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, msg := range messages {
			status := "Não lida"
			if msg.IsRead {
				status = "Lida"
			}
			if err := write(w, `<article class="card contact-message"><h3>%s</h3><p class="author">%s &lt;%s&gt;</p><span class="badge">%s</span><p class="date">%s</p><p>%s</p>`,
				esc(msg.Subject), esc(msg.Name), esc(msg.Email), esc(status), esc(formatDateTime(msg.CreatedAt)), esc(msg.Message)); err != nil {
				return err
			}
			if !msg.IsRead {
				if err := write(w, `<form method="post" action="%s"><button type="submit" class="link-button">Marcar como lida</button></form>`,
					routepath.CommissionSecretaryReadPath(msg.ID)); err != nil {
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

// FinancePage renders the treasury placeholder sections.
func FinancePage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Tesouraria", "Controle financeiro da loja"); err != nil {
			return err
		}
		sections := []struct {
			title string
			desc  string
		}{
			{"Mensalidades", "Controle de mensalidades dos membros."},
			{"Relatórios", "Relatórios financeiros mensais e anuais."},
			{"Doações", "Registro de doações e campanhas."},
		}
		for _, section := range sections {
			if err := write(w, `<section class="card placeholder"><h2>%s</h2><p>%s</p><p class="muted">Em breve.</p></section>`, esc(section.title), esc(section.desc)); err != nil {
				return err
			}
		}
		return nil
	})
}
