package commission

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/services/web/platform/flash"
	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/pagerender"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/services/web/templates"
	"github.com/luzeprogresso/portal/internal/storage"
)

// form layouts use the native picker widgets, so dates arrive in their
// unzoned HTML input formats
const (
	eventDateLayout    = "2006-01-02T15:04"
	activityDateLayout = "2006-01-02"
)

type handlers struct {
	deps Dependencies
}

func commissionOnly(state auth.State) bool {
	return state.IsCommissionMember
}

func (h handlers) menu(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, commissionOnly, func() pagerender.Page {
		return pagerender.Page{Title: "Comissão", Body: templates.CommissionMenuPage()}
	})
}

func (h handlers) events(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, commissionOnly, func() pagerender.Page {
		form := templates.EventForm{}
		if editID := strings.TrimSpace(r.URL.Query().Get("edit")); editID != "" {
			event, err := h.deps.Events.GetEvent(httpx.RequestContext(r), editID)
			if err != nil {
				h.logRead("event "+editID, err)
			} else {
				form = eventToForm(event)
			}
		}
		return h.eventsPage(r, form, http.StatusOK)
	})
}

func (h handlers) eventsPage(r *http.Request, form templates.EventForm, status int) pagerender.Page {
	events, err := h.deps.Events.ListAllEvents(httpx.RequestContext(r))
	if err != nil {
		h.logRead("events", err)
		events = nil
	}
	return pagerender.Page{
		Title:      "Eventos",
		StatusCode: status,
		Body:       templates.CommissionEventsPage(events, form),
	}
}

func (h handlers) createEvent(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	form, eventDate, ok := h.parseEventForm(w, r, "")
	if !ok {
		return
	}

	eventID, err := h.deps.NewID()
	if err != nil {
		h.deps.Logf("commission: generate event id: %v", err)
		form.Error = "Não foi possível salvar o evento. Tente novamente."
		_ = pagerender.Write(w, r, h.eventsPage(r, form, http.StatusInternalServerError))
		return
	}
	_, err = h.deps.Events.InsertEvent(httpx.RequestContext(r), storage.Event{
		ID:          eventID,
		Title:       form.Title,
		Description: form.Description,
		EventDate:   eventDate,
		Location:    form.Location,
		IsPublic:    form.IsPublic,
	})
	if err != nil {
		h.deps.Logf("commission: insert event: %v", err)
		form.Error = "Não foi possível salvar o evento. Tente novamente."
		_ = pagerender.Write(w, r, h.eventsPage(r, form, http.StatusInternalServerError))
		return
	}

	flash.Write(w, r, flash.Success("Evento criado", "O evento foi registrado na agenda."))
	http.Redirect(w, r, routepath.CommissionEvents, http.StatusSeeOther)
}

func (h handlers) updateEvent(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	eventID := r.PathValue("eventID")
	form, eventDate, ok := h.parseEventForm(w, r, eventID)
	if !ok {
		return
	}

	ctx := httpx.RequestContext(r)
	current, err := h.deps.Events.GetEvent(ctx, eventID)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logRead("event "+eventID, err)
		form.Error = "Não foi possível salvar o evento. Tente novamente."
		_ = pagerender.Write(w, r, h.eventsPage(r, form, http.StatusInternalServerError))
		return
	}
	current.Title = form.Title
	current.Description = form.Description
	current.EventDate = eventDate
	current.Location = form.Location
	current.IsPublic = form.IsPublic
	if err := h.deps.Events.UpdateEvent(ctx, current); err != nil {
		h.deps.Logf("commission: update event %s: %v", eventID, err)
		form.Error = "Não foi possível salvar o evento. Tente novamente."
		_ = pagerender.Write(w, r, h.eventsPage(r, form, http.StatusInternalServerError))
		return
	}

	flash.Write(w, r, flash.Success("Evento atualizado", "As alterações foram salvas."))
	http.Redirect(w, r, routepath.CommissionEvents, http.StatusSeeOther)
}

func (h handlers) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	eventID := r.PathValue("eventID")
	err := h.deps.Events.DeleteEvent(httpx.RequestContext(r), eventID)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.deps.Logf("commission: delete event %s: %v", eventID, err)
		flash.Write(w, r, flash.Destructive("Erro", "Não foi possível excluir o evento."))
	} else {
		flash.Write(w, r, flash.Success("Evento excluído", "O evento foi removido da agenda."))
	}
	http.Redirect(w, r, routepath.CommissionEvents, http.StatusSeeOther)
}

// parseEventForm validates the submitted event fields. On failure it renders
// the page itself and reports ok=false.
func (h handlers) parseEventForm(w http.ResponseWriter, r *http.Request, id string) (templates.EventForm, time.Time, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return templates.EventForm{}, time.Time{}, false
	}
	form := templates.EventForm{
		ID:          id,
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		EventDate:   strings.TrimSpace(r.PostFormValue("event_date")),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
		IsPublic:    r.PostFormValue("is_public") == "1",
	}
	if form.Title == "" {
		form.Error = "Informe o título do evento."
		_ = pagerender.Write(w, r, h.eventsPage(r, form, http.StatusUnprocessableEntity))
		return form, time.Time{}, false
	}
	eventDate, err := time.Parse(eventDateLayout, form.EventDate)
	if err != nil {
		form.Error = "Informe uma data válida."
		_ = pagerender.Write(w, r, h.eventsPage(r, form, http.StatusUnprocessableEntity))
		return form, time.Time{}, false
	}
	return form, eventDate.UTC(), true
}

func (h handlers) activities(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, commissionOnly, func() pagerender.Page {
		form := templates.ActivityForm{}
		if editID := strings.TrimSpace(r.URL.Query().Get("edit")); editID != "" {
			activity, err := h.deps.Activities.GetActivity(httpx.RequestContext(r), editID)
			if err != nil {
				h.logRead("activity "+editID, err)
			} else {
				form = activityToForm(activity)
			}
		}
		return h.activitiesPage(r, form, http.StatusOK)
	})
}

func (h handlers) activitiesPage(r *http.Request, form templates.ActivityForm, status int) pagerender.Page {
	activities, err := h.deps.Activities.ListAllActivities(httpx.RequestContext(r))
	if err != nil {
		h.logRead("activities", err)
		activities = nil
	}
	return pagerender.Page{
		Title:      "Atividades",
		StatusCode: status,
		Body:       templates.CommissionActivitiesPage(activities, form),
	}
}

func (h handlers) createActivity(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	form, eventDate, ok := h.parseActivityForm(w, r, "")
	if !ok {
		return
	}

	activityID, err := h.deps.NewID()
	if err != nil {
		h.deps.Logf("commission: generate activity id: %v", err)
		form.Error = "Não foi possível salvar a atividade. Tente novamente."
		_ = pagerender.Write(w, r, h.activitiesPage(r, form, http.StatusInternalServerError))
		return
	}
	_, err = h.deps.Activities.InsertActivity(httpx.RequestContext(r), storage.Activity{
		ID:          activityID,
		Title:       form.Title,
		Category:    form.Category,
		Description: form.Description,
		EventDate:   eventDate,
		IsFeatured:  form.IsFeatured,
		IsPublic:    form.IsPublic,
	})
	if err != nil {
		h.deps.Logf("commission: insert activity: %v", err)
		form.Error = "Não foi possível salvar a atividade. Tente novamente."
		_ = pagerender.Write(w, r, h.activitiesPage(r, form, http.StatusInternalServerError))
		return
	}

	flash.Write(w, r, flash.Success("Atividade criada", "A atividade foi registrada."))
	http.Redirect(w, r, routepath.CommissionActivities, http.StatusSeeOther)
}

func (h handlers) updateActivity(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	activityID := r.PathValue("activityID")
	form, eventDate, ok := h.parseActivityForm(w, r, activityID)
	if !ok {
		return
	}

	ctx := httpx.RequestContext(r)
	current, err := h.deps.Activities.GetActivity(ctx, activityID)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logRead("activity "+activityID, err)
		form.Error = "Não foi possível salvar a atividade. Tente novamente."
		_ = pagerender.Write(w, r, h.activitiesPage(r, form, http.StatusInternalServerError))
		return
	}
	current.Title = form.Title
	current.Category = form.Category
	current.Description = form.Description
	current.EventDate = eventDate
	current.IsFeatured = form.IsFeatured
	current.IsPublic = form.IsPublic
	if err := h.deps.Activities.UpdateActivity(ctx, current); err != nil {
		h.deps.Logf("commission: update activity %s: %v", activityID, err)
		form.Error = "Não foi possível salvar a atividade. Tente novamente."
		_ = pagerender.Write(w, r, h.activitiesPage(r, form, http.StatusInternalServerError))
		return
	}

	flash.Write(w, r, flash.Success("Atividade atualizada", "As alterações foram salvas."))
	http.Redirect(w, r, routepath.CommissionActivities, http.StatusSeeOther)
}

func (h handlers) deleteActivity(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	activityID := r.PathValue("activityID")
	err := h.deps.Activities.DeleteActivity(httpx.RequestContext(r), activityID)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.deps.Logf("commission: delete activity %s: %v", activityID, err)
		flash.Write(w, r, flash.Destructive("Erro", "Não foi possível excluir a atividade."))
	} else {
		flash.Write(w, r, flash.Success("Atividade excluída", "A atividade foi removida."))
	}
	http.Redirect(w, r, routepath.CommissionActivities, http.StatusSeeOther)
}

// parseActivityForm validates the submitted activity fields. The date is
// optional; when present it must parse.
func (h handlers) parseActivityForm(w http.ResponseWriter, r *http.Request, id string) (templates.ActivityForm, *time.Time, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return templates.ActivityForm{}, nil, false
	}
	form := templates.ActivityForm{
		ID:          id,
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		EventDate:   strings.TrimSpace(r.PostFormValue("event_date")),
		IsFeatured:  r.PostFormValue("is_featured") == "1",
		IsPublic:    r.PostFormValue("is_public") == "1",
	}
	if form.Title == "" {
		form.Error = "Informe o título da atividade."
		_ = pagerender.Write(w, r, h.activitiesPage(r, form, http.StatusUnprocessableEntity))
		return form, nil, false
	}
	var eventDate *time.Time
	if form.EventDate != "" {
		parsed, err := time.Parse(activityDateLayout, form.EventDate)
		if err != nil {
			form.Error = "Informe uma data válida."
			_ = pagerender.Write(w, r, h.activitiesPage(r, form, http.StatusUnprocessableEntity))
			return form, nil, false
		}
		parsed = parsed.UTC()
		eventDate = &parsed
	}
	return form, eventDate, true
}

func (h handlers) secretary(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, commissionOnly, func() pagerender.Page {
		messages, err := h.deps.Contact.ListContactMessages(httpx.RequestContext(r))
		if err != nil {
			h.logRead("contact messages", err)
			messages = nil
		}
		return pagerender.Page{Title: "Secretaria", Body: templates.SecretaryPage(messages)}
	})
}

func (h handlers) markMessageRead(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, commissionOnly) {
		return
	}
	messageID := r.PathValue("messageID")
	err := h.deps.Contact.MarkContactMessageRead(httpx.RequestContext(r), messageID)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.deps.Logf("commission: mark message %s read: %v", messageID, err)
		flash.Write(w, r, flash.Destructive("Erro", "Não foi possível atualizar a mensagem."))
	} else {
		flash.Write(w, r, flash.Success("Mensagem lida", "A mensagem foi marcada como lida."))
	}
	http.Redirect(w, r, routepath.CommissionSecretary, http.StatusSeeOther)
}

func (h handlers) finance(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, commissionOnly, func() pagerender.Page {
		return pagerender.Page{Title: "Tesouraria", Body: templates.FinancePage()}
	})
}

func eventToForm(event storage.Event) templates.EventForm {
	return templates.EventForm{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate.Format(eventDateLayout),
		Location:    event.Location,
		IsPublic:    event.IsPublic,
	}
}

func activityToForm(activity storage.Activity) templates.ActivityForm {
	form := templates.ActivityForm{
		ID:          activity.ID,
		Title:       activity.Title,
		Category:    activity.Category,
		Description: activity.Description,
		IsFeatured:  activity.IsFeatured,
		IsPublic:    activity.IsPublic,
	}
	if activity.EventDate != nil {
		form.EventDate = activity.EventDate.Format(activityDateLayout)
	}
	return form
}

func (h handlers) logRead(what string, err error) {
	h.deps.Logf("commission: load %s: %v", what, err)
}
