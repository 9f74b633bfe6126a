package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage"
)

// MessageForm carries the member message form state.
type MessageForm struct {
	RecipientID string
	Subject     string
	Content     string
	Broadcast   bool
	Error       string
}

// StudyUploadForm carries the study work upload form state.
type StudyUploadForm struct {
	BrotherName string
	WorkTitle   string
	Description string
	Category    string
	Error       string
}

// ProfileForm carries the profile update form state.
type ProfileForm struct {
	FullName string
	Position string
	PhotoURL string
	Error    string
}

// MembersMenuPage renders the members' area menu grid.
func MembersMenuPage(state auth.State) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		name := ""
		if state.Profile != nil {
			name = state.Profile.FullName
		}
		if name == "" && state.User != nil {
			name = state.User.Email
		}
		if err := pageHeading(w, "Área do Membro", "Bem-vindo, "+name); err != nil {
			return err
		}
		entries := []struct {
			href  string
			title string
			desc  string
		}{
			{routepath.MembersDocuments, "Documentos", "Documentos internos da loja"},
			{routepath.MembersAgenda, "Agenda Reservada", "Sessões e compromissos reservados"},
			{routepath.MembersMessages, "Mensagens", "Comunicação entre os irmãos"},
			{routepath.MembersStudy, "Trabalhos de Estudo", "Envio e consulta de trabalhos"},
			{routepath.MembersWorshipfulMasters, "Veneráveis Mestres", "Galeria dos veneráveis"},
			{routepath.Profile, "Meu Perfil", "Dados pessoais"},
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

// DocumentsPage renders the internal documents listing.
func DocumentsPage(documents []storage.InternalDocument) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Documentos", "Documentos internos da loja"); err != nil {
			return err
		}
		if len(documents) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		currentCategory := ""
		open := false
		for _, doc := range documents {
			if doc.Category != currentCategory {
				if open {
					if err := write(w, `</section>`); err != nil {
						return err
					}
				}
				currentCategory = doc.Category
				open = true
				if err := write(w, `<section class="document-category"><h2>%s</h2>`, esc(currentCategory)); err != nil {
					return err
				}
			}
			if err := write(w, `<article class="card"><h3>%s</h3><p>%s</p>`, esc(doc.Title), esc(doc.Description)); err != nil {
				return err
			}
			if strings.TrimSpace(doc.FileURL) != "" {
				if err := write(w, `<p><a href="%s">Baixar</a></p>`, esc(doc.FileURL)); err != nil {
					return err
				}
			}
			if err := write(w, `</article>`); err != nil {
				return err
			}
		}
		if open {
			return write(w, `</section>`)
		}
		return nil
	})
}

// AgendaPage renders the reserved agenda.
func AgendaPage(entries []storage.AgendaEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Agenda Reservada", "Compromissos exclusivos dos membros"); err != nil {
			return err
		}
		if len(entries) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, entry := range entries {
			if err := write(w, `<article class="card agenda"><h2>%s</h2><p class="date">%s</p>`, esc(entry.Title), esc(formatDateTime(entry.EventDate))); err != nil {
				return err
			}
			if entry.EventType != "" {
				if err := write(w, `<span class="badge">%s</span>`, esc(entry.EventType)); err != nil {
					return err
				}
			}
			if entry.Location != "" {
				if err := write(w, `<p class="location">%s</p>`, esc(entry.Location)); err != nil {
					return err
				}
			}
			if err := write(w, `<p>%s</p></article>`, esc(entry.Description)); err != nil {
				return err
			}
		}
		return nil
	})
}

// MessagesPage renders the member inbox plus the send form.
func MessagesPage(messages []storage.MemberMessage, form MessageForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Mensagens", "Comunicação entre os irmãos"); err != nil {
			return err
		}
		if form.Error != "" {
			if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
				return err
			}
		}
		if err := write(w, `<form class="form" method="post" action="%s">`, routepath.MembersMessagesSend); err != nil {
			return err
		}
		if err := write(w, `<label>Destinatário<input type="text" name="recipient_id" value="%s"></label>`, esc(form.RecipientID)); err != nil {
			return err
		}
		if err := write(w, `<label>Assunto<input type="text" name="subject" value="%s"></label>`, esc(form.Subject)); err != nil {
			return err
		}
		if err := write(w, `<label>Mensagem<textarea name="content" required>%s</textarea></label>`, esc(form.Content)); err != nil {
			return err
		}
		checked := ""
		if form.Broadcast {
			checked = " checked"
		}
		if err := write(w, `<label class="checkbox"><input type="checkbox" name="broadcast" value="1"%s> Enviar para todos</label>`, checked); err != nil {
			return err
		}
		if err := write(w, `<button type="submit">Enviar</button></form>`); err != nil {
			return err
		}

		if len(messages) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, msg := range messages {
			kind := "Direta"
			if msg.IsBroadcast {
				kind = "Geral"
			}
			if err := write(w, `<article class="card message"><h3>%s</h3><span class="badge">%s</span><p class="date">%s</p><p>%s</p></article>`,
				esc(msg.Subject), esc(kind), esc(formatDateTime(msg.CreatedAt)), esc(msg.Content)); err != nil {
				return err
			}
		}
		return nil
	})
}

// StudyWorkView pairs a stored work with its signed download link.
type StudyWorkView struct {
	Work        storage.StudyWork
	DownloadURL string
}

// StudyPage renders the study works list plus the upload form.
func StudyPage(works []StudyWorkView, form StudyUploadForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Trabalhos de Estudo", "Envio e consulta de trabalhos dos irmãos"); err != nil {
			return err
		}
		if form.Error != "" {
			if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
				return err
			}
		}
		if err := write(w, `<form class="form" method="post" action="%s" enctype="multipart/form-data">`, routepath.MembersStudyUpload); err != nil {
			return err
		}
		if err := write(w, `<label>Irmão autor<input type="text" name="brother_name" value="%s" required></label>`, esc(form.BrotherName)); err != nil {
			return err
		}
		if err := write(w, `<label>Título do trabalho<input type="text" name="work_title" value="%s" required></label>`, esc(form.WorkTitle)); err != nil {
			return err
		}
		if err := write(w, `<label>Categoria<input type="text" name="category" value="%s"></label>`, esc(form.Category)); err != nil {
			return err
		}
		if err := write(w, `<label>Descrição<textarea name="description">%s</textarea></label>`, esc(form.Description)); err != nil {
			return err
		}
		if err := write(w, `<label>Arquivo<input type="file" name="file" required></label>`); err != nil {
			return err
		}
		if err := write(w, `<button type="submit">Enviar</button></form>`); err != nil {
			return err
		}

		if len(works) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, view := range works {
			work := view.Work
			if err := write(w, `<article class="card study-work"><h3>%s</h3><p class="author">%s</p>`, esc(work.WorkTitle), esc(work.BrotherName)); err != nil {
				return err
			}
			if work.Category != "" {
				if err := write(w, `<span class="badge">%s</span>`, esc(work.Category)); err != nil {
					return err
				}
			}
			if err := write(w, `<p>%s</p><p class="date">%s</p>`, esc(work.Description), esc(formatDate(work.UploadDate))); err != nil {
				return err
			}
			if view.DownloadURL != "" {
				if err := write(w, `<p><a href="%s">Baixar</a></p>`, esc(view.DownloadURL)); err != nil {
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

// MastersPage renders the worshipful masters gallery.
func MastersPage(masters []storage.WorshipfulMaster) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Veneráveis Mestres", "Galeria dos veneráveis da loja"); err != nil {
			return err
		}
		if len(masters) == 0 {
			return write(w, `<div class="empty-state"><p>Nenhum registro encontrado.</p></div>`)
		}
		for _, master := range masters {
			if err := write(w, `<article class="card master"><h2>%s</h2>`, esc(master.Name)); err != nil {
				return err
			}
			if master.IsActive {
				if err := write(w, `<span class="badge badge-active">Atual</span>`); err != nil {
					return err
				}
			}
			if master.InstallationYear > 0 {
				if err := write(w, `<p class="year">Instalação: %d</p>`, master.InstallationYear); err != nil {
					return err
				}
			}
			if master.Bio != "" {
				if err := write(w, `<p>%s</p>`, esc(master.Bio)); err != nil {
					return err
				}
			}
			if master.Achievements != "" {
				if err := write(w, `<p class="achievements">%s</p>`, esc(master.Achievements)); err != nil {
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

// ProfilePage renders the member's own profile with the update form.
func ProfilePage(state auth.State, form ProfileForm) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := pageHeading(w, "Meu Perfil", ""); err != nil {
			return err
		}
		if state.User != nil {
			if err := write(w, `<p class="profile-email"><strong>E-mail:</strong> %s</p>`, esc(state.User.Email)); err != nil {
				return err
			}
		}
		if form.Error != "" {
			if err := write(w, `<div class="form-error" role="alert">%s</div>`, esc(form.Error)); err != nil {
				return err
			}
		}
		if err := write(w, `<form class="form" method="post" action="%s">`, routepath.ProfileUpdate); err != nil {
			return err
		}
		if err := write(w, `<label>Nome completo<input type="text" name="full_name" value="%s" required></label>`, esc(form.FullName)); err != nil {
			return err
		}
		if err := write(w, `<label>Cargo<input type="text" name="position" value="%s"></label>`, esc(form.Position)); err != nil {
			return err
		}
		if err := write(w, `<label>Foto (URL)<input type="url" name="photo_url" value="%s"></label>`, esc(form.PhotoURL)); err != nil {
			return err
		}
		return write(w, `<button type="submit">Salvar</button></form>`)
	})
}
