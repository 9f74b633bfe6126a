package members

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/luzeprogresso/portal/internal/auth"
	platformerrors "github.com/luzeprogresso/portal/internal/platform/errors"
	"github.com/luzeprogresso/portal/internal/services/web/platform/authctx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/flash"
	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/pagerender"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/services/web/templates"
	"github.com/luzeprogresso/portal/internal/storage"
	"github.com/luzeprogresso/portal/internal/storage/blob"
)

// multipart bodies larger than this spill to disk before the bucket cap applies
const uploadMemoryLimit = 4 << 20

type handlers struct {
	deps Dependencies
}

func memberOnly(state auth.State) bool {
	return state.IsMember
}

func anySignedIn(auth.State) bool {
	return true
}

func (h handlers) menu(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, memberOnly, func() pagerender.Page {
		return pagerender.Page{
			Title: "Área do Membro",
			Body:  templates.MembersMenuPage(authctx.FromRequest(r)),
		}
	})
}

func (h handlers) documents(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, memberOnly, func() pagerender.Page {
		documents, err := h.deps.Documents.ListInternalDocuments(httpx.RequestContext(r))
		if err != nil {
			h.logRead("documents", err)
			documents = nil
		}
		return pagerender.Page{Title: "Documentos", Body: templates.DocumentsPage(documents)}
	})
}

func (h handlers) agenda(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, memberOnly, func() pagerender.Page {
		entries, err := h.deps.Agenda.ListAgendaEntries(httpx.RequestContext(r))
		if err != nil {
			h.logRead("agenda", err)
			entries = nil
		}
		return pagerender.Page{Title: "Agenda Reservada", Body: templates.AgendaPage(entries)}
	})
}

func (h handlers) messages(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, memberOnly, func() pagerender.Page {
		return h.messagesPage(r, templates.MessageForm{}, http.StatusOK)
	})
}

func (h handlers) messagesPage(r *http.Request, form templates.MessageForm, status int) pagerender.Page {
	state := authctx.FromRequest(r)
	messages, err := h.deps.Messages.ListMessagesForUser(httpx.RequestContext(r), state.User.ID)
	if err != nil {
		h.logRead("messages", err)
		messages = nil
	}
	return pagerender.Page{
		Title:      "Mensagens",
		StatusCode: status,
		Body:       templates.MessagesPage(messages, form),
	}
}

func (h handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, memberOnly) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	form := templates.MessageForm{
		RecipientID: strings.TrimSpace(r.PostFormValue("recipient_id")),
		Subject:     strings.TrimSpace(r.PostFormValue("subject")),
		Content:     strings.TrimSpace(r.PostFormValue("content")),
		Broadcast:   r.PostFormValue("broadcast") == "1",
	}
	if form.Content == "" {
		form.Error = "Escreva a mensagem antes de enviar."
		_ = pagerender.Write(w, r, h.messagesPage(r, form, http.StatusUnprocessableEntity))
		return
	}
	if !form.Broadcast && form.RecipientID == "" {
		form.Error = "Informe o destinatário ou marque o envio para todos."
		_ = pagerender.Write(w, r, h.messagesPage(r, form, http.StatusUnprocessableEntity))
		return
	}

	messageID, err := h.deps.NewID()
	if err != nil {
		h.deps.Logf("members: generate message id: %v", err)
		form.Error = "Não foi possível enviar a mensagem. Tente novamente."
		_ = pagerender.Write(w, r, h.messagesPage(r, form, http.StatusInternalServerError))
		return
	}
	state := authctx.FromRequest(r)
	_, err = h.deps.Messages.InsertMemberMessage(httpx.RequestContext(r), storage.MemberMessage{
		ID:          messageID,
		SenderID:    state.User.ID,
		RecipientID: form.RecipientID,
		Subject:     form.Subject,
		Content:     form.Content,
		IsBroadcast: form.Broadcast,
	})
	if err != nil {
		h.deps.Logf("members: insert message: %v", err)
		form.Error = "Não foi possível enviar a mensagem. Tente novamente."
		_ = pagerender.Write(w, r, h.messagesPage(r, form, http.StatusInternalServerError))
		return
	}

	flash.Write(w, r, flash.Success("Mensagem enviada", "Sua mensagem foi registrada."))
	http.Redirect(w, r, routepath.MembersMessages, http.StatusSeeOther)
}

func (h handlers) study(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, memberOnly, func() pagerender.Page {
		return h.studyPage(r, templates.StudyUploadForm{}, http.StatusOK)
	})
}

func (h handlers) studyPage(r *http.Request, form templates.StudyUploadForm, status int) pagerender.Page {
	works, err := h.deps.StudyWorks.ListStudyWorks(httpx.RequestContext(r))
	if err != nil {
		h.logRead("study works", err)
		works = nil
	}
	views := make([]templates.StudyWorkView, 0, len(works))
	for _, work := range works {
		view := templates.StudyWorkView{Work: work}
		if work.FilePath != "" {
			token, err := h.deps.Bucket.SignDownload(work.FilePath, downloadFileName(work), blob.DefaultDownloadTTL)
			if err != nil {
				h.deps.Logf("members: sign download %s: %v", work.ID, err)
			} else {
				view.DownloadURL = routepath.MembersStudyDownloadPath(token)
			}
		}
		views = append(views, view)
	}
	return pagerender.Page{
		Title:      "Trabalhos de Estudo",
		StatusCode: status,
		Body:       templates.StudyPage(views, form),
	}
}

func (h handlers) uploadStudyWork(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, memberOnly) {
		return
	}
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	form := templates.StudyUploadForm{
		BrotherName: strings.TrimSpace(r.PostFormValue("brother_name")),
		WorkTitle:   strings.TrimSpace(r.PostFormValue("work_title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
	}
	if form.BrotherName == "" || form.WorkTitle == "" {
		form.Error = "Preencha o autor e o título do trabalho."
		_ = pagerender.Write(w, r, h.studyPage(r, form, http.StatusUnprocessableEntity))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		form.Error = "Selecione o arquivo do trabalho."
		_ = pagerender.Write(w, r, h.studyPage(r, form, http.StatusUnprocessableEntity))
		return
	}
	defer file.Close()

	key, size, err := h.deps.Bucket.Save(header.Filename, file)
	if err != nil {
		h.deps.Logf("members: save study work file: %v", err)
		form.Error = "Não foi possível armazenar o arquivo. Tente novamente."
		_ = pagerender.Write(w, r, h.studyPage(r, form, http.StatusInternalServerError))
		return
	}

	workID, err := h.deps.NewID()
	if err != nil {
		h.deps.Logf("members: generate study work id: %v", err)
		form.Error = "Não foi possível registrar o trabalho. Tente novamente."
		_ = pagerender.Write(w, r, h.studyPage(r, form, http.StatusInternalServerError))
		return
	}
	state := authctx.FromRequest(r)
	_, err = h.deps.StudyWorks.InsertStudyWork(httpx.RequestContext(r), storage.StudyWork{
		ID:          workID,
		BrotherName: form.BrotherName,
		WorkTitle:   form.WorkTitle,
		FilePath:    key,
		FileSize:    size,
		Description: form.Description,
		Category:    form.Category,
		UploadedBy:  state.User.ID,
	})
	if err != nil {
		h.deps.Logf("members: insert study work: %v", err)
		form.Error = "Não foi possível registrar o trabalho. Tente novamente."
		_ = pagerender.Write(w, r, h.studyPage(r, form, http.StatusInternalServerError))
		return
	}

	flash.Write(w, r, flash.Success("Trabalho enviado", "O trabalho foi registrado e já está disponível."))
	http.Redirect(w, r, routepath.MembersStudy, http.StatusSeeOther)
}

func (h handlers) downloadStudyWork(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, memberOnly) {
		return
	}

	key, fileName, err := h.deps.Bucket.VerifyDownload(r.URL.Query().Get("token"))
	if err != nil {
		flash.Write(w, r, flash.Destructive("Erro", "Link de download inválido ou expirado."))
		http.Redirect(w, r, routepath.MembersStudy, http.StatusSeeOther)
		return
	}
	reader, err := h.deps.Bucket.Reader(key)
	if err != nil {
		h.deps.Logf("members: open study work %s: %v", key, err)
		http.Error(w, "arquivo não encontrado", http.StatusNotFound)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(fileName, `"`, "")+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		h.deps.Logf("members: stream study work %s: %v", key, err)
	}
}

func (h handlers) masters(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, memberOnly, func() pagerender.Page {
		masters, err := h.deps.Masters.ListWorshipfulMasters(httpx.RequestContext(r))
		if err != nil {
			h.logRead("worshipful masters", err)
			masters = nil
		}
		return pagerender.Page{Title: "Veneráveis Mestres", Body: templates.MastersPage(masters)}
	})
}

func (h handlers) profile(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.WriteGated(w, r, anySignedIn, func() pagerender.Page {
		state := authctx.FromRequest(r)
		form := templates.ProfileForm{}
		if state.Profile != nil {
			form.FullName = state.Profile.FullName
			form.Position = state.Profile.Position
			form.PhotoURL = state.Profile.PhotoURL
		}
		return pagerender.Page{Title: "Meu Perfil", Body: templates.ProfilePage(state, form)}
	})
}

func (h handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	if !pagerender.Gate(w, r, anySignedIn) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	state := authctx.FromRequest(r)
	form := templates.ProfileForm{
		FullName: strings.TrimSpace(r.PostFormValue("full_name")),
		Position: strings.TrimSpace(r.PostFormValue("position")),
		PhotoURL: strings.TrimSpace(r.PostFormValue("photo_url")),
	}

	err := h.deps.Auth.UpdateOwnProfile(httpx.RequestContext(r), state.User.ID, form.FullName, form.Position, form.PhotoURL)
	if err != nil {
		form.Error = errorMessage(err, "Não foi possível salvar o perfil. Tente novamente.")
		_ = pagerender.Write(w, r, pagerender.Page{
			Title:      "Meu Perfil",
			StatusCode: http.StatusUnprocessableEntity,
			Body:       templates.ProfilePage(state, form),
		})
		return
	}

	flash.Write(w, r, flash.Success("Perfil atualizado", "Seus dados foram salvos."))
	http.Redirect(w, r, routepath.Profile, http.StatusSeeOther)
}

func (h handlers) logRead(what string, err error) {
	h.deps.Logf("members: load %s: %v", what, err)
}

func downloadFileName(work storage.StudyWork) string {
	name := strings.TrimSpace(work.WorkTitle)
	if name == "" {
		name = work.FilePath
	}
	return name + path.Ext(work.FilePath)
}

func errorMessage(err error, fallback string) string {
	var typed *platformerrors.Error
	if errors.As(err, &typed) && strings.TrimSpace(typed.Message) != "" {
		return typed.Message
	}
	return fallback
}
