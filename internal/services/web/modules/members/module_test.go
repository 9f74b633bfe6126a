package members_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/modules/members"
	"github.com/luzeprogresso/portal/internal/services/web/platform/authctx"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage/blob"
	"github.com/luzeprogresso/portal/internal/storage/sqlite"
)

type testEnv struct {
	store   *sqlite.Store
	authsvc *auth.Service
	bucket  *blob.Bucket
	deps    members.Dependencies
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "portal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	bucket, err := blob.Open(blob.Config{Root: t.TempDir(), Secret: []byte("test-blob-secret")})
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	authsvc, err := auth.NewService(auth.Config{Store: store, Secret: []byte("test-auth-secret"), Logf: t.Logf})
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	return &testEnv{
		store:   store,
		authsvc: authsvc,
		bucket:  bucket,
		deps: members.Dependencies{
			Auth:       authsvc,
			Documents:  store,
			Agenda:     store,
			Messages:   store,
			StudyWorks: store,
			Masters:    store,
			Bucket:     bucket,
			Logf:       t.Logf,
		},
	}
}

// handler mounts the members and profile modules behind a fixed auth state.
func (env *testEnv) handler(t *testing.T, state auth.State) http.Handler {
	t.Helper()
	root := http.NewServeMux()
	for _, mod := range []module.Module{members.New(env.deps), members.NewProfile(env.deps)} {
		mount, err := mod.Mount()
		if err != nil {
			t.Fatalf("mount %s: %v", mod.ID(), err)
		}
		root.Handle(mount.Prefix, mount.Handler)
		root.Handle(strings.TrimSuffix(mount.Prefix, "/"), mount.Handler)
	}
	resolve := module.ResolveState(func(*http.Request) auth.State { return state })
	return authctx.Middleware(resolve)(root)
}

// seedMember registers, confirms and promotes one member, returning the
// resolved signed-in state.
func (env *testEnv) seedMember(t *testing.T) auth.State {
	t.Helper()
	ctx := context.Background()

	_, err := env.authsvc.SignUp(ctx, "irmao@luz.org.br", "senha-secreta", "Irmão Teste", routepath.MembersMenu)
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	user, err := env.store.GetUserByEmail(ctx, "irmao@luz.org.br")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	profile, err := env.store.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	profile.Role = auth.RoleMember
	if err := env.store.UpdateProfile(ctx, profile); err != nil {
		t.Fatalf("promote profile: %v", err)
	}

	session, err := env.authsvc.SignIn(ctx, "irmao@luz.org.br", "senha-secreta")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	state := env.authsvc.Resolve(ctx, session.ID)
	if !state.IsMember {
		t.Fatalf("seeded state is not a member: %+v", state)
	}
	return state
}

func TestMenuGatePerState(t *testing.T) {
	env := newTestEnv(t)

	anonymous := httptest.NewRecorder()
	env.handler(t, auth.Anonymous()).ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, routepath.MembersMenu, nil))
	if !strings.Contains(anonymous.Body.String(), "Faça login para acessar esta área.") {
		t.Fatal("expected sign-in prompt for anonymous visitor")
	}

	member := httptest.NewRecorder()
	env.handler(t, env.seedMember(t)).ServeHTTP(member, httptest.NewRequest(http.MethodGet, routepath.MembersMenu, nil))
	if member.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", member.Code)
	}
	if !strings.Contains(member.Body.String(), "Área do Membro") {
		t.Fatal("expected members menu for member")
	}
}

func TestSendBroadcastMessage(t *testing.T) {
	env := newTestEnv(t)
	state := env.seedMember(t)

	form := url.Values{"subject": {"Aviso"}, "content": {"Sessão transferida."}, "broadcast": {"1"}}
	request := httptest.NewRequest(http.MethodPost, routepath.MembersMessagesSend, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	env.handler(t, state).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", recorder.Code, recorder.Body.String())
	}
	if location := recorder.Header().Get("Location"); location != routepath.MembersMessages {
		t.Fatalf("location = %q, want %q", location, routepath.MembersMessages)
	}

	messages, err := env.store.ListMessagesForUser(context.Background(), state.User.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 1 || !messages[0].IsBroadcast || messages[0].Content != "Sessão transferida." {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestSendDirectMessageRequiresRecipient(t *testing.T) {
	env := newTestEnv(t)
	state := env.seedMember(t)

	form := url.Values{"content": {"Olá"}}
	request := httptest.NewRequest(http.MethodPost, routepath.MembersMessagesSend, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	env.handler(t, state).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Informe o destinatário") {
		t.Fatal("expected recipient validation message")
	}
	messages, err := env.store.ListMessagesForUser(context.Background(), state.User.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("message stored despite validation failure: %+v", messages)
	}
}

func TestStudyWorkUploadAndDownload(t *testing.T) {
	env := newTestEnv(t)
	state := env.seedMember(t)
	handler := env.handler(t, state)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("brother_name", "Irmão Teste")
	_ = writer.WriteField("work_title", "Simbolismo do Esquadro")
	_ = writer.WriteField("category", "Simbolismo")
	part, err := writer.CreateFormFile("file", "trabalho.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("conteudo do trabalho")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = writer.Close()

	upload := httptest.NewRequest(http.MethodPost, routepath.MembersStudyUpload, &body)
	upload.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, upload)
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d, want 303: %s", recorder.Code, recorder.Body.String())
	}

	works, err := env.store.ListStudyWorks(context.Background())
	if err != nil {
		t.Fatalf("list study works: %v", err)
	}
	if len(works) != 1 {
		t.Fatalf("len(works) = %d, want 1", len(works))
	}
	work := works[0]
	if work.FileSize != int64(len("conteudo do trabalho")) || work.UploadedBy != state.User.ID {
		t.Fatalf("unexpected work record: %+v", work)
	}

	token, err := env.bucket.SignDownload(work.FilePath, "trabalho.pdf", blob.DefaultDownloadTTL)
	if err != nil {
		t.Fatalf("sign download: %v", err)
	}
	download := httptest.NewRequest(http.MethodGet, routepath.MembersStudyDownloadPath(token), nil)
	downloadRecorder := httptest.NewRecorder()
	handler.ServeHTTP(downloadRecorder, download)
	if downloadRecorder.Code != http.StatusOK {
		t.Fatalf("download status = %d, want 200", downloadRecorder.Code)
	}
	content, _ := io.ReadAll(downloadRecorder.Body)
	if string(content) != "conteudo do trabalho" {
		t.Fatalf("downloaded content = %q", content)
	}
	if disposition := downloadRecorder.Header().Get("Content-Disposition"); !strings.Contains(disposition, "trabalho.pdf") {
		t.Fatalf("content disposition = %q", disposition)
	}
}

func TestStudyDownloadRejectsBadToken(t *testing.T) {
	env := newTestEnv(t)
	handler := env.handler(t, env.seedMember(t))

	request := httptest.NewRequest(http.MethodGet, routepath.MembersStudyDownload+"?token=garbage", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != routepath.MembersStudy {
		t.Fatalf("location = %q, want %q", location, routepath.MembersStudy)
	}
}

func TestProfileUpdateKeepsRole(t *testing.T) {
	env := newTestEnv(t)
	state := env.seedMember(t)

	form := url.Values{
		"full_name": {"Irmão Renomeado"},
		"position":  {"Orador"},
		"photo_url": {"https://example.org/foto.jpg"},
	}
	request := httptest.NewRequest(http.MethodPost, routepath.ProfileUpdate, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	env.handler(t, state).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", recorder.Code, recorder.Body.String())
	}

	profile, err := env.store.GetProfileByUserID(context.Background(), state.User.ID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.FullName != "Irmão Renomeado" || profile.Position != "Orador" {
		t.Fatalf("profile not updated: %+v", profile)
	}
	if profile.Role != auth.RoleMember {
		t.Fatalf("role = %q, want %q", profile.Role, auth.RoleMember)
	}
}
