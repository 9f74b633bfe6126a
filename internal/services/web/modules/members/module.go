// Package members provides the role-gated members' area plus the profile
// surface for any signed-in user.
package members

import (
	"log"
	"net/http"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/id"
	module "github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage"
	"github.com/luzeprogresso/portal/internal/storage/blob"
)

// Dependencies carries the stores and services the members' area needs.
type Dependencies struct {
	Auth       *auth.Service
	Documents  storage.DocumentStore
	Agenda     storage.AgendaStore
	Messages   storage.MemberMessageStore
	StudyWorks storage.StudyWorkStore
	Masters    storage.MasterStore
	Bucket     *blob.Bucket

	NewID func() (string, error)
	Logf  func(format string, args ...any)
}

func normalize(deps Dependencies) Dependencies {
	if deps.NewID == nil {
		deps.NewID = id.NewID
	}
	if deps.Logf == nil {
		deps.Logf = log.Printf
	}
	return deps
}

// Module provides the member-gated routes under /members.
type Module struct {
	deps Dependencies
}

// New returns the members' area module.
func New(deps Dependencies) Module {
	return Module{deps: normalize(deps)}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "members"
}

// Mount wires the members' area routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{deps: m.deps}

	mux.HandleFunc(http.MethodGet+" "+routepath.MembersMenu+"/{$}", h.menu)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersMenu, h.menu)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersDocuments, h.documents)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersAgenda, h.agenda)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersMessages, h.messages)
	mux.HandleFunc(http.MethodPost+" "+routepath.MembersMessagesSend, h.sendMessage)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersStudy, h.study)
	mux.HandleFunc(http.MethodPost+" "+routepath.MembersStudyUpload, h.uploadStudyWork)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersStudyDownload, h.downloadStudyWork)
	mux.HandleFunc(http.MethodGet+" "+routepath.MembersWorshipfulMasters, h.masters)

	return module.Mount{Prefix: routepath.MembersPrefix, Handler: mux}, nil
}

// ProfileModule provides the profile routes for any signed-in user.
type ProfileModule struct {
	deps Dependencies
}

// NewProfile returns the profile module.
func NewProfile(deps Dependencies) ProfileModule {
	return ProfileModule{deps: normalize(deps)}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m ProfileModule) ID() string {
	return "profile"
}

// Mount wires the profile routes.
func (m ProfileModule) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{deps: m.deps}

	mux.HandleFunc(http.MethodGet+" "+routepath.Profile+"/{$}", h.profile)
	mux.HandleFunc(http.MethodGet+" "+routepath.Profile, h.profile)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProfileUpdate, h.updateProfile)

	return module.Mount{Prefix: routepath.ProfilePrefix, Handler: mux}, nil
}
