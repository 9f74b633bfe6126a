// Package public provides the unauthenticated site surface: informational
// pages, the contact form and the sign-in/sign-up/sign-out flows.
package public

import (
	"log"
	"net/http"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/id"
	module "github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage"
)

// Dependencies carries the stores and services the public surface needs.
// Each field is typed as the narrow interface the handlers consume.
type Dependencies struct {
	Auth       *auth.Service
	LodgeInfo  storage.LodgeInfoStore
	Officers   storage.OfficerStore
	Activities storage.ActivityStore
	Events     storage.EventStore
	Articles   storage.ArticleStore
	Education  storage.EducationStore
	Contact    storage.ContactMessageStore

	NewID func() (string, error)
	Logf  func(format string, args ...any)
}

// Module provides unauthenticated root routes.
type Module struct {
	deps Dependencies
}

// New returns the public module.
func New(deps Dependencies) Module {
	if deps.NewID == nil {
		deps.NewID = id.NewID
	}
	if deps.Logf == nil {
		deps.Logf = log.Printf
	}
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "public"
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{deps: m.deps}

	mux.HandleFunc(http.MethodGet+" /{$}", h.home)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.health)
	mux.HandleFunc(http.MethodGet+" "+routepath.About, h.about)
	mux.HandleFunc(http.MethodGet+" "+routepath.Activities, h.activities)
	mux.HandleFunc(http.MethodGet+" "+routepath.Events, h.events)
	mux.HandleFunc(http.MethodGet+" "+routepath.Education, h.education)
	mux.HandleFunc(http.MethodGet+" "+routepath.Contact, h.contactForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Contact, h.contactSubmit)

	mux.HandleFunc(http.MethodGet+" "+routepath.AuthLogin, h.authForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthLogin, h.signIn)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthSignUp, h.signUp)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthSignOut, h.signOut)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthConfirm, h.confirm)

	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
