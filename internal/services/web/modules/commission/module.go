// Package commission provides the administrative area where commission
// members manage events, activities and received correspondence.
package commission

import (
	"log"
	"net/http"

	"github.com/luzeprogresso/portal/internal/platform/id"
	module "github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/storage"
)

// Dependencies carries the stores the commission area needs.
type Dependencies struct {
	Events     storage.EventStore
	Activities storage.ActivityStore
	Contact    storage.ContactMessageStore

	NewID func() (string, error)
	Logf  func(format string, args ...any)
}

// Module provides the commission-gated routes under /commission.
type Module struct {
	deps Dependencies
}

// New returns the commission module.
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
	return "commission"
}

// Mount wires the commission routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{deps: m.deps}

	mux.HandleFunc(http.MethodGet+" "+routepath.CommissionMenu+"/{$}", h.menu)
	mux.HandleFunc(http.MethodGet+" "+routepath.CommissionMenu, h.menu)

	mux.HandleFunc(http.MethodGet+" "+routepath.CommissionEvents, h.events)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionEventsCreate, h.createEvent)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionEventUpdate, h.updateEvent)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionEventDelete, h.deleteEvent)

	mux.HandleFunc(http.MethodGet+" "+routepath.CommissionActivities, h.activities)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionActivitiesCreate, h.createActivity)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionActivityUpdate, h.updateActivity)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionActivityDelete, h.deleteActivity)

	mux.HandleFunc(http.MethodGet+" "+routepath.CommissionSecretary, h.secretary)
	mux.HandleFunc(http.MethodPost+" "+routepath.CommissionSecretaryRead, h.markMessageRead)
	mux.HandleFunc(http.MethodGet+" "+routepath.CommissionFinance, h.finance)

	return module.Mount{Prefix: routepath.CommissionPrefix, Handler: mux}, nil
}
