// Package modules registers the web modules composing the portal.
package modules

import (
	"github.com/luzeprogresso/portal/internal/auth"
	module "github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/modules/commission"
	"github.com/luzeprogresso/portal/internal/services/web/modules/members"
	"github.com/luzeprogresso/portal/internal/services/web/modules/public"
	"github.com/luzeprogresso/portal/internal/storage"
	"github.com/luzeprogresso/portal/internal/storage/blob"
)

// Module re-exports the module contract for registry callers.
type Module = module.Module

// Store aggregates the repositories the web modules consume. The sqlite
// store satisfies it in full.
type Store interface {
	storage.EventStore
	storage.ActivityStore
	storage.ArticleStore
	storage.OfficerStore
	storage.LodgeInfoStore
	storage.ContactMessageStore
	storage.EducationStore
	storage.DocumentStore
	storage.AgendaStore
	storage.MemberMessageStore
	storage.MasterStore
	storage.StudyWorkStore
}

// Dependencies carries the shared services handed to every module.
type Dependencies struct {
	Auth   *auth.Service
	Store  Store
	Bucket *blob.Bucket

	NewID func() (string, error)
	Logf  func(format string, args ...any)
}

// Default returns the stable portal modules in mount order.
func Default(deps Dependencies) []Module {
	memberDeps := members.Dependencies{
		Auth:       deps.Auth,
		Documents:  deps.Store,
		Agenda:     deps.Store,
		Messages:   deps.Store,
		StudyWorks: deps.Store,
		Masters:    deps.Store,
		Bucket:     deps.Bucket,
		NewID:      deps.NewID,
		Logf:       deps.Logf,
	}
	return []Module{
		public.New(public.Dependencies{
			Auth:       deps.Auth,
			LodgeInfo:  deps.Store,
			Officers:   deps.Store,
			Activities: deps.Store,
			Events:     deps.Store,
			Articles:   deps.Store,
			Education:  deps.Store,
			Contact:    deps.Store,
			NewID:      deps.NewID,
			Logf:       deps.Logf,
		}),
		members.New(memberDeps),
		members.NewProfile(memberDeps),
		commission.New(commission.Dependencies{
			Events:     deps.Store,
			Activities: deps.Store,
			Contact:    deps.Store,
			NewID:      deps.NewID,
			Logf:       deps.Logf,
		}),
	}
}
