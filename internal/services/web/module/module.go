// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/luzeprogresso/portal/internal/auth"
)

// ResolveState resolves the authentication state for a request. The server
// installs a resolver that memoizes the lookup per request, so modules can
// call it freely.
type ResolveState func(*http.Request) auth.State

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
