// Package web assembles the portal HTTP server from its modules.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/timeouts"
	module "github.com/luzeprogresso/portal/internal/services/web/module"
	"github.com/luzeprogresso/portal/internal/services/web/modules"
	"github.com/luzeprogresso/portal/internal/services/web/platform/authctx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/httpx"
	"github.com/luzeprogresso/portal/internal/services/web/platform/sessioncookie"
	"github.com/luzeprogresso/portal/internal/services/web/routepath"
	"github.com/luzeprogresso/portal/internal/services/web/static"
	"github.com/luzeprogresso/portal/internal/storage/blob"
)

// Config defines the inputs for the portal web server.
type Config struct {
	Addr   string
	Auth   *auth.Service
	Store  modules.Store
	Bucket *blob.Bucket

	// Modules overrides the default registry when non-nil.
	Modules []modules.Module

	NewID func() (string, error)
	Logf  func(format string, args ...any)
}

// Server hosts the portal HTTP server.
type Server struct {
	addr       string
	httpServer *http.Server
}

// NewHandler composes the module mounts behind the shared middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}

	mods := cfg.Modules
	if mods == nil {
		mods = modules.Default(modules.Dependencies{
			Auth:   cfg.Auth,
			Store:  cfg.Store,
			Bucket: cfg.Bucket,
			NewID:  cfg.NewID,
			Logf:   cfg.Logf,
		})
	}

	root := http.NewServeMux()
	root.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))

	seen := map[string]string{}
	for _, mod := range mods {
		mount, err := mod.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", mod.ID(), err)
		}
		prefix := mount.Prefix
		if prefix == "" || mount.Handler == nil {
			return nil, fmt.Errorf("module %s returned an empty mount", mod.ID())
		}
		if owner, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %s mounts %q already owned by %s", mod.ID(), prefix, owner)
		}
		seen[prefix] = mod.ID()

		root.Handle(prefix, mount.Handler)
		// Prefixed mounts also answer their bare path, so /members resolves
		// alongside /members/documents.
		if trimmed := strings.TrimSuffix(prefix, "/"); trimmed != "" && trimmed != prefix {
			root.Handle(trimmed, mount.Handler)
		}
		logf("web: mounted module %s at %s", mod.ID(), prefix)
	}

	resolve := module.ResolveState(func(r *http.Request) auth.State {
		sessionID, ok := sessioncookie.Read(r)
		if !ok {
			return auth.Anonymous()
		}
		return cfg.Auth.Resolve(httpx.RequestContext(r), sessionID)
	})

	return httpx.Chain(root,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.TraceRequests("portal/web"),
		httpx.RequestLogger(logf),
		authctx.Middleware(resolve),
	), nil
}

// NewServer builds a configured portal web server.
func NewServer(cfg Config) (*Server, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = ":8080"
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation it performs a bounded shutdown so in-flight requests are
// drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("portal web listening on %s", s.addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
