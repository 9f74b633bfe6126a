// Package web wires configuration and dependencies for the portal web
// process.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/luzeprogresso/portal/internal/auth"
	"github.com/luzeprogresso/portal/internal/platform/config"
	"github.com/luzeprogresso/portal/internal/platform/otel"
	"github.com/luzeprogresso/portal/internal/services/web"
	"github.com/luzeprogresso/portal/internal/storage/blob"
	"github.com/luzeprogresso/portal/internal/storage/sqlite"
)

// Config holds the web command configuration. Environment variables provide
// the defaults and flags override them.
type Config struct {
	HTTPAddr     string        `env:"PORTAL_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath       string        `env:"PORTAL_DB_PATH" envDefault:"portal.db"`
	BlobDir      string        `env:"PORTAL_BLOB_DIR" envDefault:"blobs"`
	Secret       string        `env:"PORTAL_SECRET"`
	BlobSecret   string        `env:"PORTAL_BLOB_SECRET"`
	SessionTTL   time.Duration `env:"PORTAL_SESSION_TTL"`
	OTELEndpoint string        `env:"PORTAL_OTEL_ENDPOINT"`
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.BlobDir, "blob-dir", cfg.BlobDir, "Uploaded file storage directory")
	fs.StringVar(&cfg.Secret, "secret", cfg.Secret, "Signing secret for sessions and confirmation links")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Secret == "" {
		return Config{}, fmt.Errorf("PORTAL_SECRET is required")
	}
	if cfg.BlobSecret == "" {
		cfg.BlobSecret = cfg.Secret
	}
	return cfg, nil
}

// Run starts the portal web server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "portal-web", cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	bucket, err := blob.Open(blob.Config{Root: cfg.BlobDir, Secret: []byte(cfg.BlobSecret)})
	if err != nil {
		return fmt.Errorf("open blob bucket: %w", err)
	}

	authService, err := auth.NewService(auth.Config{
		Store:      store,
		Secret:     []byte(cfg.Secret),
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}

	server, err := web.NewServer(web.Config{
		Addr:   cfg.HTTPAddr,
		Auth:   authService,
		Store:  store,
		Bucket: bucket,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
