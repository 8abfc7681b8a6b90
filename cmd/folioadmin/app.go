package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"folioadmin/internal/assets"
	"folioadmin/internal/cache"
	"folioadmin/internal/config"
	"folioadmin/internal/database"
	"folioadmin/internal/portfolio"
	"folioadmin/internal/session"
	"folioadmin/internal/shell"
	"folioadmin/internal/storage"
	"folioadmin/internal/store"
)

// app holds the connections and services shared by the commands.
// The caller must defer Close.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	valkey *redis.Client

	sessions  *session.Store
	snapshots *cache.SnapshotCache
	sink      assets.Sink
	services  shell.Services
}

// openDB loads the configuration, connects to the database and applies
// pending migrations.
func openDB() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogger(cfg.IsDev())

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	return cfg, db, nil
}

// newApp wires every store and service over a migrated database.
func newApp(ctx context.Context) (*app, error) {
	cfg, db, err := openDB()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, db: db}

	if devSeed || cfg.DevSeed {
		if cfg.Env == "production" {
			a.Close()
			return nil, errors.New("the dev seed is not allowed in production")
		}
		if err := database.Seed(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("seeding database: %w", err)
		}
	}

	secure := !cfg.IsDev()
	if cfg.UsesValkey() {
		a.valkey, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting to valkey: %w", err)
		}
		a.sessions = session.NewStore(a.valkey, secure)
		a.snapshots = cache.NewSnapshotCache(a.valkey, cache.DefaultTTL)
	} else {
		slog.Info("valkey not configured, using in-process sessions")
		a.sessions = session.NewMemoryStore(secure)
		a.snapshots = cache.NewMemorySnapshotCache(cache.DefaultTTL)
	}

	a.sink, err = imageSink(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	users := store.NewUserStore(db)
	projects := store.NewProjectStore(db)
	skills := store.NewExperienceStore(db)
	about := store.NewAboutStore(db)
	contacts := store.NewContactStore(db)

	a.services = shell.Services{
		Auth:       portfolio.NewAuthenticator(users),
		Projects:   portfolio.NewProjectService(projects, assets.New(a.sink)),
		Experience: portfolio.NewExperienceService(skills),
		About:      portfolio.NewAboutService(about),
		Contacts:   portfolio.NewContactService(contacts),
		Overview:   portfolio.NewOverview(projects, skills, about, contacts),
	}
	return a, nil
}

// imageSink picks the S3 bucket when one is configured and the local
// image directory otherwise.
func imageSink(ctx context.Context, cfg *config.Config) (assets.Sink, error) {
	if cfg.UsesS3() {
		client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return nil, fmt.Errorf("initializing s3 storage: %w", err)
		}
		if client != nil {
			if err := client.Check(ctx); err != nil {
				return nil, fmt.Errorf("checking s3 bucket: %w", err)
			}
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", client.Bucket())
			return client, nil
		}
		slog.Warn("s3 bucket set without endpoint or credentials, storing images locally")
	}

	slog.Info("storing project images locally", "dir", cfg.ImageDir, "base_url", cfg.ImageBaseURL)
	return assets.NewLocalSink(cfg.ImageDir, cfg.ImageBaseURL), nil
}

// localImageDir returns the directory images are written to when they are
// stored locally and so must be served by this process, or "".
func (a *app) localImageDir() string {
	if local, ok := a.sink.(*assets.LocalSink); ok {
		return local.Dir()
	}
	return ""
}

// invalidate drops the cached public snapshot after content changed.
func (a *app) invalidate(ctx context.Context) {
	a.snapshots.Invalidate(ctx, cache.PortfolioKey)
}

func (a *app) Close() {
	if a.valkey != nil {
		a.valkey.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
