package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/spotsecure/internal/billing"
	"github.com/Tiliavir/spotsecure/internal/config"
	"github.com/Tiliavir/spotsecure/internal/logger"
	"github.com/Tiliavir/spotsecure/internal/notify"
	"github.com/Tiliavir/spotsecure/internal/registry"
	"github.com/Tiliavir/spotsecure/internal/session"
	"github.com/Tiliavir/spotsecure/internal/storage"
	"github.com/Tiliavir/spotsecure/internal/validate"
)

// app bundles everything a command needs, built from config on each run.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	registry *registry.Registry
	engine   billing.Engine
	session  *session.File
	notifier notify.Notifier

	closers []func() error
}

// openApp loads config, builds the logger and opens the configured store.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, userError(err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, userError(err)
	}

	base, err := storage.BaseDir()
	if err != nil {
		return nil, storageError(err)
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		engine:  billing.New(cfg.Billing.RatePerHour, cfg.Billing.Capacity),
		session: session.NewFile(base),
		closers: []func() error{func() error { _ = log.Sync(); return nil }},
	}

	store, err := a.openStore(ctx, base)
	if err != nil {
		return nil, storageError(err)
	}

	a.registry, err = registry.New(store, cfg.Billing.Capacity, registry.WithLogger(log))
	if err != nil {
		return nil, userError(err)
	}

	a.notifier = notify.NewGateway(ctx, notify.Config{
		BaseURL: cfg.Notify.BaseURL,
		AppKey:  cfg.Notify.AppKey,
		Timeout: cfg.Notify.Timeout.Std(),
	}, log)

	return a, nil
}

func (a *app) openStore(ctx context.Context, base string) (storage.Store, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := storage.DialRedis(ctx, storage.RedisOptions{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.log.Debug("using redis store", zap.String("addr", a.cfg.Redis.Addr))
		return storage.NewRedisStore(client, a.cfg.Redis.Namespace), nil
	default:
		fs := storage.NewFileStore(base)
		a.log.Debug("using file store", zap.String("path", fs.Path()))
		return fs, nil
	}
}

// Close releases the store connection and flushes the logger.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// requireLogin fails unless the local session flag is set.
func (a *app) requireLogin() error {
	if err := a.session.Require(); err != nil {
		return userError(err)
	}
	return nil
}

// classify maps a registry error to the matching exit code.
func classify(err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr),
		errors.Is(err, registry.ErrCapacityExceeded),
		errors.Is(err, registry.ErrNotFound):
		return userError(err)
	default:
		return storageError(err)
	}
}

// withApp runs fn with a freshly opened app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// printWarning reports a non-fatal problem after the main output.
func printWarning(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}
