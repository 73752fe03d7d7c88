package cli

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/kv"
	"todo/internal/service"
	"todo/internal/store"
)

// OpenStore opens the configured key-value backend and loads the store.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.Service, error) {
	s := cfg.Settings

	db, err := kv.Open(ctx, kv.Options{
		Backend:       s.Backend,
		Path:          cfg.DataPath(),
		RedisAddr:     s.Redis.Addr,
		RedisPassword: s.Redis.Password,
		RedisDB:       s.Redis.DB,
		RedisPrefix:   s.Redis.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", s.Backend, err)
	}

	st, err := store.Open(ctx, db, store.Options{
		Logger:          log.Named("store"),
		DefaultListName: s.DefaultListName,
		ShowCompleted:   s.ShowCompleted,
	})
	if err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	return st, nil
}
