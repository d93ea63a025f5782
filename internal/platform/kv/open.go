package kv

import (
	"context"
	"fmt"

	"github.com/handydesk/handydesk/internal/platform/cache"
	"github.com/handydesk/handydesk/internal/platform/db"
)

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver     string
	SQLitePath string
	RedisAddr  string
	PGDSN      string
}

// Open connects the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		return OpenSQLite(opts.SQLitePath)
	case DriverRedis:
		client, err := cache.New(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return NewRedis(client, ""), nil
	case DriverPostgres:
		pool, err := db.New(ctx, opts.PGDSN)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("kv: unknown storage driver %q", opts.Driver)
	}
}
