package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/sedaily/internal/client/config"
	"github.com/dmitrijs2005/sedaily/internal/client/repositories/metadata"
	"github.com/redis/go-redis/v9"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// pingContext bounds the startup ping; a non-positive timeout means no deadline.
func pingContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Open builds the metadata repository selected by cfg.Storage. The returned
// io.Closer releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config) (metadata.Repository, io.Closer, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return metadata.NewSQLiteRepository(db), db, nil

	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := pingContext(ctx, cfg.OperationTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis %s unavailable: %w", cfg.RedisAddr, err)
		}
		return metadata.NewRedisRepository(rdb, ""), rdb, nil

	case config.StorageMemory:
		return metadata.NewMemoryRepository(), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage)
	}
}
