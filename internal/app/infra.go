package app

import (
	"context"
	"errors"

	"lingo-service/internal/config"
	"lingo-service/internal/db"
	"lingo-service/internal/logger"
	"lingo-service/internal/redis"
	"lingo-service/internal/session"
	"lingo-service/internal/users"
)

// Infra holds the backing stores. DB and Redis are nil when the service
// runs on the in-memory fallbacks.
type Infra struct {
	DB    *db.DB
	Redis *redis.Client

	Users    users.Store
	Sessions session.Store
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN == "" {
		logger.Warn("DATABASE_DSN not set, users are kept in memory", nil)
		infra.Users = users.NewMemoryStore()
	} else {
		database, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, database.DB); err != nil {
			_ = database.Close()
			return nil, err
		}
		infra.DB = database
		infra.Users = users.NewPostgresStore(database)
		logger.Info("database ready", nil)
	}

	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, sessions are kept in memory", nil)
		infra.Sessions = session.NewMemoryStore()
	} else {
		redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			_ = infra.Close()
			return nil, err
		}
		infra.Redis = redisClient
		infra.Sessions = session.NewRedisStore(redisClient.Client)
		logger.Info("redis ready", nil)
	}

	return infra, nil
}

// Close releases whatever connections were opened.
func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	return errors.Join(errs...)
}
