// Package cli implements safehaven-admin, the operator tool for schema,
// seed data, drafts and caches.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/safehaven-ai/safehaven-backend/config"
	"github.com/safehaven-ai/safehaven-backend/internal/bootstrap"
	"github.com/safehaven-ai/safehaven-backend/internal/logging"
	"github.com/safehaven-ai/safehaven-backend/internal/storage/postgres"
)

var (
	version = "dev"
	commit  = "none"
)

// backends opens connections on demand so commands only touch what they use.
type backends struct {
	config   func() (*config.Config, error)
	redis    func(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error)
	postgres func(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error)
	mongo    func(ctx context.Context, cfg *config.Config) (*mongo.Database, func(), error)
}

func defaultBackends() *backends {
	return &backends{
		config: config.Load,
		redis: func(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
			client, err := bootstrap.OpenRedis(ctx, cfg.Redis)
			if err != nil {
				return nil, nil, err
			}
			return client, func() { _ = client.Close() }, nil
		},
		postgres: func(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
			db, err := postgres.NewConnection(ctx, &cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return db, func() { _ = db.Close() }, nil
		},
		mongo: func(ctx context.Context, cfg *config.Config) (*mongo.Database, func(), error) {
			client, err := bootstrap.OpenMongo(ctx, cfg.Mongo)
			if err != nil {
				return nil, nil, err
			}
			return client.Database(cfg.Mongo.Database), func() { _ = client.Disconnect(context.Background()) }, nil
		},
	}
}

func (b *backends) logger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.App.LogLevel)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newRootCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "safehaven-admin",
		Short:         "Operate the SafeHaven inspection backend",
		Long:          "safehaven-admin migrates and seeds the stores behind the SafeHaven API and inspects or cleans up wizard state.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrateCmd(b))
	cmd.AddCommand(newSeedCmd(b))
	cmd.AddCommand(newDraftsCmd(b))
	cmd.AddCommand(newSubmissionsCmd(b))
	cmd.AddCommand(newSweepCmd(b))
	cmd.AddCommand(newCacheCmd(b))
	return cmd
}

// NewRootCmdForTest returns the root command wired to the given handles.
// Nil handles make the commands that need them fail.
func NewRootCmdForTest(cfg *config.Config, rdb *redis.Client, db *sql.DB) *cobra.Command {
	noop := func() {}
	return newRootCmd(&backends{
		config: func() (*config.Config, error) { return cfg, nil },
		redis: func(context.Context, *config.Config) (*redis.Client, func(), error) {
			if rdb == nil {
				return nil, nil, errUnavailable("redis")
			}
			return rdb, noop, nil
		},
		postgres: func(context.Context, *config.Config) (*sql.DB, func(), error) {
			if db == nil {
				return nil, nil, errUnavailable("postgres")
			}
			return db, noop, nil
		},
		mongo: func(context.Context, *config.Config) (*mongo.Database, func(), error) {
			return nil, nil, errUnavailable("mongo")
		},
	})
}

func Execute() error {
	return newRootCmd(defaultBackends()).Execute()
}

func errUnavailable(backend string) error {
	return fmt.Errorf("%s is not configured", backend)
}
