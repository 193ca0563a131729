package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/safehaven-ai/safehaven-backend/config"
	"github.com/safehaven-ai/safehaven-backend/internal/bootstrap"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/cache"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
)

func newCacheCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the catalog cache in Redis",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "warm",
		Short: "Reload every catalog dataset from the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := b.config()
			if err != nil {
				return err
			}
			rdb, closeRedis, err := b.redis(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeRedis()

			provider, closeSource, err := openCatalogSource(ctx, cfg, b)
			if err != nil {
				return err
			}
			defer closeSource()

			c := cache.New(provider, rdb, cfg.Catalog.CacheTTL, b.logger(cfg))
			if err := c.Warm(ctx); err != nil {
				return err
			}
			_, misses := c.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "warmed %d catalog entries from %s\n", misses, cfg.Catalog.Source)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "invalidate",
		Short: "Drop every cached catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := b.config()
			if err != nil {
				return err
			}
			rdb, closeRedis, err := b.redis(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeRedis()

			n, err := cache.New(nil, rdb, cfg.Catalog.CacheTTL, b.logger(cfg)).Invalidate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d catalog entries\n", n)
			return nil
		},
	})

	return cmd
}

// openCatalogSource opens the stores CATALOG_SOURCE reads from.
func openCatalogSource(ctx context.Context, cfg *config.Config, b *backends) (domain.Provider, func(), error) {
	var (
		db      *sql.DB
		mongoDB *mongo.Database
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Catalog.Source == "postgres" || (cfg.Catalog.Source == "mongo" && cfg.Database.DSN != "") {
		conn, closeDB, err := b.postgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		db = conn
		closers = append(closers, closeDB)
	}
	if cfg.Catalog.Source == "mongo" {
		conn, closeMongo, err := b.mongo(ctx, cfg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		mongoDB = conn
		closers = append(closers, closeMongo)
	}

	return bootstrap.NewCatalogProvider(cfg, db, mongoDB), closeAll, nil
}
