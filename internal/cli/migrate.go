package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/repository"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/static"
	"github.com/safehaven-ai/safehaven-backend/internal/storage/postgres"
)

func newMigrateCmd(b *backends) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := b.config()
			if err != nil {
				return err
			}
			db, closeDB, err := b.postgres(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newSeedCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled sample catalog into a store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "postgres",
		Short: "Replace the regulator tables with the sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := b.config()
			if err != nil {
				return err
			}
			db, closeDB, err := b.postgres(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repository.NewRegulatorRepository(db).Seed(cmd.Context(), static.New()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "regulator tables seeded")
			return nil
		},
	})

	var collection string
	mongoCmd := &cobra.Command{
		Use:   "mongo",
		Short: "Upsert the sample property reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := b.config()
			if err != nil {
				return err
			}
			db, closeDB, err := b.mongo(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := repository.NewReportRepository(db, collection).Seed(cmd.Context(), static.New())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d property reports seeded into %s\n", n, collection)
			return nil
		},
	}
	mongoCmd.Flags().StringVar(&collection, "collection", repository.ReportCollection, "target collection")
	cmd.AddCommand(mongoCmd)

	return cmd
}
