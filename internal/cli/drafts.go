package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/safehaven-ai/safehaven-backend/config"
	"github.com/safehaven-ai/safehaven-backend/internal/bootstrap"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/repository"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/service"
)

// wizardEnv is the wizard stack without submission sinks.
type wizardEnv struct {
	drafts *repository.DraftRepository
	wizard *service.WizardService
	close  func()
}

func openWizard(ctx context.Context, b *backends) (*wizardEnv, error) {
	cfg, err := b.config()
	if err != nil {
		return nil, err
	}
	rdb, closeRedis, err := b.redis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	env, err := newWizardEnv(ctx, cfg, rdb, b)
	if err != nil {
		closeRedis()
		return nil, err
	}
	env.close = closeRedis
	return env, nil
}

func newWizardEnv(ctx context.Context, cfg *config.Config, rdb *redis.Client, b *backends) (*wizardEnv, error) {
	previews, err := bootstrap.NewPreviewManager(ctx, cfg, rdb)
	if err != nil {
		return nil, err
	}
	drafts := repository.NewDraftRepository(rdb, cfg.Wizard.DraftTTL)
	wizard := service.NewWizardService(drafts, previews, nil, service.Options{
		MaxImagesPerIssue: cfg.Wizard.MaxImagesPerIssue,
	}, b.logger(cfg))
	return &wizardEnv{drafts: drafts, wizard: wizard}, nil
}

func newDraftsCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect or purge inspection drafts",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list <inspector>",
		Short: "List an inspector's drafts, most recently updated first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openWizard(cmd.Context(), b)
			if err != nil {
				return err
			}
			defer env.close()

			drafts, err := env.wizard.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(drafts)
			}
			printDrafts(cmd, drafts)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "purge <inspector>",
		Short: "Discard every draft of an inspector and release its previews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openWizard(cmd.Context(), b)
			if err != nil {
				return err
			}
			defer env.close()

			drafts, err := env.drafts.ListByInspector(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			purged := 0
			for _, d := range drafts {
				if err := env.wizard.Discard(cmd.Context(), args[0], d.ID); err != nil {
					return fmt.Errorf("discard %s: %w", d.ID, err)
				}
				purged++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d drafts of %s\n", purged, args[0])
			return nil
		},
	})

	return cmd
}

func printDrafts(cmd *cobra.Command, drafts []domain.Draft) {
	if len(drafts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no drafts")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTEP\tSTATUS\tPROPERTY\tISSUES\tUPDATED")
	for _, d := range drafts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			d.ID, domain.StepName(d.Step), d.Status, d.PropertyInfo.PropertyName,
			len(d.Issues), d.UpdatedAt.Format(time.RFC3339))
	}
	w.Flush()
}

func newSweepCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Release orphaned resources",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "previews",
		Short: "Release previews whose drafts have expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openWizard(cmd.Context(), b)
			if err != nil {
				return err
			}
			defer env.close()

			n, err := env.wizard.SweepPreviews(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "released %d previews\n", n)
			return nil
		},
	})
	return cmd
}
