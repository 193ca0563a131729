package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/safehaven-ai/safehaven-backend/internal/inspection/repository"
)

func newSubmissionsCmd(b *backends) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Inspect submitted inspections",
	}

	var (
		limit  int
		asJSON bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent submissions stored in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			cfg, err := b.config()
			if err != nil {
				return err
			}
			db, closeDB, err := b.postgres(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			subs, err := repository.NewSubmissionRepository(db).ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(subs)
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no submissions")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDRAFT\tPROPERTY\tADDRESS\tISSUES\tSUBMITTED")
			for _, s := range subs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					s.ID, s.DraftID, s.PropertyName, s.Address, s.IssueCount, s.SubmittedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.AddCommand(listCmd)

	return cmd
}
