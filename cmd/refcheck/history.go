// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List saved verification runs",
	Long: `History lists runs saved with "check --save", most recent first. Given a
run ID, it prints that run's per-entry outcomes instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(cmd, "reports-dir", "report.reports_dir")
		store, err := report.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()

		if len(args) == 1 {
			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			outs, err := store.Outcomes(runID)
			if err != nil {
				return err
			}
			if len(outs) == 0 {
				fmt.Fprintf(out, "No entries for run %d.\n", runID)
				return nil
			}
			for _, o := range outs {
				doi := o.DOI
				if doi == "" {
					doi = "-"
				}
				fmt.Fprintf(out, "%3d  %-15s  %-30s  %s\n", o.Reference.Ordinal, o.Classification, doi, o.Reference.Text)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Runs(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No saved runs.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-20s  %-9s  %-9s  %-5s  %-8s  %-10s  %s\n",
			"ID", "Started", "Backend", "Tolerance", "Total", "Verified", "Mismatched", "No DOI")
		for _, r := range runs {
			fmt.Fprintf(out, "%-4d  %-20s  %-9s  %-9d  %-5d  %-8d  %-10d  %d\n",
				r.ID, r.Started.Format("2006-01-02 15:04:05"), r.Backend, r.Tolerance,
				r.Total, r.Verified, r.Mismatched, r.NoIdentifier)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("reports-dir", "reports", "directory for the run-history database")

	rootCmd.AddCommand(historyCmd)
}
