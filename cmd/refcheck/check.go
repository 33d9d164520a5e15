// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/internal/ingest"
	"github.com/pdiddy/refcheck/internal/lookup"
	"github.com/pdiddy/refcheck/internal/report"
	"github.com/pdiddy/refcheck/internal/segment"
	"github.com/pdiddy/refcheck/internal/verify"
	"github.com/pdiddy/refcheck/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Verify a reference list against a metadata service",
	Long: `Check reads a reference list from a file, a PDF, or stdin, splits it into
individual citations, and verifies each one: the DOI is looked up in the
metadata service and the service's canonical title is matched against the
citation text, optionally within an edit-distance tolerance.

Each entry is reported as it completes, followed by a summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		raw, fullDoc, err := readInput(args)
		if err != nil {
			return err
		}
		if fullDoc {
			// A whole document was flattened; cut to its reference section.
			raw = segment.ReferencesSection(raw)
		}

		refs := segment.Extract(raw)
		if len(refs) == 0 {
			fmt.Fprintln(os.Stderr, "No references detected. Check the input formatting.")
			return nil
		}

		backend, err := lookup.New(cfg.Lookup, loadedSecrets)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d references. Checking against %s...\n\n", len(refs), backend.Name())

		started := time.Now()
		opts := verify.Options{
			Tolerance:     cfg.Check.Tolerance,
			TitleFallback: cfg.Lookup.TitleFallback,
		}
		sum, runErr := verify.Run(cmd.Context(), refs, backend, opts, out)
		if sum == nil {
			return runErr
		}
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "warning: run interrupted after %d of %d entries: %v\n",
				len(sum.Outcomes), sum.Total, runErr)
		}

		fmt.Fprintln(out)
		format, _ := cmd.Flags().GetString("output")
		switch format {
		case "text":
			report.WriteText(sum, out)
		case "yaml":
			if err := report.WriteYAML(sum, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown output format %q (want text or yaml)", format)
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			store, err := report.Open(cfg.Report.ReportsDir)
			if err != nil {
				return err
			}
			defer store.Close()

			meta := report.RunMeta{Started: started, Tolerance: cfg.Check.Tolerance, Backend: backend.Name()}
			runID, err := store.Save(sum, meta)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSaved as run %d.\n", runID)
		}

		return runErr
	},
}

func init() {
	checkCmd.Flags().Int("tolerance", 0, "maximum edit distance for a fuzzy title match (0-20)")
	checkCmd.Flags().String("backend", "", "metadata service: crossref or openalex (default crossref)")
	checkCmd.Flags().String("mailto", "", "email sent with requests for polite-pool access")
	checkCmd.Flags().Duration("min-interval", time.Second, "minimum spacing between metadata calls")
	checkCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	checkCmd.Flags().Int("max-retries", 3, "retry attempts on HTTP 429")
	checkCmd.Flags().Bool("cache", false, "look up duplicate DOIs only once per run")
	checkCmd.Flags().Bool("title-fallback", false, "look up entries without a DOI by their text as a title query")
	checkCmd.Flags().Bool("save", false, "persist the run to the report history")
	checkCmd.Flags().String("reports-dir", "reports", "directory for the run-history database")
	checkCmd.Flags().String("output", "text", "summary format: text or yaml")

	rootCmd.AddCommand(checkCmd)
}

// readInput returns the raw text to check: from a file or PDF argument,
// or from stdin when no argument (or "-") is given. The second return
// value reports whether the input was a full document rather than a bare
// reference list.
func readInput(args []string) (string, bool, error) {
	if len(args) == 0 || args[0] == "-" {
		text, err := ingest.FromReader(os.Stdin)
		return text, false, err
	}
	return ingest.FromFile(args[0])
}

// buildConfig resolves settings from flags, config file, and defaults.
// A flag set on the command line wins over the config file.
func buildConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config

	cfg.Check.Tolerance = resolveInt(cmd, "tolerance", "check.tolerance")
	if cfg.Check.Tolerance < 0 || cfg.Check.Tolerance > 20 {
		return cfg, fmt.Errorf("tolerance %d out of range (0-20)", cfg.Check.Tolerance)
	}

	cfg.Lookup.Backend = types.LookupBackend(strings.ToLower(resolveString(cmd, "backend", "lookup.backend")))
	cfg.Lookup.Mailto = resolveString(cmd, "mailto", "lookup.mailto")
	cfg.Lookup.MinInterval = resolveDuration(cmd, "min-interval", "lookup.min_interval")
	cfg.Lookup.Timeout = resolveDuration(cmd, "timeout", "lookup.timeout")
	cfg.Lookup.MaxRetries = resolveInt(cmd, "max-retries", "lookup.max_retries")
	cfg.Lookup.CacheDOIs = resolveBool(cmd, "cache", "lookup.cache_dois")
	cfg.Lookup.TitleFallback = resolveBool(cmd, "title-fallback", "lookup.title_fallback")
	cfg.Lookup.UserAgent = "refcheck/" + version

	cfg.Report.ReportsDir = resolveString(cmd, "reports-dir", "report.reports_dir")

	return cfg, nil
}

func resolveString(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func resolveInt(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func resolveBool(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

func resolveDuration(cmd *cobra.Command, flag, key string) time.Duration {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	v, _ := cmd.Flags().GetDuration(flag)
	return v
}
