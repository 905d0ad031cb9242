package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlsweep/internal/config"
	"github.com/nao1215/urlsweep/internal/history"
	"github.com/nao1215/urlsweep/internal/model"
	"github.com/nao1215/urlsweep/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [directory]",
		Short: "Show past check runs",
		Long: `History lists past check runs recorded in the local database.

Each check run is stored automatically (disable with --no-history). With
--diff, the two most recent runs are compared and links that broke or were
fixed between them are listed.

Examples:
  # List recent runs across all directories
  urlsweep history

  # List runs for one directory
  urlsweep history docs/

  # Show what broke or was fixed since the previous run
  urlsweep history --diff docs/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Bool("diff", false,
		"Compare the two most recent runs")
	cmd.Flags().IntP("limit", "n", 10,
		"Maximum number of runs to list")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) > 0 {
		dir = filepath.Clean(args[0])
	}
	diff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	db, err := history.Open(config.XDGDataDir(), history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet.")
		return nil
	}
	defer db.Close()

	if diff {
		return diffRuns(cmd, db, dir)
	}
	return listRuns(cmd, db, dir, limit)
}

// listRuns prints run metadata, most recent first.
func listRuns(cmd *cobra.Command, db *history.DB, dir string, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), dir)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet.")
		return nil
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	out := cmd.OutOrStdout()
	for _, run := range runs {
		status := "ok"
		if run.BrokenCount > 0 {
			status = fmt.Sprintf("%d broken", run.BrokenCount)
		}
		fmt.Fprintf(out, "%s  %-30s  %3d files  %4d URLs  %s\n",
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Directory,
			run.FilesScanned,
			run.UniqueURLs,
			status,
		)
	}
	return nil
}

// diffRuns compares the two most recent runs and lists links that broke or
// were fixed between them.
func diffRuns(cmd *cobra.Command, db *history.DB, dir string) error {
	payloads, err := db.LatestRuns(cmd.Context(), dir, 2)
	if err != nil {
		return err
	}
	if len(payloads) < 2 {
		fmt.Fprintln(cmd.OutOrStdout(), "Need at least two recorded runs to diff.")
		return nil
	}

	latest, previous := payloads[0], payloads[1]
	latestBroken := brokenSet(latest)
	previousBroken := brokenSet(previous)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Comparing runs of %s:\n", latest.Directory)
	fmt.Fprintf(out, "  previous: %s (%d broken)\n", previous.DateChecked.Format("2006-01-02 15:04:05"), len(previous.Broken))
	fmt.Fprintf(out, "  latest:   %s (%d broken)\n\n", latest.DateChecked.Format("2006-01-02 15:04:05"), len(latest.Broken))

	newlyBroken := subtract(latest.Broken, previousBroken)
	fixed := subtract(previous.Broken, latestBroken)

	if len(newlyBroken) == 0 && len(fixed) == 0 {
		fmt.Fprintln(out, "No changes between the last two runs.")
		return nil
	}

	if len(newlyBroken) > 0 {
		fmt.Fprintf(out, "Newly broken (%d):\n", len(newlyBroken))
		for _, link := range newlyBroken {
			fmt.Fprintf(out, "  ✗ %s (%s)\n", link.URL, link.Detail)
		}
		fmt.Fprintln(out)
	}

	if len(fixed) > 0 {
		fmt.Fprintf(out, "Fixed (%d):\n", len(fixed))
		for _, link := range fixed {
			fmt.Fprintf(out, "  ✓ %s\n", link.URL)
		}
	}

	return nil
}

// brokenSet indexes a run's broken links by URL.
func brokenSet(p *report.Payload) map[string]bool {
	set := make(map[string]bool, len(p.Broken))
	for _, link := range p.Broken {
		set[link.URL] = true
	}
	return set
}

// subtract returns the links whose URLs are not in the given set,
// preserving order.
func subtract(links []model.BrokenLink, set map[string]bool) []model.BrokenLink {
	var out []model.BrokenLink
	for _, link := range links {
		if !set[link.URL] {
			out = append(out, link)
		}
	}
	return out
}
