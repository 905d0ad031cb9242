// Package main provides the entry point for the urlsweep CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errBrokenLinks signals that the check completed and found broken links.
// The report has already been printed when this is returned; Execute turns
// it into exit code 1 without printing a second message.
var errBrokenLinks = errors.New("broken links found")

// NewRootCmd creates the root command. Checking is the root command itself
// rather than a subcommand: `urlsweep docs/` is the common case.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlsweep [directory]",
		Short: "Check documentation trees for broken links",
		Long: `urlsweep scans a directory tree for markdown and HTML files, extracts
every http(s) URL, and verifies each unique URL over a bounded worker pool.

Broken links are reported together with the files that reference them.
The exit code is 0 when every link resolves and 1 when any link is broken,
so urlsweep can gate CI pipelines.

Configuration merges three sources with rising priority: the .urlsweep.yml
file, environment variables (URL_REPLACEMENTS, SKIP_DOMAINS, SKIP_URLS,
SKIP_FILES, MARKDOWN_PATTERNS, HTML_PATTERNS, FILE_PATTERNS), and flags.
Skip lists are unioned across sources; replacement mappings merge key-wise;
pattern lists are replaced wholesale by the highest-priority source.

Examples:
  # Check the current directory
  urlsweep

  # Check a documentation tree verbosely
  urlsweep -v docs/

  # Rewrite staging URLs to production before checking
  urlsweep --replacements '{"staging.example.net":"example.net"}' docs/

  # Skip internal hosts and emit a JSON report
  urlsweep --skip-domains internal.example --json docs/`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheckCmd,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addCheckFlags(cmd)

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errBrokenLinks) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
