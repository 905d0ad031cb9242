package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/urlsweep/internal/checker"
	"github.com/nao1215/urlsweep/internal/config"
	"github.com/nao1215/urlsweep/internal/extract"
	"github.com/nao1215/urlsweep/internal/history"
	"github.com/nao1215/urlsweep/internal/log"
	"github.com/nao1215/urlsweep/internal/model"
	"github.com/nao1215/urlsweep/internal/pipeline"
	"github.com/nao1215/urlsweep/internal/report"
	"github.com/nao1215/urlsweep/internal/scanner"
)

// addCheckFlags registers the check flags on the root command.
func addCheckFlags(cmd *cobra.Command) {
	// Check behavior flags
	cmd.Flags().StringP("replacements", "r", "",
		`JSON object of URL substring replacements, e.g. '{"old.host":"new.host"}' (applied in key order)`)
	cmd.Flags().IntP("timeout", "t", int(config.DefaultTimeout/time.Second),
		"Request timeout in seconds for each URL check")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent URL checks")
	cmd.Flags().BoolP("verbose", "v", false,
		"Print every checked URL and enable debug logging")

	// Skip list flags (unioned with environment and config file entries)
	cmd.Flags().String("skip-domains", "",
		"Comma-separated domain substrings to skip (case-insensitive)")
	cmd.Flags().String("skip-urls", "",
		"Comma-separated URL substrings to skip")
	cmd.Flags().String("skip-files", "",
		"Comma-separated file basenames to exclude from scanning")

	// Extension pattern flags (replace defaults wholesale)
	cmd.Flags().String("markdown-patterns", "",
		"Comma-separated suffixes treated as markdown (default .md,.markdown)")
	cmd.Flags().String("html-patterns", "",
		"Comma-separated suffixes treated as HTML (default .html,.htm)")
	cmd.Flags().String("file-patterns", "",
		"Comma-separated suffixes scanned as generic files")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .urlsweep.yml in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")
}

// runCheckCmd executes the check.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
}

// buildConfig resolves the final configuration from the config file, the
// environment, and the command-line flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var flags config.Flags
	var err error

	if len(args) > 0 {
		flags.Directory = args[0]
	}

	if flags.Replacements, err = cmd.Flags().GetString("replacements"); err != nil {
		return nil, err
	}

	timeoutSec, err := cmd.Flags().GetInt("timeout")
	if err != nil {
		return nil, err
	}
	flags.Timeout = time.Duration(timeoutSec) * time.Second
	flags.TimeoutChanged = cmd.Flags().Changed("timeout")

	if flags.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
		return nil, err
	}
	flags.WorkersChanged = cmd.Flags().Changed("workers")

	if flags.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}

	if flags.SkipDomains, err = cmd.Flags().GetString("skip-domains"); err != nil {
		return nil, err
	}
	if flags.SkipURLs, err = cmd.Flags().GetString("skip-urls"); err != nil {
		return nil, err
	}
	if flags.SkipFiles, err = cmd.Flags().GetString("skip-files"); err != nil {
		return nil, err
	}

	if flags.MarkdownPatterns, err = cmd.Flags().GetString("markdown-patterns"); err != nil {
		return nil, err
	}
	if flags.HTMLPatterns, err = cmd.Flags().GetString("html-patterns"); err != nil {
		return nil, err
	}
	if flags.FilePatterns, err = cmd.Flags().GetString("file-patterns"); err != nil {
		return nil, err
	}

	if flags.JSON, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if flags.Markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if flags.Output, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	file, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(file, config.EnvSnapshot(), flags)
	if err != nil {
		return nil, err
	}
	// Clean the path so "docs" and "docs/" are the same run history key.
	cfg.Directory = filepath.Clean(cfg.Directory)

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.HistoryDir = ""
	}

	return cfg, nil
}

// loadConfigFile locates and loads the YAML config file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise a missing file just means no file-level configuration.
func loadConfigFile(cmd *cobra.Command) (*config.File, error) {
	explicitPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	path := config.FindConfigFile(explicitPath)
	if path == "" {
		if explicitPath != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicitPath)
		}
		return nil, nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return file, nil
}

// setupLogger creates a structured logger with credential masking.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewRedactLogger(os.Stderr, verbose)
}

// runCheck executes the full scan, extract, check, and report sequence.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Structured report formats own stdout; suppress the progress chatter.
	quiet := (cfg.JSONReport || cfg.MarkdownReport) && cfg.ReportFile == ""

	logger.Info("starting check",
		"directory", cfg.Directory,
		"workers", cfg.Workers,
		"timeout", cfg.Timeout,
	)

	s := scanner.New(cfg.Directory,
		scanner.WithSkipFiles(cfg.SkipFiles),
		scanner.WithPatterns(cfg.MarkdownPatterns, cfg.HTMLPatterns, cfg.FilePatterns),
		scanner.WithLogger(logger),
	)
	filter := extract.NewFilter(cfg.SkipDomains, cfg.SkipURLs, cfg.Replacements)

	client := &http.Client{Timeout: cfg.Timeout}
	chk := checker.New(client,
		checker.WithWorkers(cfg.Workers),
		checker.WithUserAgent(cfg.UserAgent),
		checker.WithProgress(progressPrinter(cfg.Verbose, quiet)),
		checker.WithLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewScanStep(s, quiet),
		pipeline.NewExtractStep(filter, quiet, cfg.Workers),
		pipeline.NewCheckStep(chk),
	)

	run := model.NewReport(cfg.Directory)
	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	if !cfg.Verbose && !quiet && run.UniqueURLs > 0 {
		fmt.Println() // terminate the carriage-return progress line
	}

	if err := outputReport(cfg, run); err != nil {
		return err
	}

	saveRun(ctx, cfg, run, logger)

	if run.HasBroken() {
		return errBrokenLinks
	}
	return nil
}

// progressPrinter returns the per-check progress callback.
// Verbose mode prints one line per URL; the default prints a running counter
// on a single rewritten line. Quiet mode prints nothing.
func progressPrinter(verbose, quiet bool) checker.ProgressFunc {
	return func(checked, total int, result model.CheckResult) {
		if quiet {
			return
		}
		if verbose {
			if result.OK {
				fmt.Printf("✓ %s\n", result.URL)
			} else {
				fmt.Printf("✗ %s (%s)\n", result.URL, result.Detail)
			}
			return
		}
		fmt.Printf("\rChecking URLs... %d/%d", checked, total)
	}
}

// outputReport writes the report in the requested format to stdout or,
// with --output, to a file.
func outputReport(cfg *config.Config, run *model.Report) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// 0600: reports can reveal internal hostnames and paths.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(run)
	return err
}

// saveRun records the run in the history database. Persistence failures are
// warnings: the check result must not depend on local storage health.
func saveRun(ctx context.Context, cfg *config.Config, run *model.Report, logger *slog.Logger) {
	if cfg.HistoryDir == "" {
		return
	}

	db, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
	if err != nil {
		logger.Warn("could not open history database", "dir", cfg.HistoryDir, "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveRun(ctx, report.NewPayload(run)); err != nil {
		logger.Warn("could not save run to history", "error", err)
	}
}
