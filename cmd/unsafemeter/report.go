package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unsafemeter/internal/analyze"
	"unsafemeter/internal/baseline"
	"unsafemeter/internal/config"
	"unsafemeter/internal/crate"
	"unsafemeter/internal/logging"
	"unsafemeter/internal/render"
	"unsafemeter/internal/stats"
)

var (
	reportFormat      string
	reportBaseline    string
	reportBaselineRun string
	reportOutput      string
	reportNoColor     bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze a crate and print its unsafe code report",
	Long: `Analyze every Rust file of a crate and report unsafe code metrics
per file and in total.

With --baseline or --baseline-run the report also includes a diff against
the given earlier report, listing changed, added, and removed files.

Examples:
  unsafemeter report
  unsafemeter report --format=csv --output=current.csv
  unsafemeter report --baseline=old.csv
  unsafemeter report --baseline-run=latest --format=pr-comment`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "",
		"Output format: markdown, csv, html, yaml, pr-comment (default from config)")
	reportCmd.Flags().StringVar(&reportBaseline, "baseline", "",
		"Baseline CSV file to diff against (.zst for compressed)")
	reportCmd.Flags().StringVar(&reportBaselineRun, "baseline-run", "",
		"Stored run id to diff against, or 'latest'")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"Write the report to a file instead of stdout")
	reportCmd.Flags().BoolVar(&reportNoColor, "no-color", false,
		"Disable ANSI colors in terminal output")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	format := reportFormat
	if format == "" {
		format = cfg.Format
	}

	crateName, hasManifest := crate.Name(crateRootFlag)
	if !hasManifest {
		return fmt.Errorf("%s does not look like a crate: %w", crateRootFlag, crate.ErrNoManifest)
	}

	ctx := context.Background()
	runner := analyze.NewRunner(logger)
	report, err := runner.GenerateReport(ctx, crateRootFlag, effectiveExcludes(cfg))
	if err != nil {
		return fmt.Errorf("analyzing crate: %w", err)
	}

	diff, err := loadDiff(cfg, logger, report)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	toTerminal := reportOutput == ""
	if !toTerminal {
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	// Color only applies to terminal-bound markdown output.
	style := render.Style{Color: toTerminal && !reportNoColor}

	switch format {
	case "markdown":
		md := render.Markdown{Style: style, Crate: crateName}
		return md.Render(out, report, diff)
	case "csv":
		return baseline.Write(out, report)
	case "html":
		h := render.HTML{Crate: crateName}
		return h.Render(out, report, diff)
	case "yaml":
		return render.YAML{}.Render(out, report, diff)
	case "pr-comment":
		pc := render.PRComment{Crate: crateName}
		return pc.Render(out, report, diff)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// loadDiff resolves the baseline from --baseline or --baseline-run and
// diffs the current report against it. Returns nil when no baseline was
// requested.
func loadDiff(cfg *config.Config, logger *logging.Logger, report *stats.Report) (*stats.DiffReport, error) {
	if reportBaseline == "" && reportBaselineRun == "" {
		return nil, nil
	}
	if reportBaseline != "" && reportBaselineRun != "" {
		return nil, errors.New("--baseline and --baseline-run are mutually exclusive")
	}

	var before *stats.Report
	if reportBaseline != "" {
		var err error
		before, err = baseline.LoadFile(reportBaseline)
		if err != nil {
			return nil, fmt.Errorf("loading baseline: %w", err)
		}
	} else {
		store, err := openStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()

		id := reportBaselineRun
		if id == "latest" {
			id, err = store.LatestRunID()
			if err != nil {
				return nil, fmt.Errorf("resolving latest run: %w", err)
			}
		}
		before, err = store.LoadRun(id)
		if err != nil {
			return nil, fmt.Errorf("loading run %s: %w", id, err)
		}
	}

	return stats.Diff(report, before), nil
}
