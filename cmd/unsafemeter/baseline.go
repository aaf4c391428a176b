package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"unsafemeter/internal/analyze"
	"unsafemeter/internal/baseline"
	"unsafemeter/internal/config"
	"unsafemeter/internal/crate"
	"unsafemeter/internal/logging"
)

var (
	baselineSaveFile   string
	baselineExportFile string
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Manage saved baseline runs",
	Long: `Manage the local history of analysis runs.

Saved runs live in a SQLite database under the crate's state directory
and can serve as the "before" side of a report diff.

Examples:
  unsafemeter baseline save
  unsafemeter baseline save --file=baseline.csv.zst
  unsafemeter baseline list
  unsafemeter baseline export 2f1c... --file=old.csv`,
}

var baselineSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Analyze the crate and store the result as a new baseline run",
	Args:  cobra.NoArgs,
	RunE:  runBaselineSave,
}

var baselineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored baseline runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBaselineList,
}

var baselineExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a stored run as a baseline CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBaselineExport,
}

func init() {
	baselineSaveCmd.Flags().StringVar(&baselineSaveFile, "file", "",
		"Also write the run as a CSV file (.zst for compressed)")
	baselineExportCmd.Flags().StringVar(&baselineExportFile, "file", "baseline.csv",
		"Destination file (.zst for compressed)")
	baselineCmd.AddCommand(baselineSaveCmd)
	baselineCmd.AddCommand(baselineListCmd)
	baselineCmd.AddCommand(baselineExportCmd)
	rootCmd.AddCommand(baselineCmd)
}

// openStore opens the run history under the crate's state directory.
func openStore(cfg *config.Config, logger *logging.Logger) (*baseline.Store, error) {
	dir := cfg.StateDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(crateRootFlag, dir)
	}
	return baseline.OpenStore(dir, logger)
}

func runBaselineSave(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	crateName, _ := crate.Name(crateRootFlag)

	runner := analyze.NewRunner(logger)
	report, err := runner.GenerateReport(context.Background(), crateRootFlag, effectiveExcludes(cfg))
	if err != nil {
		return fmt.Errorf("analyzing crate: %w", err)
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.SaveRun(crateName, report)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	fmt.Printf("Saved baseline run %s (%d files)\n", id, len(report.Files))

	if baselineSaveFile != "" {
		if err := baseline.SaveFile(baselineSaveFile, report); err != nil {
			return fmt.Errorf("writing baseline file: %w", err)
		}
		fmt.Printf("Wrote %s\n", baselineSaveFile)
	}
	return nil
}

func runBaselineList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No baseline runs stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tCRATE\tCREATED\tFILES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			run.ID, run.Crate, run.CreatedAt.Format("2006-01-02 15:04:05"), run.FileCount)
	}
	return w.Flush()
}

func runBaselineExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id := args[0]
	if id == "latest" {
		id, err = store.LatestRunID()
		if err != nil {
			return fmt.Errorf("resolving latest run: %w", err)
		}
	}

	report, err := store.LoadRun(id)
	if err != nil {
		return fmt.Errorf("loading run %s: %w", id, err)
	}

	if err := baseline.SaveFile(baselineExportFile, report); err != nil {
		return fmt.Errorf("writing baseline file: %w", err)
	}
	fmt.Printf("Exported run %s to %s (%d files)\n", id, baselineExportFile, len(report.Files))
	return nil
}
