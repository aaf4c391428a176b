package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unsafemeter/internal/candidates"
)

var candidatesOutput string

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Suggest functions that may qualify for a safer signature",
	Long: `Scan the crate for functions matching simple refactoring heuristics.

Each candidate is advisory: the heuristics look only at the shape of the
code, so every suggestion needs human review.

Examples:
  unsafemeter candidates safe
  unsafemeter candidates bool --output=candidates.txt`,
}

var candidatesSafeCmd = &cobra.Command{
	Use:   "safe",
	Short: "Find unsafe functions without raw pointer parameters",
	Args:  cobra.NoArgs,
	RunE:  runCandidatesSafe,
}

var candidatesBoolCmd = &cobra.Command{
	Use:   "bool",
	Short: "Find i32 functions that only ever yield literal 0 or 1",
	Args:  cobra.NoArgs,
	RunE:  runCandidatesBool,
}

func init() {
	candidatesCmd.PersistentFlags().StringVarP(&candidatesOutput, "output", "o", "",
		"Write the candidate list to a file instead of stdout")
	candidatesCmd.AddCommand(candidatesSafeCmd)
	candidatesCmd.AddCommand(candidatesBoolCmd)
	rootCmd.AddCommand(candidatesCmd)
}

const safeDisclaimer = `These candidates are chosen using a very simple heuristic.
If a function is unsafe and has no raw pointers as parameters, it may be a good candidate for making safe.
Note that there may be other reasons why these functions shouldn't be converted.
`

const boolDisclaimer = `These candidates are chosen using a very simple heuristic.
If a function returns i32 and all return statements return literal 0 or 1 values, it may be a good candidate for converting to return bool.
Note that there may be other reasons why these functions shouldn't be converted.
`

func runCandidatesSafe(cmd *cobra.Command, args []string) error {
	return runCandidates(candidates.IsSafeCandidate, safeDisclaimer,
		"No candidates found for functions to convert from unsafe to safe using a simple heuristic.")
}

func runCandidatesBool(cmd *cobra.Command, args []string) error {
	return runCandidates(candidates.IsBoolCandidate, boolDisclaimer,
		"No candidates found for functions to convert from i32 to bool using a simple heuristic.")
}

func runCandidates(detect candidates.Detector, disclaimer, emptyMessage string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}

	finder := candidates.NewFinder(logger, detect)
	files, err := finder.Find(context.Background(), crateRootFlag, effectiveExcludes(cfg))
	if err != nil {
		return fmt.Errorf("scanning crate: %w", err)
	}

	out := io.Writer(os.Stdout)
	if candidatesOutput != "" {
		f, err := os.Create(candidatesOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if len(files) == 0 {
		_, err := fmt.Fprintln(out, emptyMessage)
		return err
	}

	if _, err := fmt.Fprintln(out, disclaimer); err != nil {
		return err
	}

	total := 0
	for _, fs := range files {
		if _, err := fmt.Fprintf(out, "%s:\n", fs.Filename); err != nil {
			return err
		}
		for _, c := range fs.Candidates {
			_, err := fmt.Fprintf(out, "\t%s @ %s:%d\n", c.FnName, fs.Filename, c.Line)
			if err != nil {
				return err
			}
		}
		total += len(fs.Candidates)
	}

	_, err = fmt.Fprintf(out, "\nFound %d candidates over %d files (more files total)\n",
		total, len(files))
	return err
}
