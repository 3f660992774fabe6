package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"distress/internal/diag"
	"distress/internal/diagfmt"
	"distress/internal/driver"
	"distress/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file",
	Short: "Parse every packet and report all diagnostics",
	Long: `Check parses every line of a transcript independently, reports every
problem instead of stopping at the first one and verifies the pair layout`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	checkCmd.Flags().Bool("canonical", false, "print the canonical rendering of every packet")
	checkCmd.Flags().Bool("notes", true, "include diagnostic notes")
	checkCmd.Flags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	canonical, err := cmd.Flags().GetBool("canonical")
	if err != nil {
		return fmt.Errorf("failed to get canonical flag: %w", err)
	}
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}
	minSevStr, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSev, err := diag.ParseSeverity(minSevStr)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	file, err := driver.Load(fs, args[0])
	if err != nil {
		return err
	}
	res := driver.Check(cmd.Context(), file, maxDiag)

	shown := res.Bag.AtLeast(minSev)

	out := cmd.OutOrStdout()
	if canonical {
		for _, line := range res.Canonical() {
			fmt.Fprintln(out, line)
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.Pretty(cmd.ErrOrStderr(), shown, fs, diagfmt.PrettyOpts{
			Color:      useColor(cmd, os.Stderr),
			ShowNotes:  notes,
			ShowSource: true,
		})
	case "short":
		if short := diag.FormatShortDiagnostics(shown.Items(), fs, notes); short != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), short)
		}
	case "json":
		err = diagfmt.JSON(out, shown, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     notes,
		})
	default:
		return errInvalidFlag("format", format, "pretty|json|short")
	}
	if err != nil {
		return err
	}

	if !quiet(cmd) && format != "json" {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Summary())
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("%s: check failed", file.Path)
	}
	return nil
}
