package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"distress/internal/diagfmt"
	"distress/internal/driver"
	"distress/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Tokenize a packet transcript",
	Long:  `Tokenize breaks a packet transcript down into brackets, commas and integers`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return errInvalidFlag("format", format, "pretty|json")
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
	result := driver.Tokenize(file, maxDiag)

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		opts := diagfmt.PrettyOpts{
			Color:      useColor(cmd, os.Stderr),
			ShowSource: true,
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, fs, opts); err != nil {
			return err
		}
	}

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, fs)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: invalid tokens", file.Path)
	}
	return nil
}
