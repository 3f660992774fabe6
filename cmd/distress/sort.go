package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"distress/internal/driver"
	"distress/internal/packet"
	"distress/internal/source"
)

var sortCmd = &cobra.Command{
	Use:   "sort [flags] file",
	Short: "Print every packet and the dividers in order",
	Long: `Sort parses every packet of a transcript, adds the divider packets and
prints the whole list in the right order. Dividers are highlighted and their
1-based positions give the decoder key`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringArray("divider", nil, "divider packet (repeatable; default [[2]] and [[6]])")
	sortCmd.Flags().Int("width", 0, "truncate packets wider than this many columns (0 = no limit)")
}

func runSort(cmd *cobra.Command, args []string) error {
	var dividers []string
	if cmd.Flags().Changed("divider") {
		var err error
		if dividers, err = cmd.Flags().GetStringArray("divider"); err != nil {
			return err
		}
	} else {
		cfg, err := configFromCommand(cmd)
		if err != nil {
			return err
		}
		dividers = cfg.Config.Solve.Dividers
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	file, err := driver.Load(fs, args[0])
	if err != nil {
		return err
	}
	sorted, err := driver.SortFile(file, dividers)
	if err != nil {
		return fmt.Errorf("%s: %w", file.Path, err)
	}

	out := cmd.OutOrStdout()
	highlight := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.Faint)
	rankWidth := len(strconv.Itoa(len(sorted)))
	key := 1
	for i, sp := range sorted {
		text := packet.Format(sp.Value)
		if width > 0 && runewidth.StringWidth(text) > width {
			text = runewidth.Truncate(text, width, "...")
		}
		rank := fmt.Sprintf("%*d", rankWidth, i+1)
		if sp.Divider {
			key *= i + 1
			fmt.Fprintf(out, "%s  %s  %s\n", rank, highlight.Sprint(text), dim.Sprint("divider"))
			continue
		}
		fmt.Fprintf(out, "%s  %s  %s\n", rank, text, dim.Sprintf("line %d", sp.Line))
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "decoder key: %d\n", key)
	}
	return nil
}
