package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"distress/internal/observ"
)

func timingsEnabled(cmd *cobra.Command) bool {
	on, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return on
}

// printTimings writes the phase report of one input.
func printTimings(out io.Writer, label string, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "%s timings:\n", label)
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-8s %9.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(out, "  // %s", p.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %-8s %9.3f ms\n", "total", report.TotalMS)
}
