package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// render writes v as JSON or YAML when requested, otherwise calls text.
func render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	out := cmd.OutOrStdout()
	jsonOut, _ := cmd.Flags().GetBool("json")
	yamlOut, _ := cmd.Flags().GetBool("yaml")

	switch {
	case jsonOut && yamlOut:
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	case jsonOut:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case yamlOut:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(out)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeGrid prints a sweep as a table. Harmful cells are suffixed with "*"
// and failed cells print as "-".
func writeGrid(w io.Writer, run *domain.SweepRun) error {
	spec, _ := domain.GetSweepKindSpec(run.Kind)

	fmt.Fprintf(w, "%s: %s by %s\n", spec.ValueLabel, spec.RowLabel, spec.ColumnLabel)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, c := range run.Columns {
		fmt.Fprintf(tw, "%s\t", formatFloat(c))
	}
	fmt.Fprintln(tw)

	failed := 0
	for i, row := range run.Cells {
		fmt.Fprintf(tw, "%s\t", formatFloat(run.Rows[i]))
		for _, c := range row {
			switch {
			case c.Value == nil:
				failed++
				fmt.Fprint(tw, "-\t")
			case c.Harmful:
				fmt.Fprintf(tw, "%s*\t", formatFloat(*c.Value))
			default:
				fmt.Fprintf(tw, "%s\t", formatFloat(*c.Value))
			}
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		fmt.Fprintf(w, "%d cells could not be evaluated\n", failed)
	}
	return nil
}
