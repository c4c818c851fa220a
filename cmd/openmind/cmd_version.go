package main

import (
	"fmt"
	"io"

	"github.com/Harshitk-cp/openmind/internal/buildconfig"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd, buildconfig.VersionInfo(), func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "openmind version %s\n", buildconfig.String())
				return err
			})
		},
	}
}
