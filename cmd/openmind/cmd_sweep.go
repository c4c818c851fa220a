package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/Harshitk-cp/openmind/internal/service"
	"github.com/Harshitk-cp/openmind/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// defaultHistoryPath is ~/.openmind/sweeps.db.
func defaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".openmind", "sweeps.db"), nil
}

func openHistory(cmd *cobra.Command) (*store.SQLiteSweepStore, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		var err error
		if path, err = defaultHistoryPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return store.OpenSQLiteSweepStore(path)
}

// loadSweepFile reads a SweepRequest from a YAML (or JSON) file.
func loadSweepFile(path string) (domain.SweepRequest, error) {
	var req domain.SweepRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read sweep file: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse sweep file: %w", err)
	}
	return req, nil
}

func sweepRequestFromFlags(cmd *cobra.Command, args []string) (domain.SweepRequest, error) {
	var req domain.SweepRequest
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		var err error
		if req, err = loadSweepFile(file); err != nil {
			return req, err
		}
	}

	// Flags override the file.
	if len(args) > 0 {
		req.Kind = domain.SweepKind(args[0])
	}
	f := cmd.Flags()
	if f.Changed("rows") {
		req.Rows, _ = f.GetFloat64Slice("rows")
	}
	if f.Changed("columns") {
		req.Columns, _ = f.GetFloat64Slice("columns")
	}
	if f.Changed("degree") {
		v, _ := f.GetInt("degree")
		req.DegreeOpenMindedness = &v
	}
	if f.Changed("advantage") {
		req.Advantage, _ = f.GetFloat64("advantage")
	}
	if f.Changed("source") {
		v, _ := f.GetFloat64("source")
		req.SourceEvaluativeCapacity = &v
	}
	if f.Changed("content") {
		v, _ := f.GetFloat64("content")
		req.ContentEvaluativeCapacity = &v
	}
	if f.Changed("precision") {
		v, _ := f.GetInt("precision")
		req.Precision = &v
	}

	if req.Kind == "" {
		return req, fmt.Errorf("sweep kind is required (argument or kind in --file)")
	}
	return req, nil
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [kind]",
		Short: "Evaluate a grid of parameter combinations",
		Long: `Evaluates one of the sweep kinds over a grid of rows and columns:

  benefit_source    benefit by competence and source evaluative capacity
  benefit_content   benefit by competence and content evaluative capacity
  tipping_content   tipping content capacity by competence and source capacity
  added_content     value added by content evaluation by trustee accuracy
  source_potential  tipping source capacity by associate and opposer competence
  accuracy_curve    benefit by competence and degree of open-mindedness

Omitted axes take the defaults of the kind. Harmful benefits are marked
with "*". With --save the run is recorded in the local history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := sweepRequestFromFlags(cmd, args)
			if err != nil {
				return err
			}

			save, _ := cmd.Flags().GetBool("save")
			var history domain.SweepStore
			if save {
				st, err := openHistory(cmd)
				if err != nil {
					return err
				}
				defer st.Close()
				history = st
			}

			svc := service.NewSweepService(history, newLogger(cmd))
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				svc.SetWorkers(workers)
			}

			var run *domain.SweepRun
			if save {
				run, err = svc.Run(cmd.Context(), req)
			} else {
				run, err = svc.Compute(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			return render(cmd, run, func(w io.Writer) error {
				if err := writeGrid(w, run); err != nil {
					return err
				}
				if save {
					fmt.Fprintf(w, "saved as %s\n", run.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringP("file", "f", "", "Read the sweep request from a YAML file")
	cmd.Flags().Float64Slice("rows", nil, "Row axis values")
	cmd.Flags().Float64Slice("columns", nil, "Column axis values")
	cmd.Flags().IntP("degree", "n", 0, "Degree of open-mindedness (default 4)")
	cmd.Flags().Float64("advantage", 0, "Associate competence minus opposer competence")
	cmd.Flags().Float64("source", 0, "Fixed source evaluative capacity (default 0.5)")
	cmd.Flags().Float64("content", 0, "Fixed content evaluative capacity (default 0.5)")
	cmd.Flags().Int("precision", 2, "Decimals to round values to, negative for none")
	cmd.Flags().Int("workers", 0, "Concurrent cell evaluations (default GOMAXPROCS)")
	cmd.Flags().Bool("save", false, "Record the run in the local history")
	cmd.Flags().String("db", "", "History database path (default ~/.openmind/sweeps.db)")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved sweep runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := service.NewSweepService(st, newLogger(cmd)).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return render(cmd, runs, func(w io.Writer) error {
				if len(runs) == 0 {
					_, err := fmt.Fprintln(w, "No saved sweeps.")
					return err
				}
				for _, r := range runs {
					fmt.Fprintf(w, "%s  %-16s  %dx%d  %s\n",
						r.ID, r.Kind, r.RowCount, r.ColumnCount, r.CreatedAt.Local().Format(time.DateTime))
				}
				return nil
			})
		},
	}

	cmd.PersistentFlags().String("db", "", "History database path (default ~/.openmind/sweeps.db)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	cmd.AddCommand(newHistoryShowCmd(), newHistoryPruneCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved sweep run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sweep id %q", args[0])
			}

			st, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := service.NewSweepService(st, newLogger(cmd)).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd, run, func(w io.Writer) error {
				return writeGrid(w, run)
			})
		},
	}
}

func newHistoryPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete saved sweep runs older than a duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			olderThan, _ := cmd.Flags().GetDuration("older-than")
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			st, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := service.NewPrunerService(st, olderThan, newLogger(cmd)).RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, map[string]int64{"deleted": deleted}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Deleted %d sweep runs.\n", deleted)
				return err
			})
		},
	}

	cmd.Flags().Duration("older-than", 30*24*time.Hour, "Age beyond which runs are deleted")
	return cmd
}
