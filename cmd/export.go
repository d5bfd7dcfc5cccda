package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/bracket-cli/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a completed run's bracket to a file",
	Long:  "Writes the stored bracket artifact of a completed run to an XLSX workbook or a JSON file, one row per game in play order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export")
		}
		if run.Result == nil || run.Result.Bracket == nil {
			return eris.Errorf("run %s has no bracket to export (status %s)", truncateID(run.ID), run.Status)
		}
		bracket := run.Result.Bracket

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		switch format {
		case "xlsx":
			if out == "" {
				out = fmt.Sprintf("bracket_%d.xlsx", bracket.Year)
			}
			if err := export.WriteXLSX(bracket, out); err != nil {
				return err
			}
		case "json":
			if out == "" {
				out = fmt.Sprintf("bracket_%d.json", bracket.Year)
			}
			f, err := os.Create(out)
			if err != nil {
				return eris.Wrapf(err, "export: create %s", out)
			}
			defer f.Close() //nolint:errcheck
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			if err := enc.Encode(bracket); err != nil {
				return eris.Wrap(err, "export: encode bracket")
			}
		default:
			return eris.Errorf("unsupported export format %q", format)
		}

		fmt.Fprintf(os.Stderr, "Exported %d-game bracket to %s\n", len(bracket.Rows), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "xlsx", "output format (xlsx, json)")
	exportCmd.Flags().String("out", "", "output path (default bracket_<year>.<format>)")
	rootCmd.AddCommand(exportCmd)
}
