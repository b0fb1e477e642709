package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all parked vehicles",
	Long: `Export all parked vehicles with duration and cost. Writes to stdout
unless --output is given; an existing directory receives
parking_data_YYYY-MM-DD.<format>.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file or directory instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return userError(fmt.Errorf("unknown format %q, use csv or json", exportFormat))
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		entries, err := a.registry.List(ctx)
		if err != nil {
			return storageError(err)
		}
		if len(entries) == 0 {
			return userError(errors.New("No data to export"))
		}

		write := func(w io.Writer) error {
			if exportFormat == "json" {
				return export.WriteJSON(w, entries)
			}
			return export.WriteCSV(w, entries, a.engine)
		}

		if exportOutput == "" {
			if err := write(cmd.OutOrStdout()); err != nil {
				return storageError(err)
			}
			return nil
		}

		path := exportPath(exportOutput, exportFormat, time.Now())
		f, err := os.Create(path)
		if err != nil {
			return storageError(fmt.Errorf("creating %s: %w", path, err))
		}
		if err := write(f); err != nil {
			_ = f.Close()
			return storageError(err)
		}
		if err := f.Close(); err != nil {
			return storageError(fmt.Errorf("writing %s: %w", path, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), path)
		return nil
	})
}

// exportPath returns output itself, or the suggested file name inside it when
// output is a directory.
func exportPath(output, format string, now time.Time) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, export.FileName(now, format))
	}
	return output
}
