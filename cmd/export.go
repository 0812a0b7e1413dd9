package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evoroute/config"
	corearchive "github.com/kilianp07/evoroute/core/archive"
	infraarchive "github.com/kilianp07/evoroute/infra/archive"
	"github.com/kilianp07/evoroute/pkg/export"
)

var (
	exportFormat string
	exportOut    string
	exportRun    string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived best solutions",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, defaults to stdout")
	exportCmd.Flags().StringVar(&exportRun, "run", "", "filter by run id")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "keep only the most recent records")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := infraarchive.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("archive store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "store close: %v\n", err)
		}
	}()
	records, err := store.Query(cmd.Context(), corearchive.Query{RunID: exportRun, Limit: exportLimit})
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if exportOut == "" {
		return writeRecords(cmd.OutOrStdout(), records)
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := writeRecords(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeRecords(w io.Writer, records []corearchive.Record) error {
	switch exportFormat {
	case "json":
		return export.WriteJSON(w, records)
	case "csv":
		return export.WriteCSV(w, records)
	default:
		return fmt.Errorf("unknown format %s", exportFormat)
	}
}
