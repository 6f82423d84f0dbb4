package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/exporters"
)

// ExportCommand writes the local collection to a file.
type ExportCommand struct {
	OutputDir    string
	Format       string
	DatabasePath string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.OutputDir, "output", ".", "Directory to write the export file to")
	fs.StringVar(&cmd.Format, "format", exporters.FormatJSON, "Export format: json or markdown")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every quote in the local collection.\n")
		fmt.Fprintf(os.Stderr, "JSON exports are written to quotes.json and can be imported again.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := exporters.ForFormat(cmd.Format); err != nil {
		return err
	}

	return nil
}

func (cmd *ExportCommand) Run() error {
	stack, err := openLocalStack(cmd.DatabasePath, "")
	if err != nil {
		return err
	}
	defer stack.Close()

	if err := os.MkdirAll(cmd.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exporter, err := exporters.ForFormat(cmd.Format)
	if err != nil {
		return err
	}
	outPath := filepath.Join(cmd.OutputDir, exporter.FileName())

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	_, result, err := stack.quotes.Export(file, cmd.Format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported %d quotes in %d categories to %s\n", result.QuotesProcessed, result.Categories, outPath)
	return nil
}
