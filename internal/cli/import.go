package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/quotebook/internal/config"
	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/utils"
)

// ImportCommand appends quotes from a JSON file to the local collection.
type ImportCommand struct {
	FilePath     string
	DatabasePath string
	AuditDir     string
	DryRun       bool
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a JSON file with an array of {text, category} objects (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.AuditDir, "audit-dir", "", "Directory to archive the raw import payload in (optional)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate the file without changing the collection")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Append quotes from a JSON file to the local collection.\n")
		fmt.Fprintf(os.Stderr, "Quotes are appended as-is, duplicates included.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file quotes.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	fmt.Println("Quote Import")
	fmt.Println("============")

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	parsed, payload, err := importers.ReadQuotes(file)
	if err != nil {
		return fmt.Errorf("invalid JSON file format: %w", err)
	}

	fmt.Printf("File: %s\n", filepath.Base(cmd.FilePath))
	fmt.Printf("Found %d quotes\n", len(parsed))

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes made")
		return nil
	}

	stack, err := openLocalStack(cmd.DatabasePath, cmd.AuditDir)
	if err != nil {
		return err
	}
	defer stack.Close()

	result, err := stack.quotes.Import(payload, "cli:"+utils.SanitizeFilename(cmd.FilePath, "file"))
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d quotes, collection now holds %d\n", result.Imported, result.Total)
	if result.Archive != "" {
		fmt.Printf("Payload archived at %s\n", result.Archive)
	}
	return nil
}
