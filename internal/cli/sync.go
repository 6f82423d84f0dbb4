package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/quotebook/internal/config"
	syncrepo "github.com/mrlokans/quotebook/internal/database/sync"
	"github.com/mrlokans/quotebook/internal/remote"
	"github.com/mrlokans/quotebook/internal/syncer"
)

// SyncCommand runs a single merge cycle against the remote quote source.
type SyncCommand struct {
	DatabasePath string
	BaseURL      string
	Category     string
	PageSize     int
	Timeout      time.Duration
}

func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

func (cmd *SyncCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.BaseURL, "remote", config.DefaultRemoteBaseURL, "Base URL of the remote quote source")
	fs.StringVar(&cmd.Category, "category", config.DefaultSyncCategory, "Category assigned to remote quotes")
	fs.IntVar(&cmd.PageSize, "limit", config.DefaultSyncPageSize, "Number of remote records to fetch")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Timeout for the whole cycle")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch one page of remote quotes and append the ones whose text is not yet known.\n")
		fmt.Fprintf(os.Stderr, "Local quotes are never changed or removed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.PageSize <= 0 {
		return fmt.Errorf("-limit must be positive")
	}
	if strings.TrimSpace(cmd.Category) == "" {
		return fmt.Errorf("-category must not be empty")
	}

	return nil
}

func (cmd *SyncCommand) Run() error {
	stack, err := openLocalStack(cmd.DatabasePath, "")
	if err != nil {
		return err
	}
	defer stack.Close()

	client := remote.NewClient(cmd.BaseURL, cmd.Category)
	service := syncer.NewService(stack.store, client, stack.snapshot, stack.view, syncer.Options{
		PageSize: cmd.PageSize,
		Auditor:  stack.audit,
		Progress: syncrepo.NewRepository(stack.db.DB),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	fmt.Printf("Syncing with %s into category %q...\n", cmd.BaseURL, client.Category())
	result, err := service.Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Fetched %d remote quotes, %d new\n", result.Fetched, len(result.Added))
	for _, q := range result.Added {
		fmt.Printf("  + %q [%s]\n", q.Text, q.Category)
	}
	return nil
}
