package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotebook/internal/entities"
)

// QuotePusher performs one push attempt.
type QuotePusher interface {
	PushNow(ctx context.Context, q entities.Quote) error
}

// PushQuoteTask sends one locally added quote to the remote quote source.
type PushQuoteTask struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Config returns the queue configuration for push tasks. Pushes are
// best-effort, so a failed attempt is never retried.
func (t PushQuoteTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "push_quote",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PushQuoteProcessor creates a processor function for PushQuoteTask.
func PushQuoteProcessor(pusher QuotePusher) backlite.QueueProcessor[PushQuoteTask] {
	return func(ctx context.Context, task PushQuoteTask) error {
		if pusher == nil {
			return fmt.Errorf("quote pusher not configured")
		}

		q := entities.Quote{Text: task.Text, Category: task.Category}
		if err := pusher.PushNow(ctx, q); err != nil {
			return err
		}

		log.Printf("[TASK] Pushed quote in category %q", task.Category)
		return nil
	}
}

// NewPushQuoteQueue creates a backlite queue for push tasks.
func NewPushQuoteQueue(pusher QuotePusher) backlite.Queue {
	return backlite.NewQueue(PushQuoteProcessor(pusher))
}
