package poller

import (
	"context"
	"time"

	"homeworkbot/internal/practicum"
)

// StatusSource yields the raw endpoint payload for a cursor position.
// *practicum.Client is the production implementation.
type StatusSource interface {
	FetchStatuses(ctx context.Context, since int64) (*practicum.RawResponse, error)
}

// Notifier reports whether a text reached the chat. Implementations must
// absorb their own failures; the loop only looks at the bool.
type Notifier interface {
	Notify(ctx context.Context, text string) bool
}

// Config controls when cycles fire.
type Config struct {
	// Schedule accepts a Go duration ("10m"), an HH:MM interval ("00:50"),
	// or a cron expression ("*/10 * * * *", "@every 10m").
	Schedule string
	Timezone string
}

// CycleEvent is attached to poll.change / poll.idle / poll.fault bus events.
type CycleEvent struct {
	Cursor    int64     `json:"cursor"`
	Delivered bool      `json:"delivered,omitempty"`
	Fault     string    `json:"fault,omitempty"`
	Repeat    bool      `json:"repeat,omitempty"`
	At        time.Time `json:"at"`
}
