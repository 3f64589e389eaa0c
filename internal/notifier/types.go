package notifier

import "time"

// Config controls delivery throttling.
type Config struct {
	// RatePerSec refills the token bucket; burst equals the rate so short
	// spikes (a verdict plus an error in adjacent cycles) don't stack.
	RatePerSec int

	// SendTimeout bounds each adapter call.
	SendTimeout time.Duration
}

// DeliveryEvent is emitted on the event bus as notify.sent / notify.failed.
// Keep it small; Data may be logged by subscribers.
type DeliveryEvent struct {
	ChatID int64     `json:"chat_id"`
	Chars  int       `json:"chars"`
	At     time.Time `json:"at"`
	Error  string    `json:"error,omitempty"`
}
