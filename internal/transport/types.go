package transport

import "context"

// ChatTarget identifies the chat notifications are delivered to. This bot
// serves a single student chat, so there is no thread or topic routing.
type ChatTarget struct {
	ChatID int64
}

// MessageRef points at a message the adapter has sent.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

type SendOptions struct {
	ParseMode      string
	DisablePreview bool
}

// Adapter is the outbound messaging channel. The bot never receives updates,
// so the surface is send-only.
type Adapter interface {
	SendText(ctx context.Context, to ChatTarget, text string, opt *SendOptions) (MessageRef, error)
	Stop(ctx context.Context) error
}
