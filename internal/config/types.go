package config

// Config is the full on-disk configuration. Every field has a usable zero
// value; a missing file plus the three credential environment variables is
// a complete setup.
type Config struct {
	Telegram  TelegramConfig  `json:"telegram"`
	Practicum PracticumConfig `json:"practicum"`
	Poller    PollerConfig    `json:"poller"`
	Notifier  NotifierConfig  `json:"notifier,omitempty"`
	Logging   LoggingConfig   `json:"logging"`
	Pprof     PprofConfig     `json:"pprof,omitempty"`
}

// TelegramConfig holds the delivery-side settings. Token and ChatID are
// normally supplied through TELEGRAM_TOKEN and TELEGRAM_CHAT_ID; values in
// the file are a fallback for local runs.
type TelegramConfig struct {
	Token  string `json:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`
	// RequestTimeout is a Go duration string (e.g. "10s") bounding one
	// Bot API call.
	RequestTimeout string `json:"request_timeout,omitempty"`
}

// PracticumConfig holds the status-endpoint settings. Token is normally
// supplied through PRACTICUM_TOKEN.
type PracticumConfig struct {
	// Endpoint overrides the production homework-statuses URL. Meant for
	// tests and staging.
	Endpoint string `json:"endpoint,omitempty"`
	Token    string `json:"token,omitempty"`
	// RequestTimeout is a Go duration string bounding one poll request.
	RequestTimeout string `json:"request_timeout,omitempty"`
}

// PollerConfig controls when poll cycles fire.
type PollerConfig struct {
	// Schedule accepts a Go duration ("10m"), an HH:MM span ("00:50") or a
	// cron expression ("*/10 * * * *"). Empty means every 10 minutes.
	Schedule string `json:"schedule,omitempty"`
	// Timezone applies to cron expressions. Empty or invalid falls back to
	// the system zone.
	Timezone string `json:"timezone,omitempty"`
}

// NotifierConfig tunes chat delivery. Zero values mean one message per
// second with a 10s send timeout.
type NotifierConfig struct {
	RatePerSec int `json:"rate_per_sec,omitempty"`
	// SendTimeout is a Go duration string.
	SendTimeout string `json:"send_timeout,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// PprofConfig controls the optional pprof HTTP server.
//
// Security note:
//   - Prefer binding to localhost (e.g. "127.0.0.1:6060").
//   - If you bind to a non-loopback address, set a token or explicitly
//     allow_insecure.
type PprofConfig struct {
	Enabled       bool   `json:"enabled"`
	Addr          string `json:"addr,omitempty"`  // default: "127.0.0.1:6060"
	Token         string `json:"token,omitempty"` // optional bearer token (do not log)
	AllowInsecure bool   `json:"allow_insecure,omitempty"`
}
