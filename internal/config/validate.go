package config

import (
	"fmt"
	"strings"
	"time"

	"homeworkbot/internal/poller"
)

// Validate vets everything a reload may change. Credentials are startup
// state and are covered by CheckCredentials instead. An invalid timezone is
// deliberately not an error here: the poll scheduler falls back to the
// system zone with a warning.
func (c *Config) Validate() error {
	if _, err := ParseDurationField("practicum.request_timeout", c.Practicum.RequestTimeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("telegram.request_timeout", c.Telegram.RequestTimeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("notifier.send_timeout", c.Notifier.SendTimeout); err != nil {
		return err
	}
	if c.Notifier.RatePerSec < 0 {
		return fmt.Errorf("notifier.rate_per_sec: must be >= 0")
	}
	if s := strings.TrimSpace(c.Poller.Schedule); s != "" {
		if _, err := poller.ParseSchedule(s); err != nil {
			return fmt.Errorf("poller.schedule: %w", err)
		}
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Addr) != "" && !strings.Contains(c.Pprof.Addr, ":") {
		return fmt.Errorf("pprof.addr: missing port in %q", c.Pprof.Addr)
	}
	return nil
}

func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}

// ParseDurationOrDefault returns def when the field is empty or zero.
func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	d, err := ParseDurationField(path, raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}
