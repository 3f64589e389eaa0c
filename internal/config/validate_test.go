package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "zero config", mutate: func(c *Config) {}},
		{name: "full valid", mutate: func(c *Config) {
			c.Practicum.RequestTimeout = "10s"
			c.Telegram.RequestTimeout = "5s"
			c.Notifier.SendTimeout = "3s"
			c.Notifier.RatePerSec = 2
			c.Poller.Schedule = "*/10 * * * *"
			c.Poller.Timezone = "Europe/Moscow"
		}},
		{name: "bad practicum timeout", mutate: func(c *Config) {
			c.Practicum.RequestTimeout = "ten seconds"
		}, wantErr: true},
		{name: "negative telegram timeout", mutate: func(c *Config) {
			c.Telegram.RequestTimeout = "-5s"
		}, wantErr: true},
		{name: "negative rate", mutate: func(c *Config) {
			c.Notifier.RatePerSec = -1
		}, wantErr: true},
		{name: "bad schedule", mutate: func(c *Config) {
			c.Poller.Schedule = "whenever"
		}, wantErr: true},
		{name: "unknown timezone tolerated", mutate: func(c *Config) {
			c.Poller.Timezone = "Mars/Olympus"
		}},
		{name: "pprof addr without port", mutate: func(c *Config) {
			c.Pprof.Enabled = true
			c.Pprof.Addr = "127.0.0.1"
		}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var c Config
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDurationOrDefault(t *testing.T) {
	t.Parallel()

	if d, err := ParseDurationOrDefault("x", "", 10*time.Second); err != nil || d != 10*time.Second {
		t.Fatalf("empty = (%v, %v), want default", d, err)
	}
	if d, err := ParseDurationOrDefault("x", "250ms", 10*time.Second); err != nil || d != 250*time.Millisecond {
		t.Fatalf("set = (%v, %v)", d, err)
	}
	if _, err := ParseDurationOrDefault("x", "nope", 10*time.Second); err == nil {
		t.Fatal("invalid duration accepted")
	}
}
