package poller

import (
	"testing"
	"time"
)

func TestParseScheduleIntervals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10m", 10 * time.Minute},
		{"600s", 10 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"00:50", 50 * time.Minute},
		{"02:30", 2*time.Hour + 30*time.Minute},
		{"100:00", 100 * time.Hour},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSchedule(tt.in)
			if err != nil {
				t.Fatalf("ParseSchedule(%q): %v", tt.in, err)
			}
			if got.Cron != "" {
				t.Fatalf("Cron = %q, want interval form", got.Cron)
			}
			if got.Every != tt.want {
				t.Fatalf("Every = %v, want %v", got.Every, tt.want)
			}
		})
	}
}

func TestParseScheduleCron(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"*/10 * * * *", "0 */10 * * * *", "@hourly"} {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSchedule(in)
			if err != nil {
				t.Fatalf("ParseSchedule(%q): %v", in, err)
			}
			if got.Cron != in {
				t.Fatalf("Cron = %q, want %q", got.Cron, in)
			}
			if got.Every != 0 {
				t.Fatalf("Every = %v, want 0", got.Every)
			}
		})
	}
}

func TestParseScheduleRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "soon", "10x", "12:99", "-5m", "0s", "* * *"} {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseSchedule(in); err == nil {
				t.Fatalf("ParseSchedule(%q) accepted, want error", in)
			}
		})
	}
}

func TestScheduleSpecForms(t *testing.T) {
	t.Parallel()

	if got := (Schedule{Every: 10 * time.Minute}).String(); got != "@every 10m0s" {
		t.Fatalf("interval spec = %q", got)
	}
	if got := (Schedule{Cron: "*/5 * * * *"}).String(); got != "*/5 * * * *" {
		t.Fatalf("cron spec = %q", got)
	}
}
