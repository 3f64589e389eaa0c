package poller

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts standard 5-field specs, optional seconds, and
// descriptors like @hourly / @every.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule is a normalized poll trigger: a cron expression or a fixed
// interval, never both.
type Schedule struct {
	Cron  string
	Every time.Duration
}

// spec renders the robfig/cron registration string.
func (s Schedule) spec() string {
	if s.Cron != "" {
		return s.Cron
	}
	return "@every " + s.Every.String()
}

func (s Schedule) String() string { return s.spec() }

var reHHMM = regexp.MustCompile(`^(\d{1,3}):(\d{2})$`)

// ParseSchedule normalizes a schedule string. Cron expressions are vetted
// against the parser here so a bad spec fails at config time, not at Start.
func ParseSchedule(raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Schedule{}, fmt.Errorf("schedule required")
	}

	// Whitespace or a leading '@' can only be cron.
	if strings.ContainsAny(s, " \t") || strings.HasPrefix(s, "@") {
		if _, err := cronParser.Parse(s); err != nil {
			return Schedule{}, fmt.Errorf("invalid cron schedule %q: %v", raw, err)
		}
		return Schedule{Cron: s}, nil
	}

	// HH:MM means an interval of that length ("00:50" = 50 minutes).
	if m := reHHMM.FindStringSubmatch(s); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if mm > 59 {
			return Schedule{}, fmt.Errorf("invalid minutes in %q", raw)
		}
		d := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
		if d <= 0 {
			return Schedule{}, fmt.Errorf("interval must be > 0")
		}
		return Schedule{Every: d}, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return Schedule{}, fmt.Errorf("interval must be > 0")
		}
		return Schedule{Every: d}, nil
	}

	return Schedule{}, fmt.Errorf(
		"invalid schedule %q (use a duration like '10m', HH:MM like '00:50', or cron like '*/10 * * * *')",
		raw,
	)
}
