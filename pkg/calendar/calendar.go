package calendar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateFormat = "2006-01-02"

// Calendar answers holiday and major-event lookups for a calendar day.
// Read-only after construction.
type Calendar struct {
	holidays map[string]string
	events   map[string]bool
}

type calendarFile struct {
	Holidays map[string]string `yaml:"holidays"` // date -> name
	Events   []string          `yaml:"events"`   // dates with major events
}

// Default is the built-in Hyderabad calendar used when no file is configured.
func Default() *Calendar {
	return &Calendar{
		holidays: map[string]string{
			"2026-01-01": "New Year's Day",
			"2026-01-14": "Sankranti",
			"2026-01-26": "Republic Day",
			"2026-08-15": "Independence Day",
			"2026-10-02": "Gandhi Jayanti",
			"2026-12-25": "Christmas",
		},
		events: map[string]bool{
			"2026-01-26": true,
			"2026-01-30": true,
			"2026-02-14": true,
		},
	}
}

// LoadFile reads a YAML calendar of the form:
//
//	holidays:
//	  2026-01-26: Republic Day
//	events:
//	  - 2026-01-30
func LoadFile(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}

	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing calendar file: %w", err)
	}

	calendar := &Calendar{
		holidays: map[string]string{},
		events:   map[string]bool{},
	}

	for date, name := range file.Holidays {
		if _, err := time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", date, err)
		}
		calendar.holidays[date] = name
	}

	for _, date := range file.Events {
		if _, err := time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("invalid event date %q: %w", date, err)
		}
		calendar.events[date] = true
	}

	return calendar, nil
}

// Holiday returns the holiday name for a date, if any.
func (c *Calendar) Holiday(date time.Time) (string, bool) {
	name, ok := c.holidays[date.Format(dateFormat)]
	return name, ok
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.Holiday(date)
	return ok
}

// HasEvent reports whether a major event (concert, rally, sports fixture) is
// scheduled on the date. Holidays also count as event days for congestion.
func (c *Calendar) HasEvent(date time.Time) bool {
	key := date.Format(dateFormat)
	return c.events[key] || c.holidays[key] != ""
}
