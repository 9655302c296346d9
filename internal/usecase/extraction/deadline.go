package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var inDaysRe = regexp.MustCompile(`^in (\d+) days?$`)

// resolveDeadline turns a deadline string from the extractor into a date.
// Absolute dates pass through; relative phrases like "friday", "tomorrow"
// or "next week" are resolved against now, always forward in time. Phrases
// that cannot be resolved yield nil so the task lands without a deadline
// instead of with a wrong one.
func resolveDeadline(raw string, now time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.Truncate(24 * time.Hour)
		return &t
	}

	phrase := strings.ToLower(raw)
	for _, prefix := range []string{"by ", "on ", "due ", "before ", "until "} {
		phrase = strings.TrimPrefix(phrase, prefix)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch phrase {
	case "today":
		return &today
	case "tomorrow":
		t := today.AddDate(0, 0, 1)
		return &t
	case "next week":
		// Monday of the following week.
		t := today.AddDate(0, 0, daysUntil(today, time.Monday))
		return &t
	case "end of week", "end of the week", "eow":
		t := today.AddDate(0, 0, daysUntil(today, time.Friday))
		return &t
	case "end of month", "end of the month", "eom":
		t := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return &t
	}

	if m := inDaysRe.FindStringSubmatch(phrase); m != nil {
		n, _ := strconv.Atoi(m[1])
		t := today.AddDate(0, 0, n)
		return &t
	}

	next := strings.TrimPrefix(phrase, "next ")
	if wd, ok := weekdays[next]; ok {
		days := daysUntil(today, wd)
		if strings.HasPrefix(phrase, "next ") {
			// "next friday" on a Wednesday means the week after this one.
			days += 7
		}
		t := today.AddDate(0, 0, days)
		return &t
	}

	return nil
}

// daysUntil returns days from today to the next occurrence of wd,
// never zero: a deadline named by weekday is always in the future.
func daysUntil(today time.Time, wd time.Weekday) int {
	days := int(wd-today.Weekday()+7) % 7
	if days == 0 {
		days = 7
	}
	return days
}
