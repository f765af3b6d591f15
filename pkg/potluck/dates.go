package potluck

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "01/02/2006"

// dateLayouts are tried in order after the numeric month/day/year form.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"Mon, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
	"Mon Jan 02 2006 15:04:05",
}

// ParseEventDate parses an event date in loc. MM/DD/YYYY is tried first,
// then the long-form locale strings found in older events. The boolean is
// false when no attempt succeeds.
func ParseEventDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseNumericDate(s, loc); ok {
		return t, true
	}

	for _, candidate := range []string{s, trimTrailingClock(s), trimZoneSuffix(s)} {
		if candidate == "" {
			continue
		}
		for _, layout := range dateLayouts {
			t, err := time.ParseInLocation(layout, candidate, loc)
			if err == nil {
				y, m, d := t.Date()
				return time.Date(y, m, d, 0, 0, 0, 0, loc), true
			}
		}
	}
	return time.Time{}, false
}

func parseNumericDate(s string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// reject 02/31 and friends instead of rolling over
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// "June 15, 2025, 6:00 PM" -> "June 15, 2025"
func trimTrailingClock(s string) string {
	idx := strings.LastIndex(s, ",")
	if idx < 0 {
		return ""
	}
	tail := strings.TrimSpace(s[idx+1:])
	if !strings.Contains(tail, ":") {
		return ""
	}
	return strings.TrimSpace(s[:idx])
}

// "Sun Jun 15 2025 00:00:00 GMT-0400 (Eastern Daylight Time)" -> "Sun Jun 15 2025 00:00:00"
func trimZoneSuffix(s string) string {
	idx := strings.Index(s, " GMT")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(s[:idx])
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsEventPast reports whether the event's calendar day ended before now.
// An event dated today is not past. Unparseable dates are never past.
func IsEventPast(date string, now time.Time) bool {
	day, ok := ParseEventDate(date, now.Location())
	if !ok {
		return false
	}
	endOfEventDay := day.AddDate(0, 0, 1)
	return !now.Before(endOfEventDay)
}

// NormalizeEventDate rewrites any parseable date as MM/DD/YYYY.
func NormalizeEventDate(s string, loc *time.Location) (string, bool) {
	t, ok := ParseEventDate(s, loc)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

// DisplayDate renders the date in long form, falling back to the raw value.
func DisplayDate(s string, loc *time.Location) string {
	t, ok := ParseEventDate(s, loc)
	if !ok {
		return s
	}
	return t.Format("Monday, January 2, 2006")
}

// NormalizeEventTime converts 24-hour "15:04" input to "3:04 PM". Values
// already in 12-hour form are tidied; anything else is rejected.
func NormalizeEventTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"3:04 PM", "3:04PM", "03:04 PM", "3:04 pm", "3:04pm"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("3:04 PM"), nil
		}
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("3:04 PM"), nil
		}
	}
	return "", fmt.Errorf("unrecognized time %q", s)
}
