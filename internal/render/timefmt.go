package render

import (
	"fmt"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp spellings agents commonly return.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RelativeTime describes ts relative to now ("5m ago", "Yesterday", "Feb 21").
// Unparsable input is returned unchanged.
func RelativeTime(ts string, now time.Time) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ts
	}

	diff := now.Sub(t)
	hours := int(diff / time.Hour)
	if hours < 1 {
		mins := int(diff / time.Minute)
		if mins <= 0 {
			return "Just now"
		}
		return fmt.Sprintf("%dm ago", mins)
	}
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "Yesterday"
	}
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}
	return t.In(now.Location()).Format("Jan 2")
}

// FollowUpWhen formats a follow-up's date and time as
// "Mon, Jan 2 at 3:04 PM", falling back to "date time".
func FollowUpWhen(date, clock string) string {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return date + " " + clock
	}
	return t.Format("Mon, Jan 2") + " at " + t.Format("3:04 PM")
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		b.WriteString(strings.ToUpper(string(r[0])))
		if len([]rune(b.String())) == 2 {
			break
		}
	}
	return b.String()
}
