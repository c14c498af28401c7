package util

import (
	"html"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag; we only ever show plain text in the terminal.
var strictPolicy = bluemonday.StrictPolicy()

const missingValue = "—"

// timestamp layouts the backend has been seen to produce, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDateTime renders a backend timestamp as "Feb 1 2026 - 02:00pm".
// Accepts RFC3339 (with or without zone) and epoch milliseconds. Missing or
// unparsable values render as "—".
func FormatDateTime(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return missingValue
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).Format("Jan 2 2006 - 03:04pm")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 2 2006 - 03:04pm")
		}
	}
	return missingValue
}

// HTMLToPlainText strips HTML to plain text for safe terminal display:
// tags removed, entities decoded, whitespace collapsed.
func HTMLToPlainText(htmlBody string) string {
	if htmlBody == "" {
		return ""
	}
	text := strictPolicy.Sanitize(htmlBody)
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// DisplayNameFromFrom extracts the display name from an RFC 5322 From value
// like `Name <user@example.com>`. Falls back to the raw string when there is
// no name part, and to "Unknown" when the value is empty or unparsable.
func DisplayNameFromFrom(from string) string {
	trimmed := strings.TrimSpace(from)
	if trimmed == "" {
		return "Unknown"
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr == nil {
		return trimmed
	}
	if name := strings.TrimSpace(addr.Name); name != "" {
		return name
	}
	if addr.Address != "" {
		return addr.Address
	}
	return trimmed
}

// Truncate shortens s to at most max runes, appending "…" when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
