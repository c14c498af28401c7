package util

import "testing"

func TestFormatDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-02-01T14:00:00", "Feb 1 2026 - 02:00pm"},
		{"2026-02-01T09:05:00Z", "Feb 1 2026 - 09:05am"},
		{"2024-12-31T23:59:00", "Dec 31 2024 - 11:59pm"},
		{"2024-06-15T00:30:00", "Jun 15 2024 - 12:30am"},
		{"2024-06-15", "Jun 15 2024 - 12:00am"},
		{"", "—"},
		{"   ", "—"},
		{"not a date", "—"},
	}
	for _, tc := range tests {
		if got := FormatDateTime(tc.in); got != tc.want {
			t.Errorf("FormatDateTime(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateTimeEpochMillis(t *testing.T) {
	// 2026-02-01T14:00:00Z in ms; formatted in the local zone, so only
	// check it doesn't fall through to the missing marker.
	if got := FormatDateTime("1769954400000"); got == "—" {
		t.Errorf("epoch millis should parse, got %q", got)
	}
}

func TestHTMLToPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"a &amp; b &lt;c&gt;", "a & b <c>"},
		{"line1<br>line2", "line1line2"},
		{"  lots\n\n of \t whitespace  ", "lots of whitespace"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := HTMLToPlainText(tc.in); got != tc.want {
			t.Errorf("HTMLToPlainText(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestHTMLToPlainTextDropsScripts(t *testing.T) {
	got := HTMLToPlainText(`<p>safe</p><script>alert("xss")</script>`)
	if got != "safe" {
		t.Errorf("script content should be dropped, got %q", got)
	}
}

func TestDisplayNameFromFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Alice Smith <alice@example.com>`, "Alice Smith"},
		{`"Bob" <bob@example.com>`, "Bob"},
		{`carol@example.com`, "carol@example.com"},
		{`not really an address`, "not really an address"},
		{``, "Unknown"},
		{`   `, "Unknown"},
	}
	for _, tc := range tests {
		if got := DisplayNameFromFrom(tc.in); got != tc.want {
			t.Errorf("DisplayNameFromFrom(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"héllo wörld", 5, "héll…"},
		{"hello", 0, ""},
		{"hello", 1, "…"},
	}
	for _, tc := range tests {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q; want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
