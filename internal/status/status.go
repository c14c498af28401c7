package status

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// State is the canonical draft lifecycle state. The backend sends status as
// a free-form string; anything unrecognized counts as Pending.
type State int

const (
	Pending State = iota
	Accepted
	Rejected
	Skipped
)

// String returns the canonical lowercase form, matching the wire values.
func (s State) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Skipped:
		return "skipped"
	default:
		return "pending"
	}
}

// Terminal reports whether no further transition is offered from s.
func (s State) Terminal() bool {
	return s != Pending
}

// Display describes how a status is shown in the UI.
type Display struct {
	State State
	Label string
	Icon  string
	Style lipgloss.Style
}

var (
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var displays = map[State]Display{
	Pending:  {State: Pending, Label: "Review required", Icon: "○", Style: pendingStyle},
	Accepted: {State: Accepted, Label: "Accepted", Icon: "✓", Style: acceptedStyle},
	Rejected: {State: Rejected, Label: "Rejected", Icon: "✕", Style: mutedStyle},
	Skipped:  {State: Skipped, Label: "Skipped", Icon: "—", Style: mutedStyle},
}

// Canonical maps a raw status string to its lifecycle state. Lookup is
// case-insensitive; empty or unknown values map to Pending.
func Canonical(raw string) State {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "accepted":
		return Accepted
	case "rejected":
		return Rejected
	case "skipped":
		return Skipped
	default:
		return Pending
	}
}

// DisplayFor returns the display metadata for a raw status string.
func DisplayFor(raw string) Display {
	return displays[Canonical(raw)]
}

// Render formats the status as "icon label" with its style applied.
func (d Display) Render() string {
	return d.Style.Render(d.Icon + " " + d.Label)
}
