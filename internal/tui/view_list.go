package tui

import (
	"fmt"
	"strings"

	"github.com/bnquon/inboxAI/internal/model"
	"github.com/bnquon/inboxAI/internal/status"
	"github.com/bnquon/inboxAI/internal/util"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Filter selects which subset of the collections the list shows.
type Filter int

const (
	FilterPending Filter = iota
	FilterAll
	FilterAccepted
	FilterRejected
	FilterIgnored
)

// filterTabs is the tab order in the UI.
var filterTabs = []Filter{FilterPending, FilterAll, FilterAccepted, FilterRejected, FilterIgnored}

func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterAccepted:
		return "Accepted"
	case FilterRejected:
		return "Rejected"
	case FilterIgnored:
		return "Ignored"
	default:
		return "Review pending"
	}
}

// filterDrafts returns the subset of drafts the filter selects. Pending is
// the complement of the three terminal states, so unrecognized statuses
// land there. FilterIgnored selects from the ignored-email collection
// instead and always returns nil here.
func filterDrafts(drafts []model.DraftSummary, f Filter) []model.DraftSummary {
	switch f {
	case FilterAll:
		return drafts
	case FilterIgnored:
		return nil
	}
	var out []model.DraftSummary
	for _, d := range drafts {
		s := status.Canonical(d.Status)
		switch f {
		case FilterAccepted:
			if s == status.Accepted {
				out = append(out, d)
			}
		case FilterRejected:
			if s == status.Rejected {
				out = append(out, d)
			}
		default: // FilterPending
			if s != status.Accepted && s != status.Rejected && s != status.Skipped {
				out = append(out, d)
			}
		}
	}
	return out
}

// tabCounts holds the badge count for every tab, computed over the whole
// collections regardless of the active filter.
type tabCounts struct {
	All, Pending, Accepted, Rejected, Ignored int
}

func countTabs(drafts []model.DraftSummary, ignored []model.IgnoredEmailSummary) tabCounts {
	c := tabCounts{All: len(drafts), Ignored: len(ignored)}
	for _, d := range drafts {
		switch status.Canonical(d.Status) {
		case status.Accepted:
			c.Accepted++
		case status.Rejected:
			c.Rejected++
		case status.Skipped:
			// counted in All only
		default:
			c.Pending++
		}
	}
	return c
}

func (c tabCounts) For(f Filter) int {
	switch f {
	case FilterAll:
		return c.All
	case FilterAccepted:
		return c.Accepted
	case FilterRejected:
		return c.Rejected
	case FilterIgnored:
		return c.Ignored
	default:
		return c.Pending
	}
}

// draftItem wraps a DraftSummary for the bubbles list.
type draftItem struct {
	model.DraftSummary
}

func (d draftItem) FilterValue() string { return d.From + " " + d.Subject }
func (d draftItem) Title() string {
	disp := status.DisplayFor(d.Status)
	title := disp.Style.Render(disp.Icon) + " " + util.DisplayNameFromFrom(d.From)
	if d.Category != "" {
		title += "  " + categoryStyle.Render(d.Category)
	}
	return title
}
func (d draftItem) Description() string {
	subject := d.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	return fmt.Sprintf("%s  %s", subject, dimStyle.Render(util.FormatDateTime(d.GeneratedAt)))
}

// ignoredItem wraps an IgnoredEmailSummary for the bubbles list.
type ignoredItem struct {
	model.IgnoredEmailSummary
}

func (e ignoredItem) FilterValue() string { return e.From + " " + e.Subject }
func (e ignoredItem) Title() string {
	return util.DisplayNameFromFrom(e.From)
}
func (e ignoredItem) Description() string {
	subject := e.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	return fmt.Sprintf("%s  %s", subject, dimStyle.Render("Ignored (no draft)"))
}

func draftsToItems(drafts []model.DraftSummary) []list.Item {
	items := make([]list.Item, len(drafts))
	for i, d := range drafts {
		items[i] = draftItem{d}
	}
	return items
}

func ignoredToItems(emails []model.IgnoredEmailSummary) []list.Item {
	items := make([]list.Item, len(emails))
	for i, e := range emails {
		items[i] = ignoredItem{e}
	}
	return items
}

// renderTabBar draws the filter tabs with their badge counts.
func renderTabBar(active Filter, counts tabCounts) string {
	rendered := make([]string, 0, len(filterTabs))
	for _, f := range filterTabs {
		label := fmt.Sprintf("%s %d", f.Label(), counts.For(f))
		if f == active {
			rendered = append(rendered, activeTabStyle.Render(label))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rendered, " "))
}

func emptyStateMessage(f Filter) string {
	switch f {
	case FilterAll:
		return "No drafts yet. Poll the inbox to generate some."
	case FilterAccepted:
		return "No accepted drafts."
	case FilterRejected:
		return "No rejected drafts."
	case FilterIgnored:
		return "No ignored emails."
	default:
		return "No drafts pending review."
	}
}

func listFooter() string {
	return footerStyle.Render("enter: review  tab/←→: filter  s: skip  g: poll inbox  r: refresh  p: preferences  L: logout  q: quit")
}
