package tui

import (
	"testing"

	"github.com/bnquon/inboxAI/internal/model"
)

func sampleDrafts() []model.DraftSummary {
	return []model.DraftSummary{
		{EmailID: "a", Status: "Pending"},
		{EmailID: "b", Status: "ACCEPTED"},
		{EmailID: "c", Status: "rejected"},
		{EmailID: "d", Status: "Skipped"},
		{EmailID: "e", Status: ""},        // no status yet
		{EmailID: "f", Status: "weird??"}, // unrecognized
	}
}

func ids(drafts []model.DraftSummary) []string {
	out := make([]string, len(drafts))
	for i, d := range drafts {
		out[i] = d.EmailID
	}
	return out
}

func TestFilterDrafts(t *testing.T) {
	drafts := sampleDrafts()

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterPending, []string{"a", "e", "f"}},
		{FilterAll, []string{"a", "b", "c", "d", "e", "f"}},
		{FilterAccepted, []string{"b"}},
		{FilterRejected, []string{"c"}},
		{FilterIgnored, nil},
	}
	for _, tt := range tests {
		got := ids(filterDrafts(drafts, tt.filter))
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.filter.Label(), got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.filter.Label(), got, tt.want)
				break
			}
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	drafts := sampleDrafts()
	filterDrafts(drafts, FilterAccepted)
	if len(drafts) != 6 {
		t.Fatalf("input slice changed: %d entries", len(drafts))
	}
}

func TestCountTabs(t *testing.T) {
	ignored := []model.IgnoredEmailSummary{{EmailID: "x"}, {EmailID: "y"}}
	c := countTabs(sampleDrafts(), ignored)

	// Skipped drafts count toward All but no other tab.
	if c.All != 6 {
		t.Errorf("All = %d, want 6", c.All)
	}
	if c.Pending != 3 {
		t.Errorf("Pending = %d, want 3", c.Pending)
	}
	if c.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", c.Accepted)
	}
	if c.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", c.Rejected)
	}
	if c.Ignored != 2 {
		t.Errorf("Ignored = %d, want 2", c.Ignored)
	}
	if c.Pending+c.Accepted+c.Rejected != c.All-1 {
		t.Errorf("tab counts don't partition: %+v", c)
	}
}

func TestNextFilterWraps(t *testing.T) {
	if got := nextFilter(FilterPending, -1); got != FilterIgnored {
		t.Errorf("backward from first = %v, want FilterIgnored", got)
	}
	if got := nextFilter(FilterIgnored, 1); got != FilterPending {
		t.Errorf("forward from last = %v, want FilterPending", got)
	}
	if got := nextFilter(FilterAll, 1); got != FilterAccepted {
		t.Errorf("forward from All = %v, want FilterAccepted", got)
	}
}
