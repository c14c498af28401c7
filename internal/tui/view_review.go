package tui

import (
	"fmt"
	"strings"

	"github.com/bnquon/inboxAI/internal/model"
	"github.com/bnquon/inboxAI/internal/status"
	"github.com/bnquon/inboxAI/internal/util"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// reviewState is the per-draft review sub-state. A new target id resets it
// wholesale; results tagged with another id never touch it.
type reviewState struct {
	emailID string
	detail  *model.DraftDetail
	loading bool
	loadErr string

	editing      bool
	subjectInput textinput.Model
	bodyInput    textarea.Model
	bodyFocused  bool

	saving    bool
	rejecting bool
	sending   bool

	viewport viewport.Model
}

func newReviewState(emailID string) reviewState {
	si := textinput.New()
	si.Placeholder = "Draft subject"
	si.CharLimit = 0

	bi := textarea.New()
	bi.Placeholder = "Draft body"
	bi.CharLimit = 0

	return reviewState{
		emailID:      emailID,
		loading:      true,
		subjectInput: si,
		bodyInput:    bi,
		viewport:     viewport.New(0, 0),
	}
}

// beginEdit seeds the edit buffers from the last-loaded detail.
func (r *reviewState) beginEdit() {
	var subject, body string
	if r.detail != nil && r.detail.Draft != nil {
		subject = r.detail.Draft.DraftSubject
		body = r.detail.Draft.DraftText
	}
	r.subjectInput.SetValue(subject)
	r.bodyInput.SetValue(body)
	r.editing = true
	r.bodyFocused = false
	r.subjectInput.Focus()
	r.bodyInput.Blur()
}

// cancelEdit discards the buffers unconditionally.
func (r *reviewState) cancelEdit() {
	r.editing = false
	r.subjectInput.Blur()
	r.bodyInput.Blur()
}

// toggleEditFocus moves focus between the subject input and the body area.
func (r *reviewState) toggleEditFocus() {
	r.bodyFocused = !r.bodyFocused
	if r.bodyFocused {
		r.subjectInput.Blur()
		r.bodyInput.Focus()
	} else {
		r.bodyInput.Blur()
		r.subjectInput.Focus()
	}
}

func (r *reviewState) busy() bool {
	return r.saving || r.rejecting || r.sending
}

// mergeDraftEdits returns a copy of d with only the draft facet's text and
// subject replaced. The email facet and the rest of the draft facet are
// carried over untouched.
func mergeDraftEdits(d *model.DraftDetail, subject, body string) *model.DraftDetail {
	if d == nil {
		return &model.DraftDetail{Draft: &model.DraftPart{DraftSubject: subject, DraftText: body}}
	}
	merged := *d
	var draft model.DraftPart
	if d.Draft != nil {
		draft = *d.Draft
	}
	draft.DraftSubject = subject
	draft.DraftText = body
	merged.Draft = &draft
	return &merged
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// reviewContent composes the scrollable read-mode content: the original
// email followed by the generated draft.
func reviewContent(detail *model.DraftDetail, width int) string {
	var b strings.Builder

	var email model.EmailPart
	if detail != nil && detail.Email != nil {
		email = *detail.Email
	}
	var draft model.DraftPart
	if detail != nil && detail.Draft != nil {
		draft = *detail.Draft
	}

	b.WriteString(sectionStyle.Render("ORIGINAL EMAIL"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("From:"), orDash(email.From)))
	b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("Subject:"), orDash(email.Subject)))
	b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("Date:"), util.FormatDateTime(email.Date)))
	b.WriteString("\n")
	b.WriteString(orDash(util.HTMLToPlainText(email.Body)))
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat("─", max(1, width/2)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("AI GENERATED DRAFT"))
	b.WriteString("\n")
	if detail == nil || detail.Draft == nil {
		b.WriteString(dimStyle.Render("No draft generated for this email yet."))
		b.WriteString("\n")
		return b.String()
	}
	disp := status.DisplayFor(draft.Status)
	b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("Status:"), disp.Render()))
	if draft.Category != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("Category:"), categoryStyle.Render(draft.Category)))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("Subject:"), orDash(draft.DraftSubject)))
	b.WriteString(fmt.Sprintf("%s %s\n", headerKeyStyle.Render("Generated:"), util.FormatDateTime(draft.GeneratedAt)))
	b.WriteString("\n")
	b.WriteString(orDash(draft.DraftText))
	b.WriteString("\n")
	return b.String()
}

func reviewFooter(r reviewState) string {
	switch {
	case r.editing:
		return footerStyle.Render("ctrl+s: save  tab: subject/body  esc: cancel")
	case r.busy():
		return footerStyle.Render("working…")
	default:
		return footerStyle.Render("e: edit  s: approve & send  r: reject  ↑↓: scroll  esc: back  q: quit")
	}
}
