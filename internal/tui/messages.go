package tui

import "github.com/bnquon/inboxAI/internal/model"

// Async message types for Bubble Tea commands.

type sessionCheckedMsg struct {
	active bool
	err    error
}

type authURLMsg struct {
	url string
	err error
}

type loggedOutMsg struct{}

type draftsLoadedMsg struct {
	drafts []model.DraftSummary
	err    error
}

type ignoredLoadedMsg struct {
	emails []model.IgnoredEmailSummary
	err    error
}

// detailLoadedMsg carries the id the detail was requested for, so stale
// responses for a previously selected draft can be discarded.
type detailLoadedMsg struct {
	emailID string
	detail  *model.DraftDetail
	err     error
}

type draftSavedMsg struct {
	emailID string
	subject string
	body    string
	err     error
}

// transitionDoneMsg reports the outcome of a reject or skip request.
type transitionDoneMsg struct {
	action  string // "reject" or "skip"
	emailID string
	err     error
}

type sendDoneMsg struct {
	emailID string
	err     error
}

type pollDoneMsg struct {
	err error
}

// refreshDraftsMsg forces a drafts invalidation + refetch. Sent by the
// deferred ticks that follow reject and poll.
type refreshDraftsMsg struct{}

type phrasesLoadedMsg struct {
	phrases []string
	err     error
}

type phrasesSavedMsg struct {
	err error
}

type signoffLoadedMsg struct {
	signoff string
	err     error
}

type signoffSavedMsg struct {
	err error
}

type clearStatusMsg struct{}
