package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bnquon/inboxAI/internal/api"
	"github.com/bnquon/inboxAI/internal/cache"
	"github.com/bnquon/inboxAI/internal/model"
	"github.com/bnquon/inboxAI/internal/status"
	"github.com/bnquon/inboxAI/internal/util"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type viewState int

const (
	viewChecking viewState = iota // session status probe in flight
	viewLogin
	viewList
	viewReview
	viewPrefs
)

const (
	// rejectRefreshDelay absorbs eventual-consistency lag in the backend
	// store: the list is invalidated once on success and once more after
	// this delay.
	rejectRefreshDelay = 1 * time.Second
	// pollRefreshDelay is the unconditional deferred refresh after an
	// inbox poll is triggered.
	pollRefreshDelay = 5 * time.Second

	statusClearDelay = 3 * time.Second
)

// AppModel is the whole console: which view is active, the cached
// collections, and the per-view sub-state. All mutation goes through
// Update; commands only report back via typed messages.
type AppModel struct {
	client *api.Client
	cache  *cache.Cache
	Err    error

	view          viewState
	width, height int
	spinner       spinner.Model

	// transient status bar
	statusText  string
	statusIsErr bool

	// login
	authURL string
	authErr string

	// list
	filter        Filter
	drafts        []model.DraftSummary
	draftsLoaded  bool
	draftsErr     string
	ignored       []model.IgnoredEmailSummary
	ignoredLoaded bool
	ignoredErr    string
	collection    list.Model

	review reviewState
	prefs  prefsState
}

func NewAppModel(client *api.Client, c *cache.Cache) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	// Remove q from the list's built-in Quit binding; we handle quit ourselves.
	l.KeyMap.Quit.SetKeys("ctrl+c")

	return AppModel{
		client:     client,
		cache:      c,
		view:       viewChecking,
		spinner:    sp,
		filter:     FilterPending,
		collection: l,
		prefs:      newPrefsState(),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.checkSessionCmd(), m.spinner.Tick)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.collection.SetSize(msg.Width, max(0, msg.Height-6))
		m.review.viewport.Width = msg.Width
		m.review.viewport.Height = max(0, msg.Height-8)
		m.review.bodyInput.SetWidth(max(20, msg.Width-4))
		m.review.bodyInput.SetHeight(max(4, msg.Height-14))
		m.review.subjectInput.Width = max(20, msg.Width-16)
		m.prefs.phraseInput.Width = max(20, msg.Width-8)
		m.prefs.signoffInput.Width = max(20, msg.Width-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionCheckedMsg:
		return m.onSessionChecked(msg)

	case authURLMsg:
		if msg.err != nil {
			m.authErr = oauthErrorMessage(msg.err)
			return m, nil
		}
		m.authURL = msg.url
		m.authErr = ""
		if err := util.OpenBrowser(msg.url); err != nil {
			log.Printf("open browser: %v", err)
		}
		return m, nil

	case loggedOutMsg:
		m.view = viewLogin
		m.authURL = ""
		m.authErr = ""
		return m, nil

	case draftsLoadedMsg:
		if msg.err != nil {
			m.draftsErr = "Failed to load drafts"
			log.Printf("load drafts: %v", msg.err)
		} else {
			m.drafts = msg.drafts
			m.draftsLoaded = true
			m.draftsErr = ""
		}
		m.syncCollection()
		return m, nil

	case ignoredLoadedMsg:
		if msg.err != nil {
			m.ignoredErr = "Failed to load ignored emails"
			log.Printf("load ignored emails: %v", msg.err)
		} else {
			m.ignored = msg.emails
			m.ignoredLoaded = true
			m.ignoredErr = ""
		}
		m.syncCollection()
		return m, nil

	case detailLoadedMsg:
		// Discard results for a draft the user has already navigated away
		// from; a slow fetch must never overwrite the current target.
		if m.view != viewReview || msg.emailID != m.review.emailID {
			return m, nil
		}
		m.review.loading = false
		if msg.err != nil {
			m.review.loadErr = loadErrorText(msg.err)
			m.review.detail = nil
			return m, nil
		}
		m.review.detail = msg.detail
		m.review.viewport.SetContent(reviewContent(msg.detail, m.width))
		m.review.viewport.GotoTop()
		return m, nil

	case draftSavedMsg:
		return m.onDraftSaved(msg)

	case transitionDoneMsg:
		return m.onTransitionDone(msg)

	case sendDoneMsg:
		return m.onSendDone(msg)

	case pollDoneMsg:
		if msg.err != nil {
			log.Printf("poll trigger: %v", msg.err)
			return m, m.setError("Poll failed")
		}
		m.cache.Invalidate(cache.KeyDrafts)
		return m, tea.Batch(m.setStatus("Polling retriggered"), m.loadDraftsCmd())

	case refreshDraftsMsg:
		m.cache.Invalidate(cache.KeyDrafts)
		return m, m.loadDraftsCmd()

	case phrasesLoadedMsg:
		if msg.err != nil {
			m.prefs.phrasesErr = "Failed to load ignore preferences"
			log.Printf("load ignore phrases: %v", msg.err)
			return m, nil
		}
		m.prefs.phrases = msg.phrases
		m.prefs.phrasesLoaded = true
		m.prefs.phrasesErr = ""
		if m.prefs.selected >= len(m.prefs.phrases) {
			m.prefs.selected = max(0, len(m.prefs.phrases)-1)
		}
		return m, nil

	case phrasesSavedMsg:
		m.prefs.saving = false
		if msg.err != nil {
			log.Printf("save ignore phrases: %v", msg.err)
			return m, m.setError("Failed to save")
		}
		m.cache.Invalidate(cache.KeyIgnorePhrases)
		return m, tea.Batch(m.setStatus("Saved"), m.loadPhrasesCmd())

	case signoffLoadedMsg:
		if msg.err != nil {
			log.Printf("load sign-off: %v", msg.err)
			return m, nil
		}
		m.prefs.seedSignoff(msg.signoff)
		return m, nil

	case signoffSavedMsg:
		m.prefs.savingSignoff = false
		if msg.err != nil {
			log.Printf("save sign-off: %v", msg.err)
			return m, m.setError("Failed to save sign-off")
		}
		m.cache.Invalidate(cache.KeySignoff)
		return m, tea.Batch(m.setStatus("Sign-off saved"), m.loadSignoffCmd())

	case clearStatusMsg:
		m.statusText = ""
		m.statusIsErr = false
		return m, nil
	}

	return m.updateSubModels(msg)
}

func (m *AppModel) onSessionChecked(msg sessionCheckedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.view = viewLogin
		m.authErr = "Could not reach server"
		log.Printf("session check: %v", msg.err)
		return m, nil
	}
	if !msg.active {
		m.view = viewLogin
		return m, nil
	}
	m.view = viewList
	return m, tea.Batch(m.loadDraftsCmd(), m.loadIgnoredCmd())
}

func (m *AppModel) onDraftSaved(msg draftSavedMsg) (tea.Model, tea.Cmd) {
	current := m.view == viewReview && m.review.emailID == msg.emailID
	if current {
		m.review.saving = false
	}
	if msg.err != nil {
		// A failed save touches nothing: the buffer stays, edit mode
		// stays, and the cached list is still valid.
		log.Printf("save draft %s: %v", msg.emailID, msg.err)
		if current {
			return m, m.setError(saveErrorText(msg.err))
		}
		return m, nil
	}

	// The list must reflect the edit regardless of where the user is now.
	m.cache.Invalidate(cache.KeyDrafts)
	reload := m.loadDraftsCmd()
	if !current {
		return m, reload
	}
	m.review.detail = mergeDraftEdits(m.review.detail, msg.subject, msg.body)
	m.review.cancelEdit()
	m.review.viewport.SetContent(reviewContent(m.review.detail, m.width))
	return m, tea.Batch(m.setStatus("Draft saved"), reload)
}

func (m *AppModel) onTransitionDone(msg transitionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.action == "skip" {
		if msg.err != nil {
			log.Printf("skip %s: %v", msg.emailID, msg.err)
			return m, m.setError(transitionErrorText(msg.err, "skip"))
		}
		m.cache.Invalidate(cache.KeyDrafts)
		return m, tea.Batch(m.setStatus("Draft skipped"), m.loadDraftsCmd())
	}

	// reject
	if m.view == viewReview && m.review.emailID == msg.emailID {
		m.review.rejecting = false
	}
	if msg.err != nil {
		log.Printf("reject %s: %v", msg.emailID, msg.err)
		return m, m.setError(transitionErrorText(msg.err, "reject"))
	}
	if m.view == viewReview && m.review.emailID == msg.emailID {
		m.view = viewList
	}
	m.cache.Invalidate(cache.KeyDrafts)
	return m, tea.Batch(
		m.setStatus("Draft rejected"),
		m.loadDraftsCmd(),
		tea.Tick(rejectRefreshDelay, func(time.Time) tea.Msg { return refreshDraftsMsg{} }),
	)
}

func (m *AppModel) onSendDone(msg sendDoneMsg) (tea.Model, tea.Cmd) {
	if m.view == viewReview && m.review.emailID == msg.emailID {
		m.review.sending = false
	}
	if msg.err != nil {
		log.Printf("send %s: %v", msg.emailID, msg.err)
		return m, m.setError(sendErrorText(msg.err))
	}
	if m.view == viewReview && m.review.emailID == msg.emailID {
		m.view = viewList
	}
	m.cache.Invalidate(cache.KeyDrafts)
	return m, tea.Batch(m.setStatus("Email sent"), m.loadDraftsCmd())
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewChecking:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case viewLogin:
		return m.handleLoginKey(msg)
	case viewList:
		return m.handleListKey(msg)
	case viewReview:
		return m.handleReviewKey(msg)
	case viewPrefs:
		return m.handlePrefsKey(msg)
	}
	return m, nil
}

func (m *AppModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s":
		return m, m.authorizeCmd()
	case "r":
		m.view = viewChecking
		return m, m.checkSessionCmd()
	}
	return m, nil
}

func (m *AppModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When the list is filtering, let it handle all keys except ctrl+c.
	if m.collection.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.collection, cmd = m.collection.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right":
		m.setFilter(nextFilter(m.filter, 1))
		return m, nil
	case "shift+tab", "left":
		m.setFilter(nextFilter(m.filter, -1))
		return m, nil
	case "enter":
		return m.openSelectedDraft()
	case "s":
		return m.skipSelectedDraft()
	case "g":
		// Deferred refresh is scheduled at trigger time, regardless of
		// how the poll itself turns out.
		return m, tea.Batch(
			m.pollCmd(),
			tea.Tick(pollRefreshDelay, func(time.Time) tea.Msg { return refreshDraftsMsg{} }),
		)
	case "r":
		m.cache.Invalidate(cache.KeyDrafts)
		return m, m.loadDraftsCmd()
	case "p":
		m.view = viewPrefs
		m.prefs = newPrefsState()
		m.prefs.phraseInput.Width = max(20, m.width-8)
		m.prefs.signoffInput.Width = max(20, m.width-8)
		return m, tea.Batch(m.loadPhrasesCmd(), m.loadSignoffCmd())
	case "L":
		return m, m.logoutCmd()
	}

	var cmd tea.Cmd
	m.collection, cmd = m.collection.Update(msg)
	return m, cmd
}

func (m *AppModel) openSelectedDraft() (tea.Model, tea.Cmd) {
	if m.filter == FilterIgnored {
		return m, nil
	}
	selected := m.collection.SelectedItem()
	if selected == nil {
		return m, nil
	}
	item, ok := selected.(draftItem)
	if !ok {
		return m, nil
	}
	return m, m.openReview(item.EmailID)
}

// openReview switches to the review view for emailID and starts the detail
// fetch. A missing id is an immediate load error with no network call.
func (m *AppModel) openReview(emailID string) tea.Cmd {
	m.review = newReviewState(emailID)
	m.review.viewport.Width = m.width
	m.review.viewport.Height = max(0, m.height-8)
	m.review.bodyInput.SetWidth(max(20, m.width-4))
	m.review.bodyInput.SetHeight(max(4, m.height-14))
	m.review.subjectInput.Width = max(20, m.width-16)
	m.view = viewReview

	if emailID == "" {
		m.review.loading = false
		m.review.loadErr = "Missing draft ID"
		return nil
	}
	return m.fetchDetailCmd(emailID)
}

func (m *AppModel) skipSelectedDraft() (tea.Model, tea.Cmd) {
	if m.filter == FilterIgnored {
		return m, nil
	}
	selected := m.collection.SelectedItem()
	if selected == nil {
		return m, nil
	}
	item, ok := selected.(draftItem)
	if !ok {
		return m, nil
	}
	if status.Canonical(item.Status).Terminal() {
		return m, m.setStatus("Draft already " + status.Canonical(item.Status).String())
	}
	// No optimistic removal: the item disappears only after the server
	// confirms and the list is refetched.
	return m, m.skipCmd(item.EmailID)
}

func (m *AppModel) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := &m.review

	if r.editing {
		switch msg.String() {
		case "esc":
			r.cancelEdit()
			return m, nil
		case "tab":
			r.toggleEditFocus()
			return m, nil
		case "ctrl+s":
			if r.saving {
				return m, nil
			}
			r.saving = true
			return m, m.saveDraftCmd(r.emailID, r.subjectInput.Value(), r.bodyInput.Value())
		}
		var cmd tea.Cmd
		if r.bodyFocused {
			r.bodyInput, cmd = r.bodyInput.Update(msg)
		} else {
			r.subjectInput, cmd = r.subjectInput.Update(msg)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.view = viewList
		return m, nil
	case "e":
		if r.detail != nil && !r.busy() {
			r.beginEdit()
		}
		return m, nil
	case "r":
		if r.emailID != "" && r.detail != nil && !r.busy() {
			r.rejecting = true
			return m, m.rejectCmd(r.emailID)
		}
		return m, nil
	case "s":
		if r.emailID != "" && r.detail != nil && !r.busy() {
			r.sending = true
			return m, m.sendCmd(r.emailID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return m, cmd
}

func (m *AppModel) handlePrefsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.prefs

	switch msg.String() {
	case "esc":
		m.view = viewList
		return m, nil
	case "tab":
		p.cycleFocus()
		return m, nil
	}

	switch p.focus {
	case focusPhraseInput:
		if msg.String() == "enter" {
			return m.addPhraseFromInput()
		}
		var cmd tea.Cmd
		p.phraseInput, cmd = p.phraseInput.Update(msg)
		return m, cmd

	case focusPhraseList:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
		case "down", "j":
			if p.selected < len(p.phrases)-1 {
				p.selected++
			}
		case "d":
			if p.saving || len(p.phrases) == 0 {
				return m, nil
			}
			p.saving = true
			return m, m.savePhrasesCmd(removePhrase(p.phrases, p.selected))
		}
		return m, nil

	default: // focusSignoff
		if msg.String() == "enter" {
			if p.savingSignoff {
				return m, nil
			}
			p.savingSignoff = true
			return m, m.saveSignoffCmd(strings.TrimSpace(p.signoffInput.Value()))
		}
		var cmd tea.Cmd
		p.signoffInput, cmd = p.signoffInput.Update(msg)
		return m, cmd
	}
}

func (m *AppModel) addPhraseFromInput() (tea.Model, tea.Cmd) {
	p := &m.prefs
	if p.saving {
		// Keep the typed phrase in the input until the in-flight save
		// settles; resetting here would drop it unpersisted.
		return m, m.setStatus("Saving…")
	}
	next, changed := addPhrase(p.phrases, p.phraseInput.Value())
	if !changed {
		if strings.TrimSpace(p.phraseInput.Value()) != "" {
			// Duplicate: a notice, not an error, and no write request.
			return m, m.setStatus("Already in list")
		}
		return m, nil
	}
	p.phraseInput.Reset()
	p.saving = true
	return m, m.savePhrasesCmd(next)
}

func (m *AppModel) updateSubModels(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewList:
		m.collection, cmd = m.collection.Update(msg)
	case viewReview:
		m.review.viewport, cmd = m.review.viewport.Update(msg)
	}
	return m, cmd
}

// setFilter switches the active tab and repopulates the list.
func (m *AppModel) setFilter(f Filter) {
	m.filter = f
	m.syncCollection()
}

func nextFilter(f Filter, delta int) Filter {
	for i, tab := range filterTabs {
		if tab == f {
			n := (i + delta + len(filterTabs)) % len(filterTabs)
			return filterTabs[n]
		}
	}
	return FilterPending
}

// syncCollection rebuilds the visible list items from the collections and
// the active filter.
func (m *AppModel) syncCollection() {
	if m.filter == FilterIgnored {
		m.collection.SetItems(ignoredToItems(m.ignored))
		return
	}
	m.collection.SetItems(draftsToItems(filterDrafts(m.drafts, m.filter)))
}

// Status bar helpers (transient notices, auto-cleared).

func (m *AppModel) setStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusIsErr = false
	return clearStatusAfter(statusClearDelay)
}

func (m *AppModel) setError(text string) tea.Cmd {
	m.statusText = text
	m.statusIsErr = true
	return clearStatusAfter(statusClearDelay)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Commands

func (m *AppModel) checkSessionCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		active, err := client.SessionActive(context.Background())
		return sessionCheckedMsg{active: active, err: err}
	}
}

func (m *AppModel) authorizeCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		url, err := client.AuthorizeURL(context.Background())
		return authURLMsg{url: url, err: err}
	}
}

// logoutCmd is fire-and-forget: the session perception is dropped no
// matter what the server says.
func (m *AppModel) logoutCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.Logout(context.Background()); err != nil {
			log.Printf("logout (ignored): %v", err)
		}
		return loggedOutMsg{}
	}
}

func (m *AppModel) loadDraftsCmd() tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		if cached, ok := cache.Lookup[[]model.DraftSummary](c, cache.KeyDrafts); ok {
			return draftsLoadedMsg{drafts: cached}
		}
		drafts, err := client.ListDrafts(context.Background())
		if err != nil {
			return draftsLoadedMsg{err: err}
		}
		c.Put(cache.KeyDrafts, drafts)
		return draftsLoadedMsg{drafts: drafts}
	}
}

func (m *AppModel) loadIgnoredCmd() tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		if cached, ok := cache.Lookup[[]model.IgnoredEmailSummary](c, cache.KeyIgnoredEmails); ok {
			return ignoredLoadedMsg{emails: cached}
		}
		emails, err := client.ListIgnoredEmails(context.Background())
		if err != nil {
			return ignoredLoadedMsg{err: err}
		}
		c.Put(cache.KeyIgnoredEmails, emails)
		return ignoredLoadedMsg{emails: emails}
	}
}

func (m *AppModel) fetchDetailCmd(emailID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		detail, err := client.GetDraft(context.Background(), emailID)
		return detailLoadedMsg{emailID: emailID, detail: detail, err: err}
	}
}

func (m *AppModel) saveDraftCmd(emailID, subject, body string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.UpdateDraft(context.Background(), emailID, model.UpdateDraftRequest{
			DraftText:    &body,
			DraftSubject: &subject,
		})
		return draftSavedMsg{emailID: emailID, subject: subject, body: body, err: err}
	}
}

func (m *AppModel) rejectCmd(emailID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.RejectDraft(context.Background(), emailID)
		return transitionDoneMsg{action: "reject", emailID: emailID, err: err}
	}
}

func (m *AppModel) skipCmd(emailID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.SkipDraft(context.Background(), emailID)
		return transitionDoneMsg{action: "skip", emailID: emailID, err: err}
	}
}

func (m *AppModel) sendCmd(emailID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.SendDraft(context.Background(), emailID)
		return sendDoneMsg{emailID: emailID, err: err}
	}
}

func (m *AppModel) pollCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return pollDoneMsg{err: client.TriggerPoll(context.Background())}
	}
}

func (m *AppModel) loadPhrasesCmd() tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		if cached, ok := cache.Lookup[[]string](c, cache.KeyIgnorePhrases); ok {
			return phrasesLoadedMsg{phrases: cached}
		}
		phrases, err := client.IgnorePhrases(context.Background())
		if err != nil {
			return phrasesLoadedMsg{err: err}
		}
		c.Put(cache.KeyIgnorePhrases, phrases)
		return phrasesLoadedMsg{phrases: phrases}
	}
}

func (m *AppModel) savePhrasesCmd(phrases []string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return phrasesSavedMsg{err: client.SaveIgnorePhrases(context.Background(), phrases)}
	}
}

func (m *AppModel) loadSignoffCmd() tea.Cmd {
	client, c := m.client, m.cache
	return func() tea.Msg {
		if cached, ok := cache.Lookup[string](c, cache.KeySignoff); ok {
			return signoffLoadedMsg{signoff: cached}
		}
		signoff, err := client.Signoff(context.Background())
		if err != nil {
			return signoffLoadedMsg{err: err}
		}
		c.Put(cache.KeySignoff, signoff)
		return signoffLoadedMsg{signoff: signoff}
	}
}

func (m *AppModel) saveSignoffCmd(signoff string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return signoffSavedMsg{err: client.SaveSignoff(context.Background(), signoff)}
	}
}

// Error message helpers.

func loadErrorText(err error) string {
	if err == nil {
		return ""
	}
	if isNotFound(err) {
		return "Draft not found"
	}
	return "Failed to load draft"
}

func saveErrorText(err error) string {
	if isNotFound(err) {
		return "Draft not found"
	}
	return "Failed to save draft"
}

// sendErrorText surfaces the server's own words for send failures, which
// are actionable (quota, invalid recipient). Anything else collapses to a
// plain message; wrapped transport errors carry URLs that don't belong in
// the status bar.
func sendErrorText(err error) string {
	var sendErr *api.SendError
	if errors.As(err, &sendErr) {
		return sendErr.Message
	}
	if isNotFound(err) {
		return "Draft not found"
	}
	return "Failed to send email"
}

func transitionErrorText(err error, action string) string {
	if isNotFound(err) {
		return "Draft not found"
	}
	return fmt.Sprintf("Failed to %s draft", action)
}

func isNotFound(err error) bool {
	return errors.Is(err, api.ErrNotFound)
}

var oauthErrorMessages = map[string]string{
	"missing_code":      "Sign-in was cancelled or no code was received.",
	"config_incomplete": "Server OAuth is not configured.",
	"exchange_failed":   "Token exchange failed. Try again.",
	"unexpected":        "Something went wrong. Try again.",
}

// oauthErrorMessage maps the backend's error codes to human text; anything
// unrecognized is shown as-is.
func oauthErrorMessage(err error) string {
	msg := err.Error()
	for code, human := range oauthErrorMessages {
		if strings.Contains(msg, code) {
			return human
		}
	}
	return msg
}

// View renders the active view plus the status bar.
func (m *AppModel) View() string {
	if m.Err != nil {
		return "Error: " + m.Err.Error() + "\n"
	}

	var b strings.Builder

	switch m.view {
	case viewChecking:
		return m.spinner.View() + " Checking sign-in…\n"

	case viewLogin:
		b.WriteString(titleStyle.Render("InboxAI"))
		b.WriteString("\n\n")
		b.WriteString("Sign in with your Google account to continue.\n")
		if m.authErr != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(m.authErr))
			b.WriteString("\n")
		}
		if m.authURL != "" {
			b.WriteString("\nIf the browser did not open, visit:\n\n")
			b.WriteString(m.authURL)
			b.WriteString("\n\nPress r after finishing sign-in.\n")
		}
		b.WriteString(footerStyle.Render("s: sign in  r: re-check  q: quit"))

	case viewList:
		b.WriteString(renderTabBar(m.filter, countTabs(m.drafts, m.ignored)))
		b.WriteString("\n\n")
		b.WriteString(m.listBody())
		b.WriteString("\n")
		if ts := m.cache.FetchedAt(cache.KeyDrafts); !ts.IsZero() && m.filter != FilterIgnored {
			b.WriteString(dimStyle.Render("updated " + ts.Format("3:04:05pm")))
		}
		b.WriteString(listFooter())

	case viewReview:
		b.WriteString(m.reviewBody())
		b.WriteString("\n")
		b.WriteString(reviewFooter(m.review))

	case viewPrefs:
		b.WriteString(titleStyle.Render("Preferences"))
		b.WriteString("\n\n")
		if !m.prefs.phrasesLoaded && m.prefs.phrasesErr == "" {
			b.WriteString(m.spinner.View() + " Loading preferences…\n")
		} else if m.prefs.phrasesErr != "" {
			b.WriteString(errorStyle.Render(m.prefs.phrasesErr))
			b.WriteString("\n")
		} else {
			b.WriteString(renderPrefs(m.prefs, m.width))
		}
		b.WriteString(prefsFooter(m.prefs))
	}

	if m.statusText != "" {
		style := statusBarNormalStyle
		if m.statusIsErr {
			style = statusBarErrorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Width(max(0, m.width)).Render(util.Truncate(m.statusText, max(10, m.width-2))))
	}

	return b.String()
}

func (m *AppModel) listBody() string {
	showIgnored := m.filter == FilterIgnored
	if showIgnored {
		if m.ignoredErr != "" {
			return errorStyle.Render(m.ignoredErr)
		}
		if !m.ignoredLoaded {
			return m.spinner.View() + " Loading ignored emails…"
		}
		if len(m.ignored) == 0 {
			return dimStyle.Render(emptyStateMessage(m.filter))
		}
	} else {
		if m.draftsErr != "" {
			return errorStyle.Render(m.draftsErr)
		}
		if !m.draftsLoaded {
			return m.spinner.View() + " Loading drafts…"
		}
		if len(m.collection.Items()) == 0 {
			return dimStyle.Render(emptyStateMessage(m.filter))
		}
	}
	return m.collection.View()
}

func (m *AppModel) reviewBody() string {
	r := m.review

	var b strings.Builder
	b.WriteString(titleStyle.Render("Review Draft"))
	if r.detail != nil && r.detail.Email != nil {
		b.WriteString(dimStyle.Render("  analyzing email from " + util.DisplayNameFromFrom(r.detail.Email.From)))
	}
	b.WriteString("\n\n")

	switch {
	case r.loading:
		b.WriteString(m.spinner.View() + " Loading draft…")
	case r.loadErr != "":
		b.WriteString(errorStyle.Render(r.loadErr))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("esc: back to drafts"))
	case r.editing:
		b.WriteString(headerKeyStyle.Render("Subject"))
		b.WriteString("\n")
		b.WriteString(r.subjectInput.View())
		b.WriteString("\n\n")
		b.WriteString(headerKeyStyle.Render("Body"))
		b.WriteString("\n")
		b.WriteString(r.bodyInput.View())
	default:
		b.WriteString(r.viewport.View())
	}
	return b.String()
}
