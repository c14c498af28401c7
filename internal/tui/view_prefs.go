package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// prefsFocus is which control on the preferences view has keyboard focus.
type prefsFocus int

const (
	focusPhraseInput prefsFocus = iota
	focusPhraseList
	focusSignoff
)

// prefsState backs the preferences view: the ignore-phrase list persists on
// every change; the sign-off is buffered and persists on Enter.
type prefsState struct {
	phrases       []string
	phrasesLoaded bool
	phrasesErr    string
	phraseInput   textinput.Model
	selected      int
	saving        bool

	// persistedSignoff is the last value the backend confirmed. The input
	// buffer is re-seeded only when this changes, so a background refresh
	// never clobbers an edit in progress.
	persistedSignoff string
	signoffLoaded    bool
	signoffInput     textinput.Model
	savingSignoff    bool

	focus prefsFocus
}

func newPrefsState() prefsState {
	pi := textinput.New()
	pi.Placeholder = "e.g. github emails, newsletters"
	pi.Focus()

	si := textinput.New()
	si.Placeholder = "e.g. Sincerely, Your Name"

	return prefsState{
		phraseInput:  pi,
		signoffInput: si,
		focus:        focusPhraseInput,
	}
}

// cycleFocus moves focus phrase input -> phrase list -> sign-off input.
func (p *prefsState) cycleFocus() {
	p.phraseInput.Blur()
	p.signoffInput.Blur()
	switch p.focus {
	case focusPhraseInput:
		if len(p.phrases) > 0 {
			p.focus = focusPhraseList
		} else {
			p.focus = focusSignoff
			p.signoffInput.Focus()
		}
	case focusPhraseList:
		p.focus = focusSignoff
		p.signoffInput.Focus()
	default:
		p.focus = focusPhraseInput
		p.phraseInput.Focus()
	}
}

// seedSignoff applies a freshly persisted value. The buffer follows only
// when the persisted value itself changed.
func (p *prefsState) seedSignoff(value string) {
	if p.signoffLoaded && value == p.persistedSignoff {
		return
	}
	p.persistedSignoff = value
	p.signoffLoaded = true
	p.signoffInput.SetValue(value)
}

// addPhrase returns phrases with raw appended, after trimming. It reports
// whether the list changed: empty input and exact duplicates are no-ops.
func addPhrase(phrases []string, raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return phrases, false
	}
	for _, p := range phrases {
		if p == trimmed {
			return phrases, false
		}
	}
	out := make([]string, 0, len(phrases)+1)
	out = append(out, phrases...)
	out = append(out, trimmed)
	return out, true
}

// removePhrase deletes the phrase at idx, ignoring out-of-range indexes.
func removePhrase(phrases []string, idx int) []string {
	if idx < 0 || idx >= len(phrases) {
		return phrases
	}
	out := make([]string, 0, len(phrases)-1)
	out = append(out, phrases[:idx]...)
	out = append(out, phrases[idx+1:]...)
	return out
}

func renderPrefs(p prefsState, width int) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("EMAIL IGNORE RULES"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Emails matching these plain-English rules are not sent to draft generation."))
	b.WriteString("\n\n")
	b.WriteString(p.phraseInput.View())
	b.WriteString("\n\n")
	if p.saving {
		b.WriteString(dimStyle.Render("Saving…"))
		b.WriteString("\n")
	}
	if len(p.phrases) == 0 {
		b.WriteString(dimStyle.Render("No ignore rules yet. Add one above."))
		b.WriteString("\n")
	}
	for i, phrase := range p.phrases {
		cursor := "  "
		if p.focus == focusPhraseList && i == p.selected {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, phrase))
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(1, width/2)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("EMAIL SIGN-OFF"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Default closing line(s) appended to generated drafts."))
	b.WriteString("\n\n")
	b.WriteString(p.signoffInput.View())
	if p.savingSignoff {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Saving…"))
	}
	b.WriteString("\n")
	return b.String()
}

func prefsFooter(p prefsState) string {
	switch p.focus {
	case focusPhraseList:
		return footerStyle.Render("↑↓: select  d: remove  tab: next field  esc: back")
	case focusSignoff:
		return footerStyle.Render("enter: save sign-off  tab: next field  esc: back")
	default:
		return footerStyle.Render("enter: add rule  tab: next field  esc: back")
	}
}
