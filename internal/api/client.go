package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnquon/inboxAI/internal/model"
)

// Client talks to the InboxAI backend: draft operations under apiBase,
// session operations under oauthBase. All methods are plain
// request/response with no retries; every call is user-triggered and
// user-visible on failure.
type Client struct {
	apiBase   string
	oauthBase string
	http      *http.Client
}

// New builds a Client for the given base URLs. Trailing slashes are
// stripped so path joining stays predictable.
func New(apiBase, oauthBase string) *Client {
	return &Client{
		apiBase:   strings.TrimRight(apiBase, "/"),
		oauthBase: strings.TrimRight(oauthBase, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, ErrUnreachable)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) draftURL(emailID string, suffix string) string {
	u := c.apiBase + "/drafts/" + url.PathEscape(emailID)
	if suffix != "" {
		u += "/" + suffix
	}
	return u
}

// ListDrafts returns all draft summaries.
func (c *Client) ListDrafts(ctx context.Context) ([]model.DraftSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apiBase+"/drafts", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, fmt.Errorf("load drafts (status %d): %w", resp.StatusCode, ErrFetchFailed)
	}
	var drafts []model.DraftSummary
	if err := decodeJSON(resp, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

// GetDraft returns the full detail for one draft.
func (c *Client) GetDraft(ctx context.Context, emailID string) (*model.DraftDetail, error) {
	resp, err := c.do(ctx, http.MethodGet, c.draftURL(emailID, ""), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp)
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		drain(resp)
		return nil, fmt.Errorf("load draft %s (status %d): %w", emailID, resp.StatusCode, ErrFetchFailed)
	}
	var detail model.DraftDetail
	if err := decodeJSON(resp, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateDraft partially updates draft text and/or subject. A request with
// both fields nil is legal and a server-side no-op.
func (c *Client) UpdateDraft(ctx context.Context, emailID string, update model.UpdateDraftRequest) error {
	resp, err := c.do(ctx, http.MethodPatch, c.draftURL(emailID, ""), update)
	if err != nil {
		return err
	}
	defer drain(resp)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("save draft %s (status %d): %w", emailID, resp.StatusCode, ErrUpdateFailed)
	}
	return nil
}

func (c *Client) transition(ctx context.Context, emailID, action string) error {
	resp, err := c.do(ctx, http.MethodPatch, c.draftURL(emailID, action), nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s draft %s (status %d): %w", action, emailID, resp.StatusCode, ErrTransitionFailed)
	}
	return nil
}

// RejectDraft marks the draft rejected.
func (c *Client) RejectDraft(ctx context.Context, emailID string) error {
	return c.transition(ctx, emailID, "reject")
}

// SkipDraft marks the draft skipped.
func (c *Client) SkipDraft(ctx context.Context, emailID string) error {
	return c.transition(ctx, emailID, "skip")
}

// SendDraft asks the backend to deliver the draft's current content. On
// non-404 failure the server body is surfaced verbatim via SendError.
func (c *Client) SendDraft(ctx context.Context, emailID string) error {
	resp, err := c.do(ctx, http.MethodPost, c.draftURL(emailID, "send"), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "Failed to send email"
		}
		return &SendError{Message: msg}
	}
	return nil
}

// ListIgnoredEmails returns emails excluded from draft generation.
func (c *Client) ListIgnoredEmails(ctx context.Context) ([]model.IgnoredEmailSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apiBase+"/emails/ignored", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, fmt.Errorf("load ignored emails (status %d): %w", resp.StatusCode, ErrFetchFailed)
	}
	var emails []model.IgnoredEmailSummary
	if err := decodeJSON(resp, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// IgnorePhrases returns the ordered ignore-phrase list.
func (c *Client) IgnorePhrases(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apiBase+"/preferences/ignores", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, fmt.Errorf("load ignore preferences (status %d): %w", resp.StatusCode, ErrFetchFailed)
	}
	var phrases []string
	if err := decodeJSON(resp, &phrases); err != nil {
		return nil, err
	}
	return phrases, nil
}

// SaveIgnorePhrases replaces the full ignore-phrase list.
func (c *Client) SaveIgnorePhrases(ctx context.Context, phrases []string) error {
	resp, err := c.do(ctx, http.MethodPut, c.apiBase+"/preferences/ignores", phrases)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save ignore preferences (status %d): %w", resp.StatusCode, ErrUpdateFailed)
	}
	return nil
}

// Signoff returns the default sign-off string.
func (c *Client) Signoff(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apiBase+"/preferences/signoff", nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return "", fmt.Errorf("load sign-off preference (status %d): %w", resp.StatusCode, ErrFetchFailed)
	}
	var signoff string
	if err := decodeJSON(resp, &signoff); err != nil {
		return "", err
	}
	return signoff, nil
}

// SaveSignoff replaces the default sign-off string.
func (c *Client) SaveSignoff(ctx context.Context, signoff string) error {
	resp, err := c.do(ctx, http.MethodPut, c.apiBase+"/preferences/signoff", signoff)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save sign-off preference (status %d): %w", resp.StatusCode, ErrUpdateFailed)
	}
	return nil
}

// TriggerPoll asks the backend to poll the inbox for new mail now.
func (c *Client) TriggerPoll(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.apiBase+"/gmail/poll", nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("poll trigger (status %d): %w", resp.StatusCode, ErrFetchFailed)
	}
	return nil
}

// SessionActive reports whether the backend considers us signed in. Any
// non-2xx means unauthenticated; only transport failures are errors.
func (c *Client) SessionActive(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, c.oauthBase+"/status", nil)
	if err != nil {
		return false, err
	}
	drain(resp)
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

type authorizeResponse struct {
	AuthURL string `json:"authUrl"`
	Error   string `json:"error"`
}

// AuthorizeURL fetches the sign-in redirect URL from the backend.
func (c *Client) AuthorizeURL(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.oauthBase+"/authorize", nil)
	if err != nil {
		return "", err
	}
	var body authorizeResponse
	if err := decodeJSON(resp, &body); err != nil {
		return "", err
	}
	if body.AuthURL == "" {
		msg := body.Error
		if msg == "" {
			msg = "Could not get sign-in URL"
		}
		return "", fmt.Errorf("%s: %w", msg, ErrFetchFailed)
	}
	return body.AuthURL, nil
}

// Logout ends the server session. Best effort: callers ignore the result
// and drop their local session perception regardless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, c.oauthBase+"/logout", nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}
