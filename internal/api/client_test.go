package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnquon/inboxAI/internal/model"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL+"/api", srv.URL+"/oauth"), srv
}

func TestListDrafts(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/drafts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"emailId":"e1","subject":"Hello","from":"Ada <ada@example.com>","status":"Pending"},
			{"emailId":"e2","subject":"Re: Invoice","status":"ACCEPTED","category":"billing"}
		]`)
	}))
	defer srv.Close()

	drafts, err := c.ListDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "e1", drafts[0].EmailID)
	assert.Equal(t, "Ada <ada@example.com>", drafts[0].From)
	assert.Equal(t, "ACCEPTED", drafts[1].Status)
	assert.Equal(t, "billing", drafts[1].Category)
}

func TestListDraftsServerError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.ListDrafts(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestGetDraft(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/drafts/e1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"email":{"id":"e1","from":"Ada <ada@example.com>","subject":"Hello","body":"<p>Hi</p>"},
			"draft":{"draftText":"Thanks!","draftSubject":"Re: Hello","status":"Pending"}
		}`)
	}))
	defer srv.Close()

	detail, err := c.GetDraft(context.Background(), "e1")
	require.NoError(t, err)
	require.NotNil(t, detail.Email)
	require.NotNil(t, detail.Draft)
	assert.Equal(t, "Thanks!", detail.Draft.DraftText)
	assert.Equal(t, "<p>Hi</p>", detail.Email.Body)
}

func TestGetDraftNotFound(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := c.GetDraft(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetDraftEscapesID(t *testing.T) {
	var gotPath string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := c.GetDraft(context.Background(), "id/with slash")
	require.NoError(t, err)
	assert.Equal(t, "/api/drafts/id%2Fwith%20slash", gotPath)
}

func TestUpdateDraftPartialPayload(t *testing.T) {
	var got map[string]any
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	body := "New body"
	err := c.UpdateDraft(context.Background(), "e1", model.UpdateDraftRequest{DraftText: &body})
	require.NoError(t, err)

	// Only the field the caller set crosses the wire.
	assert.Equal(t, map[string]any{"draftText": "New body"}, got)
}

func TestUpdateDraftNotFound(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := c.UpdateDraft(context.Background(), "missing", model.UpdateDraftRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitions(t *testing.T) {
	var gotMethod, gotPath string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	require.NoError(t, c.RejectDraft(context.Background(), "e1"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/drafts/e1/reject", gotPath)

	require.NoError(t, c.SkipDraft(context.Background(), "e2"))
	assert.Equal(t, "/api/drafts/e2/skip", gotPath)
}

func TestTransitionFailure(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	err := c.RejectDraft(context.Background(), "e1")
	assert.ErrorIs(t, err, ErrTransitionFailed)
}

func TestSendDraft(t *testing.T) {
	var gotMethod, gotPath string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	require.NoError(t, c.SendDraft(context.Background(), "e1"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/drafts/e1/send", gotPath)
}

func TestSendDraftSurfacesServerMessage(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "Daily sending quota exceeded")
	}))
	defer srv.Close()

	err := c.SendDraft(context.Background(), "e1")
	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "Daily sending quota exceeded", sendErr.Message)
	assert.Equal(t, "Daily sending quota exceeded", err.Error())
}

func TestSendDraftEmptyBodyFallback(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := c.SendDraft(context.Background(), "e1")
	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "Failed to send email", sendErr.Message)
}

func TestSendDraftNotFound(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := c.SendDraft(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	var sendErr *SendError
	assert.False(t, errors.As(err, &sendErr))
}

func TestIgnorePhrasesRoundTrip(t *testing.T) {
	var gotMethod string
	var gotBody []string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/preferences/ignores", r.URL.Path)
		gotMethod = r.Method
		if r.Method == http.MethodPut {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `["newsletters","github emails"]`)
	}))
	defer srv.Close()

	phrases, err := c.IgnorePhrases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"newsletters", "github emails"}, phrases)

	require.NoError(t, c.SaveIgnorePhrases(context.Background(), []string{"newsletters"}))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, []string{"newsletters"}, gotBody)
}

func TestSignoffRoundTrip(t *testing.T) {
	var gotBody string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/preferences/signoff", r.URL.Path)
		if r.Method == http.MethodPut {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `"Best,\nAda"`)
	}))
	defer srv.Close()

	signoff, err := c.Signoff(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Best,\nAda", signoff)

	require.NoError(t, c.SaveSignoff(context.Background(), "Cheers"))
	assert.Equal(t, "Cheers", gotBody)
}

func TestTriggerPoll(t *testing.T) {
	var gotPath string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	require.NoError(t, c.TriggerPoll(context.Background()))
	assert.Equal(t, "/api/gmail/poll", gotPath)
}

func TestSessionActive(t *testing.T) {
	active := true
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/status", r.URL.Path)
		if !active {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	got, err := c.SessionActive(context.Background())
	require.NoError(t, err)
	assert.True(t, got)

	active = false
	got, err = c.SessionActive(context.Background())
	require.NoError(t, err)
	assert.False(t, got)
}

func TestAuthorizeURL(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/authorize", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"authUrl":"https://accounts.example.com/auth"}`)
	}))
	defer srv.Close()

	url, err := c.AuthorizeURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com/auth", url)
}

func TestAuthorizeURLErrorCode(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"error":"config_incomplete"}`)
	}))
	defer srv.Close()

	_, err := c.AuthorizeURL(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "config_incomplete")
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately dead

	c := New(srv.URL+"/api", srv.URL+"/oauth")
	_, err := c.ListDrafts(context.Background())
	assert.ErrorIs(t, err, ErrUnreachable)
}
