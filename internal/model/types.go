package model

// DraftSummary is one row from GET /drafts: an email known to the system
// plus whatever draft metadata the backend has for it. Status is a raw
// string; canonicalize it with the status package before comparing.
type DraftSummary struct {
	EmailID      string `json:"emailId"`
	Subject      string `json:"subject,omitempty"`
	From         string `json:"from,omitempty"`
	DraftSubject string `json:"draftSubject,omitempty"`
	Snippet      string `json:"snippet,omitempty"`
	Status       string `json:"status,omitempty"`
	GeneratedAt  string `json:"generatedAt,omitempty"`
	Category     string `json:"category,omitempty"`
}

// EmailPart is the original-email facet of a draft detail.
type EmailPart struct {
	ID      string `json:"id,omitempty"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	Date    string `json:"date,omitempty"`
}

// DraftPart is the generated-draft facet of a draft detail.
type DraftPart struct {
	DraftText    string `json:"draftText,omitempty"`
	DraftSubject string `json:"draftSubject,omitempty"`
	Status       string `json:"status,omitempty"`
	GeneratedAt  string `json:"generatedAt,omitempty"`
	Category     string `json:"category,omitempty"`
}

// DraftDetail is the full record from GET /drafts/:id. The draft facet may
// be nil when the email exists but no draft has been generated yet.
type DraftDetail struct {
	Email *EmailPart `json:"email,omitempty"`
	Draft *DraftPart `json:"draft,omitempty"`
}

// UpdateDraftRequest is the PATCH /drafts/:id payload. Nil fields are
// omitted so the backend only touches what the user actually edited.
type UpdateDraftRequest struct {
	DraftText    *string `json:"draftText,omitempty"`
	DraftSubject *string `json:"draftSubject,omitempty"`
}

// IgnoredEmailSummary is one row from GET /emails/ignored. Membership in
// the collection is the state; there is no status field.
type IgnoredEmailSummary struct {
	EmailID string `json:"emailId"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject,omitempty"`
	Date    string `json:"date,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}
