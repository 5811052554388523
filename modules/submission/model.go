package submission

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	MaxEmailLength     = 320
	MaxNameLength      = 120
	MaxUserAgentLength = 255
)

// Submission is one stored form submission. It is never modified after
// creation.
type Submission struct {
	ID            uuid.UUID      `json:"id"`
	Name          *string        `json:"name"`
	Email         *string        `json:"email"`
	Payload       map[string]any `json:"payload"`
	Consent       bool           `json:"consent"`
	PublicConsent bool           `json:"publicConsent"`
	IPHash        *string        `json:"ipHash"`
	UserAgent     *string        `json:"userAgent"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// PublicSubmission is the subset of a submission shown without
// authentication.
type PublicSubmission struct {
	ID        uuid.UUID `json:"id"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateInput carries a validated-to-be request plus transport metadata.
type CreateInput struct {
	Request   CreateRequest
	ClientIP  string
	UserAgent string
}

// ListFilter selects rows for the admin listing. Nil fields do not filter.
// From and To are inclusive.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Email  *string
	Cursor *uuid.UUID
	Limit  int
}

// PublicFilter selects rows for the public listing.
type PublicFilter struct {
	Cursor *uuid.UUID
	Limit  int
}

type Pagination struct {
	HasNext    bool       `json:"hasNext"`
	NextCursor *uuid.UUID `json:"nextCursor"`
}

// Page is the admin listing response body.
type Page struct {
	Data       []Submission `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// PublicPage is the public listing response body.
type PublicPage struct {
	Data       []PublicSubmission `json:"data"`
	NextCursor *uuid.UUID         `json:"nextCursor"`
}

type CreateResponse struct {
	ID uuid.UUID `json:"id"`
}

type DeleteByEmailResponse struct {
	Deleted int64 `json:"deleted"`
}
