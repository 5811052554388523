package submission

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formintake/pkg/sanitizer"
	"github.com/dmitrymomot/formintake/pkg/validator"
)

const (
	msgConsentRequired = "consent is required and must be a boolean"
	msgConsentDenied   = "consent must be granted"
)

// CreateRequest is the body of POST /api/submissions. Pointers tell an
// absent field apart from its zero value.
type CreateRequest struct {
	Email         *string        `json:"email"`
	Name          *string        `json:"name"`
	Payload       map[string]any `json:"payload"`
	Consent       *bool          `json:"consent"`
	PublicConsent *bool          `json:"publicConsent"`
}

func (r CreateRequest) Validate() error {
	rules := []validator.Rule{
		validator.RequiredMap("payload", r.Payload),
		validator.Present("consent", r.Consent, msgConsentRequired),
	}
	if r.Consent != nil {
		rules = append(rules, validator.True("consent", *r.Consent, msgConsentDenied))
	}
	if r.Email != nil {
		rules = append(rules,
			validator.ValidEmail("email", *r.Email),
			validator.MaxLenString("email", *r.Email, MaxEmailLength),
		)
	}
	if r.Name != nil {
		rules = append(rules, validator.MaxLenString("name", *r.Name, MaxNameLength))
	}
	return validator.Apply(rules...)
}

// ListRequest is the query of GET /api/submissions. Values stay strings so
// that malformed input is reported per field instead of as a bind failure.
type ListRequest struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Email  string `query:"email"`
	Cursor string `query:"cursor"`
	Limit  string `query:"limit"`
}

// Filter validates the query and converts it into a ListFilter.
func (r ListRequest) Filter() (ListFilter, error) {
	f := ListFilter{Limit: DefaultPageSize}

	rules := append([]validator.Rule{},
		validator.When(r.From != "", validator.ValidRFC3339("from", r.From))...)
	rules = append(rules, validator.When(r.To != "", validator.ValidRFC3339("to", r.To))...)
	rules = append(rules, validator.When(r.Email != "", validator.ValidEmail("email", r.Email))...)
	rules = append(rules, validator.When(r.Cursor != "", validator.ValidUUID("cursor", r.Cursor))...)
	if err := validator.Apply(rules...); err != nil {
		return ListFilter{}, err
	}

	if r.Limit != "" {
		if err := validator.Apply(validator.Integer("limit", r.Limit)); err != nil {
			return ListFilter{}, err
		}
		limit, _ := strconv.Atoi(strings.TrimSpace(r.Limit))
		if err := validator.Apply(
			validator.MinNum("limit", limit, 1),
			validator.MaxNum("limit", limit, MaxPageSize),
		); err != nil {
			return ListFilter{}, err
		}
		f.Limit = limit
	}

	if r.From != "" {
		from, _ := time.Parse(time.RFC3339Nano, r.From)
		f.From = &from
	}
	if r.To != "" {
		to, _ := time.Parse(time.RFC3339Nano, r.To)
		f.To = &to
	}
	if f.From != nil && f.To != nil {
		if err := validator.Apply(validator.DateBeforeOrEqual("from", *f.From, *f.To)); err != nil {
			return ListFilter{}, err
		}
	}
	if r.Email != "" {
		email := sanitizer.Email(r.Email)
		f.Email = &email
	}
	if r.Cursor != "" {
		cursor := uuid.MustParse(r.Cursor)
		f.Cursor = &cursor
	}
	return f, nil
}

// PublicListRequest is the query of GET /api/public/submissions.
type PublicListRequest struct {
	Cursor string `query:"cursor"`
	Limit  string `query:"limit"`
}

// Filter clamps the limit instead of rejecting it; only a malformed cursor
// is an error.
func (r PublicListRequest) Filter() (PublicFilter, error) {
	f := PublicFilter{Limit: DefaultPageSize}

	if n, err := strconv.Atoi(strings.TrimSpace(r.Limit)); err == nil && n >= 1 {
		f.Limit = min(n, MaxPageSize)
	}

	if r.Cursor != "" {
		if err := validator.Apply(validator.ValidUUID("cursor", r.Cursor)); err != nil {
			return PublicFilter{}, err
		}
		cursor := uuid.MustParse(r.Cursor)
		f.Cursor = &cursor
	}
	return f, nil
}

type DeleteRequest struct {
	ID string `path:"id"`
}

type DeleteByEmailRequest struct {
	Email string `path:"email"`
}
