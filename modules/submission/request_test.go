package submission_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/modules/submission"
	"github.com/dmitrymomot/formintake/pkg/validator"
)

func TestListRequest_Filter(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, err := submission.ListRequest{}.Filter()
		require.NoError(t, err)
		assert.Equal(t, submission.ListFilter{Limit: submission.DefaultPageSize}, f)
	})

	t.Run("parses every field", func(t *testing.T) {
		t.Parallel()

		f, err := submission.ListRequest{
			From:   "2024-01-01T00:00:00Z",
			To:     "2024-01-31T23:59:59.5+01:00",
			Email:  "ada@example.com",
			Cursor: "7d444840-9dc0-11d1-b245-5ffdce74fad2",
			Limit:  "50",
		}.Filter()
		require.NoError(t, err)

		assert.Equal(t, 50, f.Limit)
		assert.True(t, f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		require.NotNil(t, f.To)
		require.NotNil(t, f.Email)
		assert.Equal(t, "ada@example.com", *f.Email)
		require.NotNil(t, f.Cursor)
		assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", f.Cursor.String())
	})

	t.Run("email is normalized like stored emails", func(t *testing.T) {
		t.Parallel()

		f, err := submission.ListRequest{Email: "jose\u0301@example.com"}.Filter()
		require.NoError(t, err)
		require.NotNil(t, f.Email)
		assert.Equal(t, "jos\u00e9@example.com", *f.Email)
	})

	t.Run("equal bounds are allowed", func(t *testing.T) {
		t.Parallel()

		_, err := submission.ListRequest{From: "2024-01-01T00:00:00Z", To: "2024-01-01T00:00:00Z"}.Filter()
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		req   submission.ListRequest
		field string
	}{
		{"from after to", submission.ListRequest{From: "2024-02-01T00:00:00Z", To: "2024-01-01T00:00:00Z"}, "from"},
		{"bad from", submission.ListRequest{From: "yesterday"}, "from"},
		{"bad to", submission.ListRequest{To: "2024-13-01"}, "to"},
		{"bad email", submission.ListRequest{Email: "nope"}, "email"},
		{"bad cursor", submission.ListRequest{Cursor: "42"}, "cursor"},
		{"limit not a number", submission.ListRequest{Limit: "ten"}, "limit"},
		{"limit zero", submission.ListRequest{Limit: "0"}, "limit"},
		{"limit too large", submission.ListRequest{Limit: "101"}, "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.req.Filter()
			require.Error(t, err)
			verrs := validator.ExtractValidationErrors(err)
			require.NotNil(t, verrs)
			assert.Equal(t, []string{tt.field}, verrs.Fields())
		})
	}
}

func TestPublicListRequest_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit string
		want  int
	}{
		{"", submission.DefaultPageSize},
		{"abc", submission.DefaultPageSize},
		{"0", submission.DefaultPageSize},
		{"-3", submission.DefaultPageSize},
		{"7", 7},
		{"100", 100},
		{"500", submission.MaxPageSize},
	}
	for _, tt := range tests {
		t.Run("limit "+tt.limit, func(t *testing.T) {
			t.Parallel()

			f, err := submission.PublicListRequest{Limit: tt.limit}.Filter()
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Limit)
			assert.Nil(t, f.Cursor)
		})
	}

	t.Run("rejects a malformed cursor", func(t *testing.T) {
		t.Parallel()

		_, err := submission.PublicListRequest{Cursor: "abc"}.Filter()
		assert.True(t, validator.IsValidationError(err))
	})
}
