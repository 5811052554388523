package submission_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/modules/submission"
)

func seedMemory(t *testing.T, base time.Time, n int, email string, public bool) (*submission.MemoryStorage, []uuid.UUID) {
	t.Helper()

	st := submission.NewMemoryStorage()
	ids := make([]uuid.UUID, n)
	for i := range n {
		s := &submission.Submission{
			ID:            uuid.New(),
			Email:         ptr(email),
			Payload:       map[string]any{"i": i},
			Consent:       true,
			PublicConsent: public && i%2 == 0,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.Create(context.Background(), s))
		ids[i] = s.ID
	}
	return st, ids
}

func TestMemoryStorage_List(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("newest first and cursor continues after the row", func(t *testing.T) {
		t.Parallel()

		st, ids := seedMemory(t, base, 4, "a@example.com", false)
		ctx := context.Background()

		first, err := st.List(ctx, submission.ListFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, ids[3], first[0].ID)
		assert.Equal(t, ids[2], first[1].ID)

		second, err := st.List(ctx, submission.ListFilter{Limit: 10, Cursor: &first[1].ID})
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.Equal(t, ids[1], second[0].ID)
		assert.Equal(t, ids[0], second[1].ID)
	})

	t.Run("unknown cursor yields nothing", func(t *testing.T) {
		t.Parallel()

		st, _ := seedMemory(t, base, 2, "a@example.com", false)
		unknown := uuid.New()
		rows, err := st.List(context.Background(), submission.ListFilter{Limit: 10, Cursor: &unknown})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("ties on created_at are ordered by id", func(t *testing.T) {
		t.Parallel()

		st := submission.NewMemoryStorage()
		low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		high := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
		for _, id := range []uuid.UUID{low, high} {
			require.NoError(t, st.Create(context.Background(), &submission.Submission{ID: id, CreatedAt: base}))
		}

		rows, err := st.List(context.Background(), submission.ListFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, high, rows[0].ID)
		assert.Equal(t, low, rows[1].ID)
	})

	t.Run("filters are inclusive", func(t *testing.T) {
		t.Parallel()

		st, ids := seedMemory(t, base, 5, "a@example.com", false)
		from := base.Add(time.Minute)
		to := base.Add(3 * time.Minute)

		rows, err := st.List(context.Background(), submission.ListFilter{From: &from, To: &to, Limit: 10})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, ids[3], rows[0].ID)
		assert.Equal(t, ids[1], rows[2].ID)

		other := "b@example.com"
		rows, err = st.List(context.Background(), submission.ListFilter{Email: &other, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestMemoryStorage_ListPublic(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st, ids := seedMemory(t, base, 5, "a@example.com", true)

	rows, err := st.ListPublic(context.Background(), submission.PublicFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []uuid.UUID{ids[4], ids[2], ids[0]}, []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID})

	rows, err = st.ListPublic(context.Background(), submission.PublicFilter{Limit: 10, Cursor: &ids[3]})
	require.NoError(t, err)
	assert.Empty(t, rows, "a private row is not a valid public cursor")
}

func TestMemoryStorage_Delete(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st, ids := seedMemory(t, base, 3, "a@example.com", false)
	ctx := context.Background()

	n, err := st.Delete(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.Delete(ctx, ids[0])
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = st.DeleteByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = st.DeleteByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Zero(t, n)
}
