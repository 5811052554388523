package submission

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps submissions in process. It follows the same ordering
// and cursor rules as PGStorage and backs tests and database-less local
// runs.
type MemoryStorage struct {
	mu   sync.RWMutex
	rows []Submission
	now  func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{now: time.Now}
}

func (m *MemoryStorage) Create(_ context.Context, s *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now().UTC()
	}
	stored := *s
	stored.Payload = maps.Clone(s.Payload)
	m.rows = append(m.rows, stored)
	return nil
}

func (m *MemoryStorage) List(_ context.Context, f ListFilter) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	match := func(s Submission) bool {
		if f.From != nil && s.CreatedAt.Before(*f.From) {
			return false
		}
		if f.To != nil && s.CreatedAt.After(*f.To) {
			return false
		}
		if f.Email != nil && (s.Email == nil || *s.Email != *f.Email) {
			return false
		}
		return true
	}
	return page(m.sorted(), f.Cursor, f.Limit, match, func(s Submission) Submission { return s }), nil
}

func (m *MemoryStorage) ListPublic(_ context.Context, f PublicFilter) ([]PublicSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	public := func(s Submission) bool { return s.PublicConsent }
	rows := m.sorted()
	if f.Cursor != nil {
		if i := slices.IndexFunc(rows, func(s Submission) bool { return s.ID == *f.Cursor }); i < 0 || !rows[i].PublicConsent {
			return []PublicSubmission{}, nil
		}
	}
	return page(rows, f.Cursor, f.Limit, public, func(s Submission) PublicSubmission {
		return PublicSubmission{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
	}), nil
}

func (m *MemoryStorage) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(s Submission) bool { return s.ID == id })
	return int64(before - len(m.rows)), nil
}

func (m *MemoryStorage) DeleteByEmail(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(s Submission) bool { return s.Email != nil && *s.Email == email })
	return int64(before - len(m.rows)), nil
}

// sorted returns a copy ordered by created_at DESC, id DESC.
func (m *MemoryStorage) sorted() []Submission {
	rows := slices.Clone(m.rows)
	slices.SortFunc(rows, func(a, b Submission) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})
	return rows
}

// page applies cursor, filter and limit to rows already in listing order.
func page[T any](rows []Submission, cursor *uuid.UUID, limit int, match func(Submission) bool, conv func(Submission) T) []T {
	start := 0
	if cursor != nil {
		i := slices.IndexFunc(rows, func(s Submission) bool { return s.ID == *cursor })
		if i < 0 {
			return []T{}
		}
		start = i + 1
	}

	out := make([]T, 0, min(limit, len(rows)))
	for _, s := range rows[start:] {
		if len(out) >= limit {
			break
		}
		if match(s) {
			out = append(out, conv(s))
		}
	}
	return out
}
