package submission

import (
	"context"

	"github.com/google/uuid"
)

// Storage persists submissions.
//
// List and ListPublic return rows ordered by created_at then id, both
// descending, strictly after the row identified by the cursor. A cursor
// that matches no row yields no rows. The limit is applied as given; the
// service asks for one extra row to detect a following page.
type Storage interface {
	// Create inserts s and sets s.CreatedAt from the database.
	Create(ctx context.Context, s *Submission) error
	List(ctx context.Context, f ListFilter) ([]Submission, error)
	ListPublic(ctx context.Context, f PublicFilter) ([]PublicSubmission, error)
	// Delete reports the number of removed rows, zero or one.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}
