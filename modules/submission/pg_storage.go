package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGStorage struct {
	db DBTX
}

func NewPGStorage(db DBTX) *PGStorage {
	return &PGStorage{db: db}
}

const insertSubmission = `
INSERT INTO submissions (id, name, email, payload, consent, public_consent, ip_hash, user_agent)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at`

func (s *PGStorage) Create(ctx context.Context, sub *Submission) error {
	err := s.db.QueryRow(ctx, insertSubmission,
		sub.ID, sub.Name, sub.Email, sub.Payload, sub.Consent, sub.PublicConsent, sub.IPHash, sub.UserAgent,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// The cursor subquery yields NULL for an unknown id, which makes the row
// comparison NULL and filters every row out.
const listSubmissions = `
SELECT id, name, email, payload, consent, public_consent, ip_hash, user_agent, created_at
FROM submissions
WHERE ($1::timestamptz IS NULL OR created_at >= $1)
  AND ($2::timestamptz IS NULL OR created_at <= $2)
  AND ($3::text IS NULL OR email = $3)
  AND ($4::uuid IS NULL OR (created_at, id) < (SELECT c.created_at, c.id FROM submissions c WHERE c.id = $4))
ORDER BY created_at DESC, id DESC
LIMIT $5`

func (s *PGStorage) List(ctx context.Context, f ListFilter) ([]Submission, error) {
	rows, err := s.db.Query(ctx, listSubmissions, f.From, f.To, f.Email, f.Cursor, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Submission, error) {
		var sub Submission
		err := row.Scan(
			&sub.ID, &sub.Name, &sub.Email, &sub.Payload, &sub.Consent,
			&sub.PublicConsent, &sub.IPHash, &sub.UserAgent, &sub.CreatedAt,
		)
		return sub, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan submissions: %w", err)
	}
	return out, nil
}

const listPublicSubmissions = `
SELECT id, name, created_at
FROM submissions
WHERE public_consent
  AND ($1::uuid IS NULL OR (created_at, id) < (SELECT c.created_at, c.id FROM submissions c WHERE c.id = $1 AND c.public_consent))
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (s *PGStorage) ListPublic(ctx context.Context, f PublicFilter) ([]PublicSubmission, error) {
	rows, err := s.db.Query(ctx, listPublicSubmissions, f.Cursor, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("query public submissions: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PublicSubmission, error) {
		var sub PublicSubmission
		err := row.Scan(&sub.ID, &sub.Name, &sub.CreatedAt)
		return sub, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan public submissions: %w", err)
	}
	return out, nil
}

func (s *PGStorage) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete submission: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PGStorage) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM submissions WHERE email = $1`, email)
	if err != nil {
		return 0, fmt.Errorf("delete submissions by email: %w", err)
	}
	return tag.RowsAffected(), nil
}
