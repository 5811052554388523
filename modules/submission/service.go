package submission

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formintake/pkg/fingerprint"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/sanitizer"
)

// Config holds the service settings that come from the environment.
type Config struct {
	// IPSalt is appended to client addresses before hashing.
	IPSalt string
}

type Service struct {
	storage Storage
	cfg     Config
	log     *slog.Logger
}

func NewService(storage Storage, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		storage: storage,
		cfg:     cfg,
		log:     log.With(logger.Component("submission")),
	}
}

var sanitizeName = sanitizer.Compose(sanitizer.Trim, sanitizer.StripAngleBrackets, sanitizer.NormalizeUnicode)

// Create validates and stores a new submission and returns its id.
// Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (uuid.UUID, error) {
	req := in.Request
	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	sub := &Submission{
		ID:            uuid.New(),
		Payload:       sanitizer.JSONObject(req.Payload),
		Consent:       true,
		PublicConsent: req.PublicConsent != nil && *req.PublicConsent,
	}
	if req.Email != nil {
		email := sanitizer.Email(*req.Email)
		sub.Email = &email
	}
	if req.Name != nil {
		if name := sanitizeName(*req.Name); name != "" {
			sub.Name = &name
		}
	}
	if hash, ok := fingerprint.HashIP(in.ClientIP, s.cfg.IPSalt); ok {
		sub.IPHash = &hash
	}
	if in.UserAgent != "" {
		ua := sanitizer.MaxLength(in.UserAgent, MaxUserAgentLength)
		sub.UserAgent = &ua
	}

	if err := s.storage.Create(ctx, sub); err != nil {
		return uuid.Nil, errors.Join(ErrFailedToCreate, err)
	}

	s.log.InfoContext(ctx, "submission created",
		logger.SubmissionID(sub.ID.String()),
		slog.Bool("public_consent", sub.PublicConsent),
	)
	return sub.ID, nil
}

// List returns one page of the admin listing.
func (s *Service) List(ctx context.Context, f ListFilter) (Page, error) {
	f.Limit = pageSize(f.Limit)
	limit := f.Limit
	f.Limit++

	rows, err := s.storage.List(ctx, f)
	if err != nil {
		return Page{}, errors.Join(ErrFailedToList, err)
	}

	rows, next := paginate(rows, limit, func(s Submission) uuid.UUID { return s.ID })
	return Page{
		Data:       rows,
		Pagination: Pagination{HasNext: next != nil, NextCursor: next},
	}, nil
}

// ListPublic returns one page of submissions whose authors agreed to be
// listed publicly.
func (s *Service) ListPublic(ctx context.Context, f PublicFilter) (PublicPage, error) {
	f.Limit = pageSize(f.Limit)
	limit := f.Limit
	f.Limit++

	rows, err := s.storage.ListPublic(ctx, f)
	if err != nil {
		return PublicPage{}, errors.Join(ErrFailedToList, err)
	}

	rows, next := paginate(rows, limit, func(s PublicSubmission) uuid.UUID { return s.ID })
	return PublicPage{Data: rows, NextCursor: next}, nil
}

// Delete removes a single submission. ErrNotFound is returned when no row
// had the given id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.storage.Delete(ctx, id)
	if err != nil {
		return errors.Join(ErrFailedToDelete, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.log.InfoContext(ctx, "submission deleted", logger.SubmissionID(id.String()))
	return nil
}

// DeleteByEmail removes every submission sent with email and reports how
// many were removed.
func (s *Service) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	n, err := s.storage.DeleteByEmail(ctx, email)
	if err != nil {
		return 0, errors.Join(ErrFailedToDelete, err)
	}

	s.log.InfoContext(ctx, "submissions deleted by email", logger.Count(int(n)))
	return n, nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return sanitizer.Clamp(limit, 1, MaxPageSize)
}

// paginate trims a limit+1 result to limit rows. The returned cursor is the
// id of the last kept row when a further row exists, nil otherwise.
func paginate[T any](rows []T, limit int, id func(T) uuid.UUID) ([]T, *uuid.UUID) {
	if rows == nil {
		rows = []T{}
	}
	if len(rows) <= limit {
		return rows, nil
	}

	rows = rows[:limit]
	next := id(rows[limit-1])
	return rows, &next
}
