package submission

import "errors"

var (
	ErrNotFound       = errors.New("submission not found")
	ErrFailedToCreate = errors.New("failed to create submission")
	ErrFailedToList   = errors.New("failed to list submissions")
	ErrFailedToDelete = errors.New("failed to delete submissions")
)
