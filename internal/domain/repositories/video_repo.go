package repositories

import (
	"context"
	"errors"
	"time"

	"video-share/internal/domain/dto"
)

// ErrDuplicateTitle is returned by Create and UpdateFields when the
// title collides with another non-deleted record.
var ErrDuplicateTitle = errors.New("title already in use")

type VideoRepository interface {
	// Create persists a new record. Returns ErrDuplicateTitle when the
	// unique title constraint rejects the insert.
	Create(ctx context.Context, video *dto.VideoDTO) error

	// GetByID returns the record, or (nil, nil) when absent.
	GetByID(ctx context.Context, videoID string) (*dto.VideoDTO, error)

	// TitleExists reports whether a non-deleted record holds the title.
	TitleExists(ctx context.Context, title string) (bool, error)

	// ListByStatus returns all records with the status, ordered by
	// title ascending.
	ListByStatus(ctx context.Context, status string) ([]dto.VideoDTO, error)

	// UpdateFields writes only the non-nil patch columns. Returns
	// ErrDuplicateTitle when a title change collides.
	UpdateFields(ctx context.Context, videoID string, patch *dto.VideoPatchDTO) error

	// UpdateStatus transitions status from one value to another and
	// reports whether a row was updated. The compare-and-set guard
	// keeps transitions moving forward under concurrency.
	UpdateStatus(ctx context.Context, videoID, from, to string) (bool, error)

	// MarkStalePendingDeleted soft-deletes pending records created
	// before the cutoff and returns how many rows changed.
	MarkStalePendingDeleted(ctx context.Context, cutoff time.Time) (int64, error)
}
