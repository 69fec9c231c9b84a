package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"video-share/internal/domain/dto"
	domain_repo "video-share/internal/domain/repositories"
	"video-share/pkg/constants"
)

// InMemoryVideoRepository mirrors the Postgres repository semantics,
// including the non-deleted title uniqueness rule, for tests and local
// runs without a database.
type InMemoryVideoRepository struct {
	mu   sync.RWMutex
	data map[string]*dto.VideoDTO
}

func NewInMemoryVideoRepository() *InMemoryVideoRepository {
	return &InMemoryVideoRepository{
		data: make(map[string]*dto.VideoDTO),
	}
}

func (r *InMemoryVideoRepository) titleTaken(title, excludeID string) bool {
	for _, v := range r.data {
		if v.VideoID == excludeID || v.Status == constants.StatusDeleted {
			continue
		}
		if v.Title == title {
			return true
		}
	}
	return false
}

func (r *InMemoryVideoRepository) Create(ctx context.Context, video *dto.VideoDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(video.Title, "") {
		return domain_repo.ErrDuplicateTitle
	}
	copied := *video
	r.data[video.VideoID] = &copied
	return nil
}

func (r *InMemoryVideoRepository) GetByID(ctx context.Context, videoID string) (*dto.VideoDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	video, exists := r.data[videoID]
	if !exists {
		return nil, nil
	}
	copied := *video
	return &copied, nil
}

func (r *InMemoryVideoRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.titleTaken(title, ""), nil
}

func (r *InMemoryVideoRepository) ListByStatus(ctx context.Context, status string) ([]dto.VideoDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videos := make([]dto.VideoDTO, 0)
	for _, v := range r.data {
		if v.Status == status {
			videos = append(videos, *v)
		}
	}
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].Title < videos[j].Title
	})
	return videos, nil
}

func (r *InMemoryVideoRepository) UpdateFields(ctx context.Context, videoID string, patch *dto.VideoPatchDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, exists := r.data[videoID]
	if !exists {
		return nil
	}
	if patch.Title != nil && r.titleTaken(*patch.Title, videoID) {
		return domain_repo.ErrDuplicateTitle
	}
	if patch.Title != nil {
		video.Title = *patch.Title
	}
	if patch.Description != nil {
		video.Description = *patch.Description
	}
	if patch.Platform != nil {
		video.Platform = *patch.Platform
	}
	if patch.ReleaseYear != nil {
		video.ReleaseYear = *patch.ReleaseYear
	}
	return nil
}

func (r *InMemoryVideoRepository) UpdateStatus(ctx context.Context, videoID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, exists := r.data[videoID]
	if !exists || video.Status != from {
		return false, nil
	}
	video.Status = to
	return true, nil
}

func (r *InMemoryVideoRepository) MarkStalePendingDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reaped int64
	for _, v := range r.data {
		if v.Status == constants.StatusPending && v.UploadDate.Before(cutoff) {
			v.Status = constants.StatusDeleted
			reaped++
		}
	}
	return reaped, nil
}
