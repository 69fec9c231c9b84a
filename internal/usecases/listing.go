package usecases

import (
	"context"
	"math/rand"

	"video-share/internal/domain/dto"
	"video-share/internal/domain/repositories"
	"video-share/pkg/constants"
	apperrors "video-share/pkg/errors"
)

// RecommendSize caps the random sample returned by Recommend.
const RecommendSize = 5

type ListingService interface {
	// List returns uploaded videos ordered by title ascending with
	// 1-based pagination. A nil limit returns the whole set.
	List(ctx context.Context, limit *int, page int) (*dto.PaginatedVideosDTO, error)

	// Recommend returns up to RecommendSize uploaded videos drawn with
	// a uniform shuffle. Non-deterministic on purpose.
	Recommend(ctx context.Context) ([]dto.VideoDTO, error)
}

type listingService struct {
	repo repositories.VideoRepository
}

func NewListingService(repo repositories.VideoRepository) ListingService {
	return &listingService{repo: repo}
}

func (s *listingService) List(ctx context.Context, limit *int, page int) (*dto.PaginatedVideosDTO, error) {
	videos, err := s.repo.ListByStatus(ctx, constants.StatusUploaded)
	if err != nil {
		return nil, apperrors.Unavailable("could not list videos", err)
	}

	count := len(videos)
	if page < 1 {
		page = 1
	}

	if limit == nil {
		result := &dto.PaginatedVideosDTO{
			Videos:     videos,
			Count:      count,
			EndIndex:   count,
			TotalPages: 1,
		}
		if count > 0 {
			result.StartIndex = 1
		}
		return result, nil
	}

	size := *limit
	if size < 1 {
		return nil, apperrors.BadRequest("limit must be positive")
	}

	totalPages := (count + size - 1) / size
	start := (page - 1) * size
	end := start + size
	if end > count {
		end = count
	}

	// A page past the data is an empty slice, not an error.
	if start >= count {
		return &dto.PaginatedVideosDTO{
			Videos:     []dto.VideoDTO{},
			Count:      count,
			TotalPages: totalPages,
		}, nil
	}

	return &dto.PaginatedVideosDTO{
		Videos:     videos[start:end],
		Count:      count,
		StartIndex: start + 1,
		EndIndex:   end,
		TotalPages: totalPages,
	}, nil
}

func (s *listingService) Recommend(ctx context.Context) ([]dto.VideoDTO, error) {
	videos, err := s.repo.ListByStatus(ctx, constants.StatusUploaded)
	if err != nil {
		return nil, apperrors.Unavailable("could not list videos", err)
	}

	shuffled := make([]dto.VideoDTO, len(videos))
	copy(shuffled, videos)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > RecommendSize {
		shuffled = shuffled[:RecommendSize]
	}
	return shuffled, nil
}
