package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-share/internal/domain/dto"
	"video-share/internal/domain/repositories"
	"video-share/pkg/constants"
	apperrors "video-share/pkg/errors"

	"github.com/google/uuid"
)

type VideoService interface {
	// RequestUpload opens an upload intent: persists a pending record
	// and returns a write grant for its storage key.
	RequestUpload(ctx context.Context, req *dto.UploadRequestDTO, claims *dto.Claims) (*dto.UploadIntentDTO, error)

	// RequestDownload issues a read grant for the key. Pass-through; no
	// metadata lookup.
	RequestDownload(ctx context.Context, key string) (*dto.GrantDTO, error)

	GetVideo(ctx context.Context, videoID string) (*dto.VideoDTO, error)

	// DeleteVideo removes the blobs and soft-deletes the record. Owner
	// only.
	DeleteVideo(ctx context.Context, videoID string, claims *dto.Claims) (*dto.VideoDTO, error)

	// UpdateVideo applies a partial metadata patch. Owner only. When
	// the patch names a new thumbnail file, the result carries a write
	// grant for the thumbnail key.
	UpdateVideo(ctx context.Context, videoID string, patch *dto.VideoPatchDTO, claims *dto.Claims) (*dto.UpdateResultDTO, error)

	// ConfirmUpload advances a pending record to uploaded once the
	// client has finished the direct transfer.
	ConfirmUpload(ctx context.Context, videoID string) error

	// ReapStalePending soft-deletes pending records older than maxAge.
	ReapStalePending(ctx context.Context, maxAge time.Duration) (int64, error)
}

type videoService struct {
	repo     repositories.VideoRepository
	storage  repositories.ObjectStorage
	grantTTL time.Duration
}

func NewVideoService(repo repositories.VideoRepository, storage repositories.ObjectStorage, grantTTL time.Duration) VideoService {
	return &videoService{
		repo:     repo,
		storage:  storage,
		grantTTL: grantTTL,
	}
}

// StorageKey derives the immutable object key for a video's media blob.
func StorageKey(uploaderID, videoID string) string {
	return fmt.Sprintf("%s/%s", uploaderID, videoID)
}

// ThumbnailKey derives the object key for a video's thumbnail.
func ThumbnailKey(videoID string) string {
	return fmt.Sprintf("thumbnails/%s.jpg", videoID)
}

func validateUploadRequest(req *dto.UploadRequestDTO) error {
	if req == nil || req.Title == "" || req.Description == "" || req.Platform == "" ||
		req.ContentType == "" || req.ReleaseYear == 0 {
		return apperrors.BadRequest("please ensure all fields have been provided")
	}
	return nil
}

func (s *videoService) RequestUpload(ctx context.Context, req *dto.UploadRequestDTO, claims *dto.Claims) (*dto.UploadIntentDTO, error) {
	if err := validateUploadRequest(req); err != nil {
		return nil, err
	}
	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	exists, err := s.repo.TitleExists(ctx, req.Title)
	if err != nil {
		return nil, apperrors.Unavailable("could not check title", err)
	}
	if exists {
		return nil, apperrors.Conflict("a video with this title already exists")
	}

	videoID := uuid.New().String()
	video := &dto.VideoDTO{
		VideoID:      videoID,
		UploaderID:   claims.Sub,
		UploaderName: claims.Username,
		StorageKey:   StorageKey(claims.Sub, videoID),
		Title:        req.Title,
		Description:  req.Description,
		ReleaseYear:  req.ReleaseYear,
		Platform:     req.Platform,
		ContentType:  req.ContentType,
		Status:       constants.StatusPending,
		UploadDate:   time.Now().UTC(),
	}

	// Persist before presigning: a rejected title must never come with
	// a writable URL. The unique index closes the check/insert race.
	if err := s.repo.Create(ctx, video); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return nil, apperrors.Conflict("a video with this title already exists")
		}
		return nil, apperrors.Unavailable("could not save video metadata", err)
	}

	url, err := s.storage.PresignUpload(ctx, video.StorageKey, req.ContentType, s.grantTTL)
	if err != nil {
		return nil, apperrors.Unavailable("could not issue upload grant", err)
	}

	return &dto.UploadIntentDTO{
		GrantDTO: dto.GrantDTO{URL: url, ExpiresIn: int64(s.grantTTL.Seconds())},
		Video:    *video,
	}, nil
}

func (s *videoService) RequestDownload(ctx context.Context, key string) (*dto.GrantDTO, error) {
	if key == "" {
		return nil, apperrors.BadRequest("key is required")
	}
	url, err := s.storage.PresignDownload(ctx, key, s.grantTTL)
	if err != nil {
		return nil, apperrors.Unavailable("could not issue download grant", err)
	}
	return &dto.GrantDTO{URL: url, ExpiresIn: int64(s.grantTTL.Seconds())}, nil
}

func (s *videoService) GetVideo(ctx context.Context, videoID string) (*dto.VideoDTO, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, apperrors.Unavailable("could not load video", err)
	}
	if video == nil {
		return nil, apperrors.NotFound("video not found")
	}
	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, videoID string, claims *dto.Claims) (*dto.VideoDTO, error) {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, apperrors.Unavailable("could not load video", err)
	}
	if video == nil || video.Status == constants.StatusDeleted {
		return nil, apperrors.NotFound("video not found")
	}
	if err := requireOwner(video, claims); err != nil {
		return nil, err
	}

	// Blobs go first. On failure the record keeps its status, so a
	// retry repeats both steps; both are idempotent.
	keys := []string{video.StorageKey, ThumbnailKey(videoID)}
	if err := s.storage.DeleteObjects(ctx, keys); err != nil {
		return nil, apperrors.Unavailable("could not delete video objects", err)
	}

	ok, err := s.repo.UpdateStatus(ctx, videoID, video.Status, constants.StatusDeleted)
	if err != nil {
		return nil, apperrors.Unavailable("could not mark video deleted", err)
	}
	if !ok {
		return nil, apperrors.Conflict("video changed state, retry the delete")
	}

	video.Status = constants.StatusDeleted
	return video, nil
}

func (s *videoService) UpdateVideo(ctx context.Context, videoID string, patch *dto.VideoPatchDTO, claims *dto.Claims) (*dto.UpdateResultDTO, error) {
	if patch == nil || patch.Empty() {
		return nil, apperrors.BadRequest("no fields to update")
	}

	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, apperrors.Unavailable("could not load video", err)
	}
	if video == nil || video.Status == constants.StatusDeleted {
		return nil, apperrors.NotFound("video not found")
	}
	if err := requireOwner(video, claims); err != nil {
		return nil, err
	}

	if patch.Title != nil && *patch.Title != video.Title {
		exists, err := s.repo.TitleExists(ctx, *patch.Title)
		if err != nil {
			return nil, apperrors.Unavailable("could not check title", err)
		}
		if exists {
			return nil, apperrors.Conflict("a video with this title already exists")
		}
	}

	if err := s.repo.UpdateFields(ctx, videoID, patch); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return nil, apperrors.Conflict("a video with this title already exists")
		}
		return nil, apperrors.Unavailable("could not update video metadata", err)
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

	result := &dto.UpdateResultDTO{Video: *video}

	if patch.ThumbnailName != nil && *patch.ThumbnailName != "" {
		url, err := s.storage.PresignUpload(ctx, ThumbnailKey(videoID), "image/jpeg", s.grantTTL)
		if err != nil {
			return nil, apperrors.Unavailable("could not issue thumbnail grant", err)
		}
		result.SignedURL = &dto.GrantDTO{URL: url, ExpiresIn: int64(s.grantTTL.Seconds())}
	}

	return result, nil
}

func (s *videoService) ConfirmUpload(ctx context.Context, videoID string) error {
	video, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return apperrors.Unavailable("could not load video", err)
	}
	if video == nil {
		return apperrors.NotFound("video not found")
	}

	switch video.Status {
	case constants.StatusUploaded:
		// Confirmation already processed.
		return nil
	case constants.StatusDeleted:
		return apperrors.Conflict("video has been deleted")
	}

	ok, err := s.repo.UpdateStatus(ctx, videoID, constants.StatusPending, constants.StatusUploaded)
	if err != nil {
		return apperrors.Unavailable("could not confirm upload", err)
	}
	if !ok {
		return apperrors.Conflict("video changed state, confirmation dropped")
	}
	return nil
}

func (s *videoService) ReapStalePending(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	reaped, err := s.repo.MarkStalePendingDeleted(ctx, cutoff)
	if err != nil {
		return 0, apperrors.Unavailable("could not reap stale pending videos", err)
	}
	return reaped, nil
}
