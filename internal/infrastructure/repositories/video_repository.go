package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-share/internal/domain/dto"
	"video-share/internal/domain/entities"
	domain_repo "video-share/internal/domain/repositories"
	"video-share/pkg/constants"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func toEntity(video *dto.VideoDTO) *entities.Video {
	return &entities.Video{
		VideoID:      video.VideoID,
		UploaderID:   video.UploaderID,
		UploaderName: video.UploaderName,
		StorageKey:   video.StorageKey,
		Title:        video.Title,
		Description:  video.Description,
		ReleaseYear:  video.ReleaseYear,
		Platform:     video.Platform,
		ContentType:  video.ContentType,
		Status:       video.Status,
		UploadDate:   video.UploadDate,
	}
}

func toDTO(entity *entities.Video) *dto.VideoDTO {
	return &dto.VideoDTO{
		VideoID:      entity.VideoID,
		UploaderID:   entity.UploaderID,
		UploaderName: entity.UploaderName,
		StorageKey:   entity.StorageKey,
		Title:        entity.Title,
		Description:  entity.Description,
		ReleaseYear:  entity.ReleaseYear,
		Platform:     entity.Platform,
		ContentType:  entity.ContentType,
		Status:       entity.Status,
		UploadDate:   entity.UploadDate,
	}
}

func (r *VideoRepository) Create(ctx context.Context, video *dto.VideoDTO) error {
	err := r.db.WithContext(ctx).Create(toEntity(video)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain_repo.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, videoID string) (*dto.VideoDTO, error) {
	var entity entities.Video
	err := r.db.WithContext(ctx).First(&entity, "video_id = ?", videoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return toDTO(&entity), nil
}

func (r *VideoRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Video{}).
		Where("title = ? AND status <> ?", title, constants.StatusDeleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return count > 0, nil
}

func (r *VideoRepository) ListByStatus(ctx context.Context, status string) ([]dto.VideoDTO, error) {
	var rows []entities.Video
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	videos := make([]dto.VideoDTO, 0, len(rows))
	for i := range rows {
		videos = append(videos, *toDTO(&rows[i]))
	}
	return videos, nil
}

func (r *VideoRepository) UpdateFields(ctx context.Context, videoID string, patch *dto.VideoPatchDTO) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["video_description"] = *patch.Description
	}
	if patch.Platform != nil {
		updates["platform"] = *patch.Platform
	}
	if patch.ReleaseYear != nil {
		updates["release_year"] = *patch.ReleaseYear
	}
	if len(updates) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&entities.Video{}).
		Where("video_id = ?", videoID).
		Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain_repo.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (r *VideoRepository) UpdateStatus(ctx context.Context, videoID, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entities.Video{}).
		Where("video_id = ? AND status = ?", videoID, from).
		Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *VideoRepository) MarkStalePendingDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.Video{}).
		Where("status = ? AND upload_date < ?", constants.StatusPending, cutoff).
		Update("status", constants.StatusDeleted)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reap stale pending videos: %w", result.Error)
	}
	return result.RowsAffected, nil
}
