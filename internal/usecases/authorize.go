package usecases

import (
	"video-share/internal/domain/dto"
	apperrors "video-share/pkg/errors"
)

// requireAdmin gates catalog mutation on the admin group.
func requireAdmin(claims *dto.Claims) error {
	if claims == nil {
		return apperrors.Forbidden("missing identity claims")
	}
	if !claims.IsAdmin() {
		return apperrors.Forbidden("only admins can upload videos")
	}
	return nil
}

// requireOwner gates per-record mutation on the original uploader,
// independent of group membership.
func requireOwner(video *dto.VideoDTO, claims *dto.Claims) error {
	if claims == nil {
		return apperrors.Forbidden("missing identity claims")
	}
	if video.UploaderID != claims.Sub {
		return apperrors.Forbidden("only the uploader can modify this video")
	}
	return nil
}
