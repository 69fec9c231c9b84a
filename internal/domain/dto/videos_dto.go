package dto

import "time"

type VideoDTO struct {
	VideoID      string    `json:"videoId"`
	UploaderID   string    `json:"uploaderId"`
	UploaderName string    `json:"uploaderName"`
	StorageKey   string    `json:"key"`
	Title        string    `json:"title"`
	Description  string    `json:"videoDescription"`
	ReleaseYear  int       `json:"releaseYear"`
	Platform     string    `json:"platform"`
	ContentType  string    `json:"contentType"`
	Status       string    `json:"status"`
	UploadDate   time.Time `json:"uploadDate"`
}

// UploadRequestDTO carries the fields needed to open an upload intent.
type UploadRequestDTO struct {
	Title       string `json:"videoTitle"`
	Description string `json:"videoDescription"`
	ReleaseYear int    `json:"releaseYear"`
	Platform    string `json:"platform"`
	ContentType string `json:"contentType"`
}

// VideoPatchDTO is the fixed set of columns an update may touch. Fields
// left nil are not written. ThumbnailName signals a new thumbnail upload
// and yields an extra presigned grant; it is never persisted.
type VideoPatchDTO struct {
	Title         *string `json:"title"`
	Description   *string `json:"videoDescription"`
	Platform      *string `json:"platform"`
	ReleaseYear   *int    `json:"releaseYear"`
	ThumbnailName *string `json:"thumbnailName"`
}

func (p *VideoPatchDTO) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Platform == nil &&
		p.ReleaseYear == nil && p.ThumbnailName == nil
}

// GrantDTO is a presigned, expiring URL for one storage operation.
type GrantDTO struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// UploadIntentDTO is returned after a successful upload request: the
// write grant plus the pending metadata record.
type UploadIntentDTO struct {
	GrantDTO
	Video VideoDTO `json:"video"`
}

type PaginatedVideosDTO struct {
	Videos     []VideoDTO `json:"videos"`
	Count      int        `json:"count"`
	StartIndex int        `json:"startIndex"`
	EndIndex   int        `json:"endIndex"`
	TotalPages int        `json:"totalPages"`
}

type UpdateResultDTO struct {
	Video     VideoDTO  `json:"video"`
	SignedURL *GrantDTO `json:"signedUrl,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
