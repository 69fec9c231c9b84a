package entities

import "time"

// Video is the authoritative metadata record for one uploaded asset.
// Title uniqueness among non-deleted rows is enforced by a partial
// unique index created in the goose migration.
type Video struct {
	VideoID      string    `gorm:"column:video_id;type:text;primaryKey"`
	UploaderID   string    `gorm:"column:uploader_id;type:text;not null"`
	UploaderName string    `gorm:"column:uploader_name;type:text"`
	StorageKey   string    `gorm:"column:storage_key;type:text;not null"`
	Title        string    `gorm:"column:title;type:text;not null"`
	Description  string    `gorm:"column:video_description;type:text"`
	ReleaseYear  int       `gorm:"column:release_year"`
	Platform     string    `gorm:"column:platform;type:text"`
	ContentType  string    `gorm:"column:content_type;type:text"`
	Status       string    `gorm:"column:status;type:varchar(20);not null"`
	UploadDate   time.Time `gorm:"column:upload_date"`
}

func (Video) TableName() string {
	return "videos"
}
