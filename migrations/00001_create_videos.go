package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateVideos, downCreateVideos)
}

func upCreateVideos(tx *sql.Tx) error {
	createVideosTable := `
	CREATE TABLE videos (
		video_id TEXT PRIMARY KEY,
		uploader_id TEXT NOT NULL,
		uploader_name TEXT,
		storage_key TEXT NOT NULL,
		title TEXT NOT NULL,
		video_description TEXT,
		release_year INTEGER,
		platform TEXT,
		content_type TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		upload_date TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := tx.Exec(createVideosTable); err != nil {
		return fmt.Errorf("could not create videos table: %w", err)
	}

	// Titles are unique among live records only; soft-deleted rows free
	// their title for reuse.
	createTitleIndex := `
	CREATE UNIQUE INDEX videos_live_title_idx ON videos (title) WHERE status <> 'deleted';
	`
	if _, err := tx.Exec(createTitleIndex); err != nil {
		return fmt.Errorf("could not create title index: %w", err)
	}

	createStatusIndex := `
	CREATE INDEX videos_status_title_idx ON videos (status, title);
	`
	if _, err := tx.Exec(createStatusIndex); err != nil {
		return fmt.Errorf("could not create status index: %w", err)
	}

	return nil
}

func downCreateVideos(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE IF EXISTS videos;"); err != nil {
		return fmt.Errorf("could not drop videos table: %w", err)
	}
	return nil
}
