package queue

import (
	"database/sql"
	"errors"
	"time"
)

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id             int64
		episodeName    string
		sourceURL      sql.NullString
		sourcePath     sql.NullString
		language       sql.NullString
		statusStr      string
		runID          sql.NullString
		audioFile      sql.NullString
		transcriptFile sql.NullString
		subtitleFile   sql.NullString
		rawJSONFile    sql.NullString
		zipFile        sql.NullString
		errorMessage   sql.NullString
		createdRaw     sql.NullString
		updatedRaw     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&episodeName,
		&sourceURL,
		&sourcePath,
		&language,
		&statusStr,
		&runID,
		&audioFile,
		&transcriptFile,
		&subtitleFile,
		&rawJSONFile,
		&zipFile,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:             id,
		EpisodeName:    episodeName,
		SourceURL:      sourceURL.String,
		SourcePath:     sourcePath.String,
		Language:       language.String,
		Status:         Status(statusStr),
		RunID:          runID.String,
		AudioFile:      audioFile.String,
		TranscriptFile: transcriptFile.String,
		SubtitleFile:   subtitleFile.String,
		RawJSONFile:    rawJSONFile.String,
		ZipFile:        zipFile.String,
		ErrorMessage:   errorMessage.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	return item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
