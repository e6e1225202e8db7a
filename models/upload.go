package models

import (
	"time"
)

// UploadStatus is the lifecycle stage of one import attempt.
type UploadStatus string

const (
	UploadUploaded   UploadStatus = "UPLOADED"
	UploadProcessing UploadStatus = "PROCESSING"
	UploadSuccess    UploadStatus = "SUCCESS"
	UploadFailed     UploadStatus = "FAILED"
)

// Terminal reports whether no further transition is allowed.
func (s UploadStatus) Terminal() bool {
	return s == UploadSuccess || s == UploadFailed
}

// Upload records one CSV file a user submitted and the outcome of importing it.
// Rows are never deleted by the import flow; a failed import keeps its record so the user can review it.
type Upload struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       uint         `gorm:"index;not null"`
	FileName     string       `gorm:"size:255;not null"`
	FileSize     int64        `gorm:"not null"`
	ContentType  string       `gorm:"size:128"`
	UploadDate   time.Time    `gorm:"index;not null"`
	Processed    bool         `gorm:"not null"`
	RecordsCount int          `gorm:"not null"`
	Status       UploadStatus `gorm:"size:16;not null;index"`
	ErrorDetails string       `gorm:"type:text"`
}
