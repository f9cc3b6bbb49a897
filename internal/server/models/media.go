package models

import "time"

// Media is one persisted photo or video inside an album. MimeType always
// holds the classified canonical type, never a raw browser-reported one.
// Rows are created exactly once at metadata registration and never mutated.
type Media struct {
	ID           string
	AlbumID      string
	UploaderID   string
	StorageKey   string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	BlobURL      string
	Width        *int
	Height       *int
	Duration     *float64
	UploadedAt   time.Time
}
