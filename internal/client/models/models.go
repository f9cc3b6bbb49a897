// Package models defines the client-side views of server API objects.
package models

import "time"

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ShareID     string    `json:"share_id"`
	IsPublic    bool      `json:"is_public"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AlbumMember struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	AllowedEmail string    `json:"allowed_email"`
	Role         string    `json:"role"`
	AddedAt      time.Time `json:"added_at"`
}

type Media struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	UploaderID   string    `json:"uploader_id"`
	StorageKey   string    `json:"storage_key"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	BlobURL      string    `json:"blob_url"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	Duration     *float64  `json:"duration,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// UploadGrant is the server's authorization to transfer one file.
type UploadGrant struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
	BlobURL    string `json:"blob_url"`
}

// SharedAlbum is the public share-link view: the album plus its media.
type SharedAlbum struct {
	Album Album   `json:"album"`
	Media []Media `json:"media"`
}
