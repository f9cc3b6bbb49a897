package models

import "time"

// Album is a named collection of media with a creator and optional
// collaborators. ShareID is the opaque token used in public links.
type Album struct {
	ID          string
	Title       string
	Description string
	ShareID     string
	IsPublic    bool
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AlbumMember grants upload/view access to an album by email. Membership is
// keyed on the invited address rather than a user id so that albums can be
// shared with people who have not signed up yet.
type AlbumMember struct {
	ID           string
	AlbumID      string
	AllowedEmail string
	Role         string
	AddedAt      time.Time
}

// Member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
