// Package models defines the domain types for Kotoba.
package models

import "time"

// WordRecord is one vocabulary entry parsed from a single markdown flashcard.
// Field names follow the wire format consumed by the web client; the BSON tags
// mirror them so the stored document carries no extra identifier beyond ID.
type WordRecord struct {
	ID           string    `json:"id" bson:"id"`
	Filename     string    `json:"filename" bson:"filename"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	Kanji        string    `json:"kanji,omitempty" bson:"kanji,omitempty"`
	TraductionFr string    `json:"traductionFr,omitempty" bson:"traductionFr,omitempty"`
	TraductionEn string    `json:"traductionEn,omitempty" bson:"traductionEn,omitempty"`
	Onyomi       string    `json:"onyomi,omitempty" bson:"onyomi,omitempty"`
	Kunyomi      string    `json:"kunyomi,omitempty" bson:"kunyomi,omitempty"`
	Type         string    `json:"type,omitempty" bson:"type,omitempty"`
	Theme        string    `json:"theme,omitempty" bson:"theme,omitempty"`
	Tags         []string  `json:"tags,omitempty" bson:"tags,omitempty"`
}

// User roles.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User is an authenticated identity. Passwords never appear here; the auth
// gate strips them before a User leaves the package.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
