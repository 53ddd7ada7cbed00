package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           string    `json:"_id" bson:"_id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" bson:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" bson:"password" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Avatar       string    `json:"avatar" bson:"avatar" gorm:"size:1024"`
	Bio          string    `json:"bio" bson:"bio" gorm:"size:200"`
	Role         Role      `json:"role" bson:"role" gorm:"size:16;not null;default:'user'"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets the ID and role before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Author is the read-only projection of a user embedded into articles.
type Author struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Email  string `json:"email,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// AuthorFields selects which optional fields an Author projection carries.
type AuthorFields uint8

const (
	AuthorEmail AuthorFields = 1 << iota
	AuthorBio
)

// Projection builds the Author view of u. Name and avatar are always present.
func (u *User) Projection(fields AuthorFields) *Author {
	a := &Author{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	if fields&AuthorEmail != 0 {
		a.Email = u.Email
	}
	if fields&AuthorBio != 0 {
		a.Bio = u.Bio
	}
	return a
}
