package models

import (
	"time"
)

// SocialLinks holds the optional social platform URLs on a profile.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the 1:1 professional profile owned by a user.
// Handle is globally unique when present; a NULL handle never conflicts.
type Profile struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"user"`
	Handle         *string     `gorm:"uniqueIndex" json:"handle,omitempty"`
	Company        string      `json:"company,omitempty"`
	Website        string      `json:"website,omitempty"`
	Location       string      `json:"location,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	Status         string      `json:"status"`
	GithubUsername string      `json:"github_username,omitempty"`
	Skills         []string    `gorm:"serializer:json" json:"skills"`
	Social         SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Experience is a work history entry owned by a profile.
// Entries are returned newest-first; ids are stable once assigned.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a schooling entry owned by a profile.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProfilePatch carries only the fields supplied by the caller. Nil pointers
// mean "leave unchanged"; Apply merges the patch onto a profile and returns
// the result without mutating the receiver's nested state in place.
type ProfilePatch struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// Apply returns a copy of p with every supplied patch field overwritten.
func (patch ProfilePatch) Apply(p Profile) Profile {
	if patch.Handle != nil {
		p.Handle = patch.Handle
	}
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.GithubUsername != nil {
		p.GithubUsername = *patch.GithubUsername
	}
	if patch.Skills != nil {
		p.Skills = patch.Skills
	}
	if patch.Youtube != nil {
		p.Social.Youtube = *patch.Youtube
	}
	if patch.Twitter != nil {
		p.Social.Twitter = *patch.Twitter
	}
	if patch.Facebook != nil {
		p.Social.Facebook = *patch.Facebook
	}
	if patch.Linkedin != nil {
		p.Social.Linkedin = *patch.Linkedin
	}
	if patch.Instagram != nil {
		p.Social.Instagram = *patch.Instagram
	}
	return p
}
