package shayari

import (
	"strings"
	"time"
)

// Shayari is the persistent poem record.
type Shayari struct {
	ID        string    `json:"_id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	MoodTags  []string  `json:"moodTags" bson:"moodTags"`
	IsPublic  bool      `json:"isPublic" bson:"isPublic"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
	Reactions Reactions `json:"reactions" bson:"reactions"`
}

// Clone returns a deep copy so stored state is never aliased.
func (s *Shayari) Clone() *Shayari {
	if s == nil {
		return nil
	}
	c := *s
	c.MoodTags = append(make([]string, 0, len(s.MoodTags)), s.MoodTags...)
	return &c
}

// Normalize fills defaults that older documents may be missing.
func (s *Shayari) Normalize() {
	if s.MoodTags == nil {
		s.MoodTags = []string{}
	}
}

// Replacement is the full set of client-editable fields written by an update.
type Replacement struct {
	Title    string
	Content  string
	MoodTags []string
	IsPublic bool
}

// CreateInput is the body accepted when creating a record.
type CreateInput struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	MoodTags []string `json:"moodTags"`
	IsPublic *bool    `json:"isPublic"`
}

// Prepare trims the title and fills defaults. Call before validation.
func (in *CreateInput) Prepare() {
	in.Title = strings.TrimSpace(in.Title)
	if in.MoodTags == nil {
		in.MoodTags = []string{}
	}
}

// UpdateInput replaces every editable field. Omitted fields take their
// zero or schema default value.
type UpdateInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	MoodTags []string `json:"moodTags"`
	IsPublic *bool    `json:"isPublic"`
}

func (in UpdateInput) Replacement() Replacement {
	r := Replacement{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		MoodTags: in.MoodTags,
		IsPublic: true,
	}
	if r.MoodTags == nil {
		r.MoodTags = []string{}
	}
	if in.IsPublic != nil {
		r.IsPublic = *in.IsPublic
	}
	return r
}
