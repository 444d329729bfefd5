package dto

import (
	"strings"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateNoteRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Content   string   `json:"content" validate:"required,max=50000"`
	Language  string   `json:"language" validate:"omitempty,max=50"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	IsPublic  *bool    `json:"isPublic"`
	IsSnippet *bool    `json:"isSnippet"`
	Favorited *bool    `json:"favorited"`
}

// Normalize trims and case-folds before validation runs.
func (r *CreateNoteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	r.Tags = normalizeTags(r.Tags)
}

// ToNote applies the schema defaults: language "text", isPublic false,
// isSnippet true, favorited false.
func (r *CreateNoteRequest) ToNote(userID primitive.ObjectID) *model.Note {
	note := &model.Note{
		UserID:    userID,
		Title:     r.Title,
		Content:   r.Content,
		Language:  r.Language,
		Tags:      r.Tags,
		IsSnippet: true,
	}
	if note.Language == "" {
		note.Language = "text"
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if r.IsPublic != nil {
		note.IsPublic = *r.IsPublic
	}
	if r.IsSnippet != nil {
		note.IsSnippet = *r.IsSnippet
	}
	if r.Favorited != nil {
		note.Favorited = *r.Favorited
	}
	return note
}

type UpdateNoteRequest struct {
	Title     *string  `json:"title" validate:"omitempty,max=200"`
	Content   *string  `json:"content" validate:"omitempty,max=50000"`
	Language  *string  `json:"language" validate:"omitempty,max=50"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	IsPublic  *bool    `json:"isPublic"`
	IsSnippet *bool    `json:"isSnippet"`
	Favorited *bool    `json:"favorited"`
}

func (r *UpdateNoteRequest) Normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	if r.Language != nil {
		language := strings.ToLower(strings.TrimSpace(*r.Language))
		r.Language = &language
	}
	if r.Tags != nil {
		r.Tags = normalizeTags(r.Tags)
	}
}

// HasUpdates reports whether at least one recognized field was sent.
func (r *UpdateNoteRequest) HasUpdates() bool {
	return r.Title != nil || r.Content != nil || r.Language != nil ||
		r.Tags != nil || r.IsPublic != nil || r.IsSnippet != nil || r.Favorited != nil
}

type HealthResponse struct {
	Message     string    `json:"message"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
	UptimeSec   float64   `json:"uptimeSeconds"`
	CPUPercent  float64   `json:"cpuPercent"`
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.ToLower(strings.TrimSpace(tag)); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}
