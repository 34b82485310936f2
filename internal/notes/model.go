package notes

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyContent is returned when a note has no content after
	// trimming whitespace.
	ErrEmptyContent = errors.New("note content is required")

	// ErrNoteNotFound is returned when a note is not found.
	ErrNoteNotFound = errors.New("note not found")
)

// Note is a free-form comment attached to a lead.
type Note struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"lead_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest carries the content for a new note.
type CreateRequest struct {
	Content string `json:"content"`
}

// Validate trims the content and rejects empty notes.
func (r *CreateRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return ErrEmptyContent
	}
	return nil
}
