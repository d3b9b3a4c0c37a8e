package documents

import "time"

// Document represents an uploaded image and its extracted text, owned by a
// user. Text is written once at creation and never updated.
type Document struct {
	ID        int64
	Name      string
	FileURL   string
	Text      string
	UserID    string
	CreatedAt time.Time
}
