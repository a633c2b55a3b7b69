package domain

import (
	"strings"
	"time"
)

// Comment is a note attached to a product. It is not persisted on its own:
// adding or removing one is an update of the owning product.
type Comment struct {
	ID          string
	ProductID   int64
	Description string
	Date        time.Time
}

// NewComment mints a comment for productID. The text is trimmed and must not be empty.
func NewComment(id string, productID int64, text string, now time.Time) (Comment, error) {
	description := strings.TrimSpace(text)
	if description == "" {
		return Comment{}, ErrEmptyCommentDescription
	}

	return Comment{
		ID:          id,
		ProductID:   productID,
		Description: description,
		Date:        now,
	}, nil
}
