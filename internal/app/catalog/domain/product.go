package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxProductNameLength = 255
	maxWeightLength      = 64
)

// Size is the physical footprint of a product.
type Size struct {
	Width  float64
	Height float64
}

// Product is a catalog entry as mirrored from the backend.
// The identifier is assigned by the backend and never changes.
type Product struct {
	ID       int64
	ImageURL string
	Name     string
	Count    int
	Size     Size
	Weight   string
	Comments []Comment
}

// Draft is a product that has not been persisted yet and therefore has no ID.
type Draft struct {
	ImageURL string
	Name     string
	Count    int
	Size     Size
	Weight   string
	Comments []Comment
}

// Validate checks the fields a form must reject before a create is issued.
func (d Draft) Validate() error {
	return validateFields(d.Name, d.ImageURL, d.Count, d.Size, d.Weight)
}

// Product binds the draft to a backend-assigned ID. Comments are re-owned by the new ID.
func (d Draft) Product(id int64) Product {
	p := Product{
		ID:       id,
		ImageURL: d.ImageURL,
		Name:     d.Name,
		Count:    d.Count,
		Size:     d.Size,
		Weight:   d.Weight,
		Comments: make([]Comment, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		c.ProductID = id
		p.Comments = append(p.Comments, c)
	}
	return p
}

// Draft strips the identifier, e.g. to resubmit an edited product as a new one.
func (p Product) Draft() Draft {
	c := p.Clone()
	return Draft{
		ImageURL: c.ImageURL,
		Name:     c.Name,
		Count:    c.Count,
		Size:     c.Size,
		Weight:   c.Weight,
		Comments: c.Comments,
	}
}

// Validate checks field rules and the comment invariants of a full product.
func (p Product) Validate() error {
	if err := validateFields(p.Name, p.ImageURL, p.Count, p.Size, p.Weight); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(p.Comments))
	for _, c := range p.Comments {
		if c.ProductID != p.ID {
			return fmt.Errorf("comment %q: %w", c.ID, ErrCommentProductMismatch)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("comment %q: %w", c.ID, ErrDuplicateCommentID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy so callers can edit comments without sharing backing arrays.
func (p Product) Clone() Product {
	out := p
	if p.Comments != nil {
		out.Comments = make([]Comment, len(p.Comments))
		copy(out.Comments, p.Comments)
	}
	return out
}

// Comment looks up a comment by ID.
func (p Product) Comment(id string) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// WithComment returns a copy of p with c appended to its comments.
func (p Product) WithComment(c Comment) (Product, error) {
	if c.ProductID != p.ID {
		return Product{}, ErrCommentProductMismatch
	}
	if _, exists := p.Comment(c.ID); exists {
		return Product{}, ErrDuplicateCommentID
	}

	out := p.Clone()
	out.Comments = append(out.Comments, c)
	return out, nil
}

// WithoutComment returns a copy of p without the comment id.
// Unknown ids yield an unchanged copy.
func (p Product) WithoutComment(id string) Product {
	out := p.Clone()
	kept := make([]Comment, 0, len(out.Comments))
	for _, c := range out.Comments {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	out.Comments = kept
	return out
}

// Validation helpers

func validateFields(name, imageURL string, count int, size Size, weight string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProductName
	}
	// Lengths are checked on the value as stored, surrounding spaces included.
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return ErrProductNameTooLong
	}
	if strings.TrimSpace(imageURL) == "" {
		return ErrEmptyImageURL
	}
	if count < 0 {
		return ErrNegativeCount
	}
	if size.Width < 0 || size.Height < 0 {
		return ErrNegativeSize
	}
	if utf8.RuneCountInString(weight) > maxWeightLength {
		return ErrWeightTooLong
	}
	return nil
}
