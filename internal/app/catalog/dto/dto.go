package dto

import (
	"time"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// SizeDTO is the JSON shape of a product size.
type SizeDTO struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CommentDTO is the JSON shape of a comment nested in a product.
type CommentDTO struct {
	ID          string    `json:"id"`
	ProductID   int64     `json:"productId"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ProductDTO is the JSON shape exchanged with the backend for a stored product.
type ProductDTO struct {
	ID       int64        `json:"id"`
	ImageURL string       `json:"imageUrl"`
	Name     string       `json:"name"`
	Count    int          `json:"count"`
	Size     SizeDTO      `json:"size"`
	Weight   string       `json:"weight"`
	Comments []CommentDTO `json:"comments"`
}

// DraftDTO is the create request body: a product without identifier.
type DraftDTO struct {
	ImageURL string       `json:"imageUrl"`
	Name     string       `json:"name"`
	Count    int          `json:"count"`
	Size     SizeDTO      `json:"size"`
	Weight   string       `json:"weight"`
	Comments []CommentDTO `json:"comments"`
}

func FromProduct(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID,
		ImageURL: p.ImageURL,
		Name:     p.Name,
		Count:    p.Count,
		Size:     SizeDTO{Width: p.Size.Width, Height: p.Size.Height},
		Weight:   p.Weight,
		Comments: FromComments(p.Comments),
	}
}

func FromProducts(ps []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromDraft(d domain.Draft) DraftDTO {
	return DraftDTO{
		ImageURL: d.ImageURL,
		Name:     d.Name,
		Count:    d.Count,
		Size:     SizeDTO{Width: d.Size.Width, Height: d.Size.Height},
		Weight:   d.Weight,
		Comments: FromComments(d.Comments),
	}
}

// FromComments never returns nil so an empty collection encodes as [].
func FromComments(cs []domain.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, CommentDTO{
			ID:          c.ID,
			ProductID:   c.ProductID,
			Description: c.Description,
			Date:        c.Date.UTC(),
		})
	}
	return out
}

func (d ProductDTO) ToDomain() domain.Product {
	return domain.Product{
		ID:       d.ID,
		ImageURL: d.ImageURL,
		Name:     d.Name,
		Count:    d.Count,
		Size:     domain.Size{Width: d.Size.Width, Height: d.Size.Height},
		Weight:   d.Weight,
		Comments: ToComments(d.Comments),
	}
}

func (d DraftDTO) ToDomain() domain.Draft {
	return domain.Draft{
		ImageURL: d.ImageURL,
		Name:     d.Name,
		Count:    d.Count,
		Size:     domain.Size{Width: d.Size.Width, Height: d.Size.Height},
		Weight:   d.Weight,
		Comments: ToComments(d.Comments),
	}
}

func ToProducts(ds []ProductDTO) []domain.Product {
	out := make([]domain.Product, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ToDomain())
	}
	return out
}

func ToComments(ds []CommentDTO) []domain.Comment {
	out := make([]domain.Comment, 0, len(ds))
	for _, d := range ds {
		out = append(out, domain.Comment{
			ID:          d.ID,
			ProductID:   d.ProductID,
			Description: d.Description,
			Date:        d.Date,
		})
	}
	return out
}
