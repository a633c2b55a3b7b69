package list_comments

import (
	"context"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

// Execute returns the comments of id in insertion order, or an empty slice
// if the product is not mirrored.
func (h *Handler) Execute(ctx context.Context, id int64) ([]domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := h.readModel.Snapshot().Find(id)
	if !ok || p.Comments == nil {
		return []domain.Comment{}, nil
	}
	return p.Comments, nil
}
