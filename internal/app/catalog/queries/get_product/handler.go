package get_product

import (
	"context"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Handler looks a single product up in the mirror, for detail views.
type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

// Execute returns domain.ErrProductNotFound when id is not mirrored.
func (h *Handler) Execute(ctx context.Context, id int64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	p, ok := h.readModel.Snapshot().Find(id)
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}
