package list_products

import (
	"context"

	"golang.org/x/text/language"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

type Handler struct {
	readModel contracts.ReadModel
	locale    language.Tag
}

func NewHandler(r contracts.ReadModel, locale language.Tag) *Handler {
	return &Handler{readModel: r, locale: locale}
}

func (h *Handler) Execute(ctx context.Context, by Criterion) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Order(h.readModel.Snapshot().Products, by, h.locale), nil
}
