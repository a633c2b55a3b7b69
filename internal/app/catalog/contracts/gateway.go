package contracts

import (
	"context"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Gateway is the request/response contract with the catalog backend.
// Every failure (network, status, payload) comes back as a non-nil error.
type Gateway interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, draft domain.Draft) (domain.Product, error)
	// UpdateProduct submits the full product, comments included.
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
