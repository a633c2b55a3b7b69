// Package repo stores the products served by the reference backend.
package repo

import (
	"context"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// ProductRepo is the storage contract of the reference backend.
// Get and Update report domain.ErrProductNotFound for unknown ids;
// Delete of an unknown id succeeds.
type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
