package delete_comment

import (
	"context"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Request is the delete-comment request.
type Request struct {
	ProductID int64
	CommentID string
}

// Updater issues the product update carrying the filtered comment collection.
type Updater interface {
	Execute(ctx context.Context, product domain.Product) (domain.Product, error)
}

// Interactor removes one comment from a mirrored product.
type Interactor struct {
	ReadModel contracts.ReadModel
	Updater   Updater
}

func NewInteractor(readModel contracts.ReadModel, updater Updater) *Interactor {
	return &Interactor{
		ReadModel: readModel,
		Updater:   updater,
	}
}

// Execute returns the updated product. A comment that is not on the product
// is a no-op: the current product is returned and nothing is sent.
func (it *Interactor) Execute(ctx context.Context, req Request) (domain.Product, error) {
	product, ok := it.ReadModel.Snapshot().Find(req.ProductID)
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	if _, exists := product.Comment(req.CommentID); !exists {
		return product, nil
	}

	return it.Updater.Execute(ctx, product.WithoutComment(req.CommentID))
}
