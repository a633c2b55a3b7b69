package add_comment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/pkg/clock"
)

// Request is the add-comment request.
type Request struct {
	ProductID int64
	Text      string
}

// Updater issues the product update carrying the new comment collection.
type Updater interface {
	Execute(ctx context.Context, product domain.Product) (domain.Product, error)
}

// Interactor appends a freshly minted comment to a mirrored product.
type Interactor struct {
	ReadModel contracts.ReadModel
	Updater   Updater
	Clock     clock.Clock
	NewID     func() string
}

func NewInteractor(readModel contracts.ReadModel, updater Updater, clk clock.Clock) *Interactor {
	return &Interactor{
		ReadModel: readModel,
		Updater:   updater,
		Clock:     clk,
		NewID:     func() string { return uuid.New().String() },
	}
}

// Execute returns the updated product. Blank text is rejected with
// domain.ErrEmptyCommentDescription before anything is sent.
func (it *Interactor) Execute(ctx context.Context, req Request) (domain.Product, error) {
	if strings.TrimSpace(req.Text) == "" {
		return domain.Product{}, domain.ErrEmptyCommentDescription
	}

	// 1. Current product from the mirror
	product, ok := it.ReadModel.Snapshot().Find(req.ProductID)
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	// 2. Next comment collection
	comment, err := domain.NewComment(it.NewID(), product.ID, req.Text, it.Clock.Now())
	if err != nil {
		return domain.Product{}, err
	}
	next, err := product.WithComment(comment)
	if err != nil {
		return domain.Product{}, err
	}

	// 3. Comments are persisted through the product
	return it.Updater.Execute(ctx, next)
}
