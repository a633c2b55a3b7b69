package update_product

import (
	"context"
	"errors"
	"fmt"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	commitplan "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

// ErrForeignEcho reports a backend answer that describes another product.
var ErrForeignEcho = errors.New("update echo carries a different product id")

// Interactor submits a full product (field edits and comment changes alike)
// and replaces the mirrored entry with the server echo.
type Interactor struct {
	Gateway   contracts.Gateway
	Committer contracts.Committer
}

func NewInteractor(gw contracts.Gateway, committer contracts.Committer) *Interactor {
	return &Interactor{
		Gateway:   gw,
		Committer: committer,
	}
}

// Execute returns the server echo. If the product is no longer mirrored when
// the response arrives, the echo is dropped rather than inserted.
func (it *Interactor) Execute(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := it.Gateway.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	if updated.ID != product.ID {
		return domain.Product{}, fmt.Errorf("update product %d: got %d: %w", product.ID, updated.ID, ErrForeignEcho)
	}

	plan := commitplan.NewPlan()
	plan.Add(snapshot.Replace(updated))
	if err := it.Committer.Apply(context.WithoutCancel(ctx), plan); err != nil {
		return domain.Product{}, err
	}

	return updated, nil
}
