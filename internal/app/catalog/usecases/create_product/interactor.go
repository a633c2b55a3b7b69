package create_product

import (
	"context"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	commitplan "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

// Interactor creates a product on the backend and mirrors the server entity.
// Field validation is the caller's job (domain.Draft.Validate) and happens
// before the command is issued.
type Interactor struct {
	Gateway   contracts.Gateway
	Committer contracts.Committer
}

// NewInteractor constructs the interactor.
func NewInteractor(gw contracts.Gateway, committer contracts.Committer) *Interactor {
	return &Interactor{
		Gateway:   gw,
		Committer: committer,
	}
}

// Execute returns the product as stored by the backend. On failure the
// snapshot is left unchanged.
func (it *Interactor) Execute(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	created, err := it.Gateway.CreateProduct(ctx, draft)
	if err != nil {
		return domain.Product{}, err
	}

	plan := commitplan.NewPlan()
	plan.Add(snapshot.Insert(created))
	if err := it.Committer.Apply(context.WithoutCancel(ctx), plan); err != nil {
		return domain.Product{}, err
	}

	return created, nil
}
