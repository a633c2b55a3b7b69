package delete_product

import (
	"context"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	commitplan "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

// Interactor deletes a product on the backend and drops it from the mirror.
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

// Execute removes id once the backend acknowledged. Unknown ids leave the
// mirror untouched.
func (it *Interactor) Execute(ctx context.Context, id int64) error {
	if err := it.Gateway.DeleteProduct(ctx, id); err != nil {
		return err
	}

	plan := commitplan.NewPlan()
	plan.Add(snapshot.Remove(id))
	return it.Committer.Apply(context.WithoutCancel(ctx), plan)
}
