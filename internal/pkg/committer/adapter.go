package committer

import (
	"context"
	"fmt"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
)

// Adapter hands plans to the snapshot store, which applies each plan without
// interleaving it with any other.
type Adapter struct {
	store *snapshot.Store
}

func NewAdapter(store *snapshot.Store) *Adapter {
	return &Adapter{store: store}
}

func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if a.store == nil {
		return fmt.Errorf("committer: snapshot store is nil")
	}

	if err := a.store.Apply(ctx, plan.Mutations()...); err != nil {
		return fmt.Errorf("committer: apply %d mutations: %w", len(plan.Mutations()), err)
	}
	return nil
}
