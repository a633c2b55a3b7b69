package load_products

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	commitplan "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

// Interactor fetches the whole catalog and drives the list-fetch lifecycle.
type Interactor struct {
	Gateway   contracts.Gateway
	Committer contracts.Committer
	Tokens    contracts.LoadTokens
	Log       *zap.Logger
}

func NewInteractor(gw contracts.Gateway, committer contracts.Committer, tokens contracts.LoadTokens, log *zap.Logger) *Interactor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{
		Gateway:   gw,
		Committer: committer,
		Tokens:    tokens,
		Log:       log,
	}
}

// Execute marks the snapshot loading, lists products and records the outcome.
// The returned error is the transport failure also stored in State.Error,
// unless a newer load started meanwhile.
func (it *Interactor) Execute(ctx context.Context) ([]domain.Product, error) {
	token := it.Tokens.NextLoadToken()

	// 1. Enter loading
	begin := commitplan.NewPlan()
	begin.Add(snapshot.BeginLoad(token))
	if err := it.Committer.Apply(ctx, begin); err != nil {
		return nil, err
	}

	// 2. Transport call
	products, err := it.Gateway.ListProducts(ctx)

	// 3. Settle; the effect belongs to the snapshot, not to the caller
	settle := commitplan.NewPlan()
	applyCtx := context.WithoutCancel(ctx)
	if err != nil {
		it.Log.Warn("load products failed", zap.Uint64("load_token", token), zap.Error(err))
		settle.Add(snapshot.FailLoad(token, err.Error()))
		if applyErr := it.Committer.Apply(applyCtx, settle); applyErr != nil {
			return nil, applyErr
		}
		return nil, err
	}

	settle.Add(snapshot.CompleteLoad(token, products))
	if err := it.Committer.Apply(applyCtx, settle); err != nil {
		return nil, err
	}

	it.Log.Debug("products loaded", zap.Uint64("load_token", token), zap.Int("count", len(products)))
	return products, nil
}
