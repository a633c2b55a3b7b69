package contracts

import (
	"context"

	commitplan "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

// Committer applies a plan of snapshot mutations as one step.
// Usecases never touch the snapshot directly.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}

// LoadTokens issues the request tokens that let the snapshot ignore stale list responses.
type LoadTokens interface {
	NextLoadToken() uint64
}
