package snapshot

import (
	"slices"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Status tracks the list-fetch lifecycle only.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// DefaultErrorMessage is recorded when a failed load carries no message.
const DefaultErrorMessage = "something went wrong"

// State is an immutable view of the mirror at one version.
// Error is non-empty only while Status is StatusFailed.
type State struct {
	Products []domain.Product
	Status   Status
	Error    string
	Version  uint64

	loadToken uint64
}

// Find returns the product with the given id.
func (s State) Find(id int64) (domain.Product, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Product{}, false
	}
	return s.Products[i].Clone(), true
}

// Clone deep-copies the product collection.
func (s State) Clone() State {
	out := s
	out.Products = cloneProducts(s.Products)
	return out
}

func (s State) index(id int64) int {
	return slices.IndexFunc(s.Products, func(p domain.Product) bool { return p.ID == id })
}

func cloneProducts(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}
