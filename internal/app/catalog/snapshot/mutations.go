package snapshot

import (
	"slices"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Mutation is one step applied by the store goroutine.
// apply edits next in place and reports whether anything changed.
// Slices in next are already private copies, products inside them are not.
type Mutation interface {
	apply(next *State) bool
}

type beginLoad struct{ token uint64 }

type completeLoad struct {
	token    uint64
	products []domain.Product
}

type failLoad struct {
	token   uint64
	message string
}

type insert struct{ product domain.Product }

type replace struct{ product domain.Product }

type remove struct{ id int64 }

// BeginLoad moves the lifecycle to loading for the load identified by token.
// A token older than the latest begun load is ignored.
func BeginLoad(token uint64) Mutation { return beginLoad{token: token} }

// CompleteLoad replaces the whole collection if token is still the latest load.
func CompleteLoad(token uint64, products []domain.Product) Mutation {
	return completeLoad{token: token, products: products}
}

// FailLoad records message if token is still the latest load. The collection is kept.
func FailLoad(token uint64, message string) Mutation {
	return failLoad{token: token, message: message}
}

// Insert appends a created product, or overwrites an entry with the same ID.
func Insert(p domain.Product) Mutation { return insert{product: p.Clone()} }

// Replace overwrites the entry with the same ID. Unknown IDs are dropped.
func Replace(p domain.Product) Mutation { return replace{product: p.Clone()} }

// Remove deletes the entry with the given ID. Unknown IDs are a no-op.
func Remove(id int64) Mutation { return remove{id: id} }

func (m beginLoad) apply(next *State) bool {
	if m.token <= next.loadToken {
		return false
	}
	next.loadToken = m.token
	next.Status = StatusLoading
	next.Error = ""
	return true
}

func (m completeLoad) apply(next *State) bool {
	if m.token != next.loadToken || next.Status != StatusLoading {
		return false
	}
	next.Products = dedupe(m.products)
	next.Status = StatusSucceeded
	next.Error = ""
	return true
}

func (m failLoad) apply(next *State) bool {
	if m.token != next.loadToken || next.Status != StatusLoading {
		return false
	}
	next.Status = StatusFailed
	next.Error = m.message
	if next.Error == "" {
		next.Error = DefaultErrorMessage
	}
	return true
}

func (m insert) apply(next *State) bool {
	if i := next.index(m.product.ID); i >= 0 {
		next.Products[i] = m.product
		return true
	}
	next.Products = append(next.Products, m.product)
	return true
}

func (m replace) apply(next *State) bool {
	i := next.index(m.product.ID)
	if i < 0 {
		return false
	}
	next.Products[i] = m.product
	return true
}

func (m remove) apply(next *State) bool {
	i := next.index(m.id)
	if i < 0 {
		return false
	}
	next.Products = slices.Delete(next.Products, i, i+1)
	return true
}

// dedupe keeps the first position of every ID and the last value seen for it.
func dedupe(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	pos := make(map[int64]int, len(ps))
	for _, p := range ps {
		if i, ok := pos[p.ID]; ok {
			out[i] = p.Clone()
			continue
		}
		pos[p.ID] = len(out)
		out = append(out, p.Clone())
	}
	return out
}
