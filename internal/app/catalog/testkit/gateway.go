// Package testkit holds an in-memory backend used by tests of the catalog packages.
package testkit

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Gateway operation names used by Fail, Hold and Calls.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ErrInjected is a convenient failure for Fail.
var ErrInjected = errors.New("testkit: injected failure")

// Gateway is an in-memory backend satisfying contracts.Gateway.
type Gateway struct {
	mu       sync.Mutex
	products []domain.Product
	nextID   int64
	fail     map[string]error
	hold     map[string]chan struct{}
	calls    []string

	// Normalize, when set, rewrites products the way a server would before storing them.
	Normalize func(domain.Product) domain.Product
}

func NewGateway(seed ...domain.Product) *Gateway {
	g := &Gateway{
		fail: make(map[string]error),
		hold: make(map[string]chan struct{}),
	}
	g.Seed(seed...)
	return g
}

// Seed replaces the backend content.
func (g *Gateway) Seed(ps ...domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.products = make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		g.products = append(g.products, p.Clone())
		if p.ID > g.nextID {
			g.nextID = p.ID
		}
	}
}

// Fail makes every following call of op return err. A nil err clears it.
func (g *Gateway) Fail(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.fail, op)
		return
	}
	g.fail[op] = err
}

// Hold makes the next calls of op wait until release is called.
func (g *Gateway) Hold(op string) (release func()) {
	ch := make(chan struct{})
	g.mu.Lock()
	g.hold[op] = ch
	g.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Calls returns the operations received so far, in order.
func (g *Gateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.calls)
}

// Stored returns the backend copy of a product.
func (g *Gateway) Stored(id int64) (domain.Product, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i := g.index(id); i >= 0 {
		return g.products[i].Clone(), true
	}
	return domain.Product{}, false
}

func (g *Gateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := g.enter(ctx, OpList); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.Product, 0, len(g.products))
	for _, p := range g.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (g *Gateway) CreateProduct(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	if err := g.enter(ctx, OpCreate); err != nil {
		return domain.Product{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextID++
	p := g.normalize(draft.Product(g.nextID))
	g.products = append(g.products, p)
	return p.Clone(), nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := g.enter(ctx, OpUpdate); err != nil {
		return domain.Product{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.index(p.ID)
	if i < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	g.products[i] = g.normalize(p.Clone())
	return g.products[i].Clone(), nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, id int64) error {
	if err := g.enter(ctx, OpDelete); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if i := g.index(id); i >= 0 {
		g.products = slices.Delete(g.products, i, i+1)
	}
	return nil
}

func (g *Gateway) enter(ctx context.Context, op string) error {
	g.mu.Lock()
	g.calls = append(g.calls, op)
	hold := g.hold[op]
	err := g.fail[op]
	g.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (g *Gateway) normalize(p domain.Product) domain.Product {
	if g.Normalize == nil {
		return p
	}
	return g.Normalize(p)
}

func (g *Gateway) index(id int64) int {
	return slices.IndexFunc(g.products, func(p domain.Product) bool { return p.ID == id })
}
