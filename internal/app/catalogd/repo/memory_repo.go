package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// MemoryRepo keeps products in process memory. IDs start at 1.
type MemoryRepo struct {
	mu       sync.RWMutex
	products []domain.Product
	lastID   int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{products: make([]domain.Product, 0)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return r.products[i].Clone(), nil
}

func (r *MemoryRepo) Create(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	p := draft.Product(r.lastID)
	r.products = append(r.products, p)
	return p.Clone(), nil
}

func (r *MemoryRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(p.ID)
	if i < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	r.products[i] = p.Clone()
	return p.Clone(), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(id); i >= 0 {
		r.products = slices.Delete(r.products, i, i+1)
	}
	return nil
}

func (r *MemoryRepo) index(id int64) int {
	return slices.IndexFunc(r.products, func(p domain.Product) bool { return p.ID == id })
}
