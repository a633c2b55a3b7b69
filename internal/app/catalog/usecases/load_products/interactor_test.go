package load_products

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/testkit"
	committer "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

func mug() domain.Product {
	return domain.Product{
		ID: 1, Name: "Mug", Count: 5, ImageURL: "u",
		Size: domain.Size{Width: 5, Height: 5}, Weight: "200g",
		Comments: []domain.Comment{},
	}
}

func setup(t *testing.T, gw *testkit.Gateway) (*Interactor, *snapshot.Store) {
	t.Helper()
	store := snapshot.NewStore()
	t.Cleanup(store.Close)
	return NewInteractor(gw, committer.NewAdapter(store), store, nil), store
}

func TestExecute_Success(t *testing.T) {
	uc, store := setup(t, testkit.NewGateway(mug()))

	got, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{mug()}, got)

	st := store.Snapshot()
	assert.Equal(t, snapshot.StatusSucceeded, st.Status)
	assert.Equal(t, []domain.Product{mug()}, st.Products)
	assert.Empty(t, st.Error)
}

func TestExecute_FailureRecordsError(t *testing.T) {
	gw := testkit.NewGateway(mug())
	uc, store := setup(t, gw)

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)

	gw.Fail(testkit.OpList, errors.New("non-OK status: 500"))
	_, err = uc.Execute(context.Background())
	require.Error(t, err)

	st := store.Snapshot()
	assert.Equal(t, snapshot.StatusFailed, st.Status)
	assert.Equal(t, "non-OK status: 500", st.Error)
	assert.Equal(t, []domain.Product{mug()}, st.Products, "collection must survive a failed load")
}

func TestExecute_LoadingWhileInFlight(t *testing.T) {
	gw := testkit.NewGateway(mug())
	release := gw.Hold(testkit.OpList)
	uc, store := setup(t, gw)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return store.Snapshot().Status == snapshot.StatusLoading
	}, time.Second, 5*time.Millisecond)

	release()
	require.NoError(t, <-done)
	assert.Equal(t, snapshot.StatusSucceeded, store.Snapshot().Status)
}

// cancelingGateway cancels the caller's context as soon as the backend answered.
type cancelingGateway struct {
	*testkit.Gateway
	cancel context.CancelFunc
}

func (g cancelingGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ps, err := g.Gateway.ListProducts(ctx)
	g.cancel()
	return ps, err
}

func TestExecute_EffectSurvivesCallerCancellation(t *testing.T) {
	store := snapshot.NewStore()
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	gw := cancelingGateway{Gateway: testkit.NewGateway(mug()), cancel: cancel}
	uc := NewInteractor(gw, committer.NewAdapter(store), store, nil)

	_, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Error(t, ctx.Err())

	st := store.Snapshot()
	assert.Equal(t, snapshot.StatusSucceeded, st.Status)
	assert.Len(t, st.Products, 1)
}

type listResult struct {
	products []domain.Product
	err      error
}

// scriptedGateway parks every list call until the test answers it by call index.
type scriptedGateway struct {
	*testkit.Gateway
	mu      sync.Mutex
	pending []chan listResult
}

func (g *scriptedGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ch := make(chan listResult, 1)
	g.mu.Lock()
	g.pending = append(g.pending, ch)
	g.mu.Unlock()

	r := <-ch
	return r.products, r.err
}

func (g *scriptedGateway) waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *scriptedGateway) answer(i int, r listResult) {
	g.mu.Lock()
	ch := g.pending[i]
	g.mu.Unlock()
	ch <- r
}

func TestExecute_StaleResponseIgnored(t *testing.T) {
	store := snapshot.NewStore()
	defer store.Close()

	gw := &scriptedGateway{Gateway: testkit.NewGateway()}
	uc := NewInteractor(gw, committer.NewAdapter(store), store, nil)

	first := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background())
		first <- err
	}()
	require.Eventually(t, func() bool { return gw.waiting() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background())
		second <- err
	}()
	require.Eventually(t, func() bool { return gw.waiting() == 2 }, time.Second, 5*time.Millisecond)

	// Issued second, resolved first.
	gw.answer(1, listResult{products: []domain.Product{mug()}})
	require.NoError(t, <-second)

	gw.answer(0, listResult{err: errors.New("late failure")})
	require.Error(t, <-first)

	st := store.Snapshot()
	assert.Equal(t, snapshot.StatusSucceeded, st.Status)
	assert.Empty(t, st.Error)
	assert.Equal(t, []domain.Product{mug()}, st.Products)
}
