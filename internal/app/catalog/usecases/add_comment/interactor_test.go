package add_comment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/testkit"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/update_product"
	"github.com/murkotick/catalog-mirror/internal/pkg/clock"
	committer "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

var now = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*Interactor, *snapshot.Store, *testkit.Gateway) {
	t.Helper()
	store := snapshot.NewStore()
	t.Cleanup(store.Close)

	p := domain.Product{ID: 1, Name: "Mug", ImageURL: "u", Count: 5, Comments: []domain.Comment{}}
	require.NoError(t, store.Apply(context.Background(), snapshot.Insert(p)))
	gw := testkit.NewGateway(p)

	updater := update_product.NewInteractor(gw, committer.NewAdapter(store))
	uc := NewInteractor(store, updater, clock.NewFake(now))
	uc.NewID = func() string { return "c-1" }
	return uc, store, gw
}

func TestExecute_AppendsComment(t *testing.T) {
	uc, store, gw := setup(t)

	got, err := uc.Execute(context.Background(), Request{ProductID: 1, Text: "nice"})
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)

	p, ok := store.Snapshot().Find(1)
	require.True(t, ok)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, domain.Comment{ID: "c-1", ProductID: 1, Description: "nice", Date: now}, p.Comments[0])
	assert.Equal(t, []string{testkit.OpUpdate}, gw.Calls())
}

func TestExecute_BlankTextIsNoop(t *testing.T) {
	uc, store, gw := setup(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := uc.Execute(context.Background(), Request{ProductID: 1, Text: text})
		assert.ErrorIs(t, err, domain.ErrEmptyCommentDescription)
	}

	p, _ := store.Snapshot().Find(1)
	assert.Empty(t, p.Comments)
	assert.Empty(t, gw.Calls())
}

func TestExecute_UnknownProduct(t *testing.T) {
	uc, _, gw := setup(t)

	_, err := uc.Execute(context.Background(), Request{ProductID: 99, Text: "hello"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, gw.Calls())
}

func TestExecute_FailureKeepsComments(t *testing.T) {
	uc, store, gw := setup(t)
	gw.Fail(testkit.OpUpdate, testkit.ErrInjected)

	_, err := uc.Execute(context.Background(), Request{ProductID: 1, Text: "nice"})
	require.ErrorIs(t, err, testkit.ErrInjected)

	p, _ := store.Snapshot().Find(1)
	assert.Empty(t, p.Comments)
}
