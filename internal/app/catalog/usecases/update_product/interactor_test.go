package update_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/testkit"
	committer "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

func seeded(t *testing.T, ps ...domain.Product) (*Interactor, *snapshot.Store, *testkit.Gateway) {
	t.Helper()
	store := snapshot.NewStore()
	t.Cleanup(store.Close)

	gw := testkit.NewGateway(ps...)
	tok := store.NextLoadToken()
	require.NoError(t, store.Apply(context.Background(), snapshot.BeginLoad(tok), snapshot.CompleteLoad(tok, ps)))
	return NewInteractor(gw, committer.NewAdapter(store)), store, gw
}

func TestExecute_ReplacesInPlace(t *testing.T) {
	uc, store, _ := seeded(t,
		domain.Product{ID: 1, Name: "A", ImageURL: "u", Count: 1},
		domain.Product{ID: 2, Name: "B", ImageURL: "u", Count: 2},
	)

	edited := domain.Product{ID: 1, Name: "A+", ImageURL: "u", Count: 10}
	got, err := uc.Execute(context.Background(), edited)
	require.NoError(t, err)
	assert.Equal(t, "A+", got.Name)

	st := store.Snapshot()
	require.Len(t, st.Products, 2)
	assert.Equal(t, "A+", st.Products[0].Name)
	assert.Equal(t, 10, st.Products[0].Count)
}

func TestExecute_UnknownIDNotInserted(t *testing.T) {
	uc, store, gw := seeded(t, domain.Product{ID: 1, Name: "A", ImageURL: "u"})
	// The backend knows product 7, the mirror does not.
	gw.Seed(domain.Product{ID: 1, Name: "A", ImageURL: "u"}, domain.Product{ID: 7, Name: "G", ImageURL: "u"})
	before := store.Snapshot()

	_, err := uc.Execute(context.Background(), domain.Product{ID: 7, Name: "G2", ImageURL: "u"})
	require.NoError(t, err)

	assert.Equal(t, before.Products, store.Snapshot().Products)
}

func TestExecute_FailureLeavesSnapshot(t *testing.T) {
	uc, store, gw := seeded(t, domain.Product{ID: 1, Name: "A", ImageURL: "u"})
	gw.Fail(testkit.OpUpdate, testkit.ErrInjected)
	before := store.Snapshot()

	_, err := uc.Execute(context.Background(), domain.Product{ID: 1, Name: "changed", ImageURL: "u"})
	require.ErrorIs(t, err, testkit.ErrInjected)
	assert.Equal(t, before, store.Snapshot())
}

func TestExecute_ForeignEchoIsRejected(t *testing.T) {
	uc, store, gw := seeded(t,
		domain.Product{ID: 1, Name: "A", ImageURL: "u"},
		domain.Product{ID: 2, Name: "B", ImageURL: "u"},
	)
	gw.Normalize = func(p domain.Product) domain.Product {
		p.ID = 2
		return p
	}
	before := store.Snapshot()

	_, err := uc.Execute(context.Background(), domain.Product{ID: 1, Name: "A+", ImageURL: "u"})
	require.ErrorIs(t, err, ErrForeignEcho)
	assert.Equal(t, before, store.Snapshot())
}
