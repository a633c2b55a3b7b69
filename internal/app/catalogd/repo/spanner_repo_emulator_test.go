package repo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/pkg/clock"
	"github.com/murkotick/catalog-mirror/internal/pkg/spannerdb"
)

var (
	emulatorOnce   sync.Once
	emulatorClient *spanner.Client
	emulatorErr    error
)

// newEmulatorRepo provisions one fresh database per test binary run and
// skips when no emulator is configured.
func newEmulatorRepo(t *testing.T) (*SpannerRepo, *clock.FakeClock) {
	t.Helper()
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	emulatorOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		emulatorClient, emulatorErr = provisionEmulator(ctx)
	})
	require.NoError(t, emulatorErr)

	// Tests share a database, start from an empty table.
	_, err := emulatorClient.Apply(context.Background(), []*spanner.Mutation{spanner.Delete("products", spanner.AllKeys())})
	require.NoError(t, err)

	clk := clock.NewFake(time.Now().UTC().Truncate(time.Second))
	return NewSpannerRepo(emulatorClient, clk), clk
}

func provisionEmulator(ctx context.Context) (*spanner.Client, error) {
	n := spannerdb.Name{
		Project:  envOr("SPANNER_PROJECT_ID", "test-project"),
		Instance: envOr("SPANNER_INSTANCE_ID", "emulator-instance"),
		Database: fmt.Sprintf("repo_%s", strings.ReplaceAll(uuid.New().String(), "-", ""))[:30],
	}

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return nil, err
	}
	defer instAdmin.Close()
	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return nil, err
	}
	defer dbAdmin.Close()

	if err := spannerdb.EnsureInstance(ctx, instAdmin, n); err != nil {
		return nil, err
	}
	if err := spannerdb.CreateDatabase(ctx, dbAdmin, n); err != nil {
		return nil, err
	}
	stmts, err := spannerdb.ReadDDL("../../../../migrations/001_initial_schema.sql")
	if err != nil {
		return nil, err
	}
	if err := spannerdb.ApplyDDL(ctx, dbAdmin, n, stmts); err != nil {
		return nil, err
	}
	return spanner.NewClient(ctx, n.String())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestSpannerRepo_CreateListGet(t *testing.T) {
	r, _ := newEmulatorRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := r.Create(ctx, draft("Apple", 5))
	require.NoError(t, err)
	b, err := r.Create(ctx, draft("Banana", 3))
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)

	items, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Empty(t, items[0].Comments)

	got, err := r.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestSpannerRepo_UpdateStoresComments(t *testing.T) {
	r, clk := newEmulatorRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := r.Create(ctx, draft("Apple", 5))
	require.NoError(t, err)

	c, err := domain.NewComment(uuid.NewString(), p.ID, "ripe", clk.Now())
	require.NoError(t, err)
	p, err = p.WithComment(c)
	require.NoError(t, err)
	p.Count = 9

	_, err = r.Update(ctx, p)
	require.NoError(t, err)

	got, err := r.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Count)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "ripe", got.Comments[0].Description)
	assert.True(t, clk.Now().Equal(got.Comments[0].Date))
}

func TestSpannerRepo_MissingRows(t *testing.T) {
	r, _ := newEmulatorRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := r.Get(ctx, 404)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = r.Update(ctx, draft("Ghost", 1).Product(404))
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, r.Delete(ctx, 404))
}
