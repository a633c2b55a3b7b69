// Package catalog wires the synchronization container: a snapshot store owned
// by one goroutine, the commands that reconcile it with the backend, and the
// selectors that read it.
package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	contracts "github.com/murkotick/catalog-mirror/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/queries/get_product"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/queries/list_comments"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/queries/list_products"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/snapshot"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/add_comment"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/delete_comment"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/delete_product"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/load_products"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/usecases/update_product"
	"github.com/murkotick/catalog-mirror/internal/pkg/clock"
	committer "github.com/murkotick/catalog-mirror/internal/pkg/committer"
)

// Commands groups write interactors.
type Commands struct {
	Load          *load_products.Interactor
	Create        *create_product.Interactor
	Update        *update_product.Interactor
	Delete        *delete_product.Interactor
	AddComment    *add_comment.Interactor
	DeleteComment *delete_comment.Interactor
}

// Queries groups read handlers.
type Queries struct {
	List     *list_products.Handler
	Get      *get_product.Handler
	Comments *list_comments.Handler
}

// Container is the presentation-facing surface of the mirror. All methods
// are safe for concurrent use; effects are applied in resolution order.
type Container struct {
	store    *snapshot.Store
	commands Commands
	queries  Queries
}

type options struct {
	clock  clock.Clock
	locale language.Tag
	log    *zap.Logger
	newID  func() string
}

// Option configures a Container.
type Option func(*options)

func WithClock(c clock.Clock) Option { return func(o *options) { o.clock = c } }

// WithLocale sets the collation used when listing by name.
func WithLocale(tag language.Tag) Option { return func(o *options) { o.locale = tag } }

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// WithCommentIDs replaces the UUID generator used for new comments.
func WithCommentIDs(gen func() string) Option { return func(o *options) { o.newID = gen } }

// New starts a container with an empty, idle snapshot. Close releases it.
func New(gw contracts.Gateway, opts ...Option) *Container {
	o := options{
		clock:  clock.RealClock{},
		locale: language.English,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	store := snapshot.NewStore(snapshot.WithLogger(o.log.Named("snapshot")))
	cm := committer.NewAdapter(store)

	update := update_product.NewInteractor(gw, cm)
	addComment := add_comment.NewInteractor(store, update, o.clock)
	if o.newID != nil {
		addComment.NewID = o.newID
	}

	return &Container{
		store: store,
		commands: Commands{
			Load:          load_products.NewInteractor(gw, cm, store, o.log.Named("load")),
			Create:        create_product.NewInteractor(gw, cm),
			Update:        update,
			Delete:        delete_product.NewInteractor(gw, cm),
			AddComment:    addComment,
			DeleteComment: delete_comment.NewInteractor(store, update),
		},
		queries: Queries{
			List:     list_products.NewHandler(store, o.locale),
			Get:      get_product.NewHandler(store),
			Comments: list_comments.NewHandler(store),
		},
	}
}

// Close stops the snapshot goroutine. Commands issued afterwards fail.
func (c *Container) Close() {
	c.store.Close()
}

// State returns a copy of the current snapshot.
func (c *Container) State() snapshot.State {
	return c.store.Snapshot()
}

// Subscribe delivers the snapshot after every change until cancel is called.
func (c *Container) Subscribe() (<-chan snapshot.State, func()) {
	return c.store.Subscribe()
}

// Commands

// LoadAll replaces the collection with the backend listing. Failures are
// both returned and recorded in State().Error.
func (c *Container) LoadAll(ctx context.Context) ([]domain.Product, error) {
	return c.commands.Load.Execute(ctx)
}

// EnsureLoaded runs LoadAll only while nothing has been loaded yet.
func (c *Container) EnsureLoaded(ctx context.Context) error {
	if c.store.Snapshot().Status != snapshot.StatusIdle {
		return nil
	}
	_, err := c.commands.Load.Execute(ctx)
	return err
}

// Create persists draft and mirrors the product returned by the backend.
// The draft must have passed Draft.Validate.
func (c *Container) Create(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	return c.commands.Create.Execute(ctx, draft)
}

func (c *Container) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	return c.commands.Update.Execute(ctx, p)
}

func (c *Container) Delete(ctx context.Context, id int64) error {
	return c.commands.Delete.Execute(ctx, id)
}

func (c *Container) AddComment(ctx context.Context, productID int64, text string) (domain.Product, error) {
	return c.commands.AddComment.Execute(ctx, add_comment.Request{ProductID: productID, Text: text})
}

func (c *Container) DeleteComment(ctx context.Context, productID int64, commentID string) (domain.Product, error) {
	return c.commands.DeleteComment.Execute(ctx, delete_comment.Request{ProductID: productID, CommentID: commentID})
}

// Selectors

func (c *Container) ListOrdered(by list_products.Criterion) []domain.Product {
	out, _ := c.queries.List.Execute(context.Background(), by)
	return out
}

// ByID reports domain.ErrProductNotFound for ids that are not mirrored.
func (c *Container) ByID(id int64) (domain.Product, error) {
	return c.queries.Get.Execute(context.Background(), id)
}

func (c *Container) CommentsFor(id int64) []domain.Comment {
	out, _ := c.queries.Comments.Execute(context.Background(), id)
	return out
}
