package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/dto"
	"github.com/murkotick/catalog-mirror/internal/models/m_product"
	"github.com/murkotick/catalog-mirror/internal/pkg/clock"
)

// SpannerRepo stores products in the products table. Comments live in a JSON
// column since they are only ever written together with their product.
type SpannerRepo struct {
	client *spanner.Client
	clock  clock.Clock
}

func NewSpannerRepo(client *spanner.Client, clk clock.Clock) *SpannerRepo {
	return &SpannerRepo{client: client, clock: clk}
}

func (r *SpannerRepo) List(ctx context.Context) ([]domain.Product, error) {
	stmt := spanner.Statement{SQL: `SELECT product_id, name, image_url, count, width, height, weight, comments_json
		FROM products
		ORDER BY product_id ASC`}
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		p, err := scanProduct(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
}

func (r *SpannerRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return scanProduct(row)
}

// Create assigns max(product_id)+1 inside a read-write transaction, so
// concurrent creates are serialized by Spanner.
func (r *SpannerRepo) Create(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	now := r.clock.Now()

	var created domain.Product
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		iter := tx.Query(ctx, spanner.Statement{SQL: `SELECT IFNULL(MAX(product_id), 0) FROM products`})
		defer iter.Stop()

		row, err := iter.Next()
		if err != nil {
			return err
		}
		var maxID int64
		if err := row.Columns(&maxID); err != nil {
			return err
		}

		created = draft.Product(maxID + 1)
		values, err := buildInsertValues(created, now)
		if err != nil {
			return err
		}
		return tx.BufferWrite([]*spanner.Mutation{m_product.InsertMutation(values)})
	})
	if err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

func (r *SpannerRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := r.clock.Now()

	values, err := buildUpdateValues(p, now)
	if err != nil {
		return domain.Product{}, err
	}

	_, err = r.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		if _, err := tx.ReadRow(ctx, m_product.TableName, spanner.Key{p.ID}, []string{m_product.ColProductID}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.ErrProductNotFound
			}
			return err
		}
		return tx.BufferWrite([]*spanner.Mutation{m_product.UpdateMutation(p.ID, values)})
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p.Clone(), nil
}

func (r *SpannerRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Apply(ctx, []*spanner.Mutation{m_product.DeleteMutation(id)})
	return err
}

// buildUpdateValues constructs the values map used for updates.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildUpdateValues(p domain.Product, now time.Time) (map[string]interface{}, error) {
	comments, err := json.Marshal(dto.FromComments(p.Comments))
	if err != nil {
		return nil, fmt.Errorf("encode comments of product %d: %w", p.ID, err)
	}
	return m_product.BuildValuesMap(p.Name, p.ImageURL, int64(p.Count), p.Size.Width, p.Size.Height,
		p.Weight, string(comments), now.UTC()), nil
}

func buildInsertValues(p domain.Product, now time.Time) (map[string]interface{}, error) {
	comments, err := json.Marshal(dto.FromComments(p.Comments))
	if err != nil {
		return nil, fmt.Errorf("encode comments of product %d: %w", p.ID, err)
	}
	return m_product.BuildInsertMap(p.ID, p.Name, p.ImageURL, int64(p.Count), p.Size.Width, p.Size.Height,
		p.Weight, string(comments), now.UTC()), nil
}

func scanProduct(row *spanner.Row) (domain.Product, error) {
	var (
		id            int64
		name          string
		imageURL      string
		count         int64
		width, height float64
		weight        spanner.NullString
		commentsJSON  spanner.NullString
	)
	if err := row.Columns(&id, &name, &imageURL, &count, &width, &height, &weight, &commentsJSON); err != nil {
		return domain.Product{}, err
	}

	comments := make([]dto.CommentDTO, 0)
	if commentsJSON.Valid && commentsJSON.StringVal != "" {
		if err := json.Unmarshal([]byte(commentsJSON.StringVal), &comments); err != nil {
			return domain.Product{}, fmt.Errorf("decode comments of product %d: %w", id, err)
		}
	}

	return domain.Product{
		ID:       id,
		Name:     name,
		ImageURL: imageURL,
		Count:    int(count),
		Size:     domain.Size{Width: width, Height: height},
		Weight:   weight.StringVal,
		Comments: dto.ToComments(comments),
	}, nil
}
