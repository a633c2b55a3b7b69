package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/docopt/docopt-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/catalog-mirror/internal/app/catalog"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/dto"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/queries/list_products"
)

const maxParallelDeletes = 4

// app renders container results for a terminal.
type app struct {
	c   *catalog.Container
	out io.Writer
	log *zap.Logger
}

func (a *app) list(by list_products.Criterion) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOUNT\tSIZE\tWEIGHT\tCOMMENTS")
	for _, p := range a.c.ListOrdered(by) {
		fmt.Fprintf(w, "%d\t%s\t%d\t%gx%g\t%s\t%d\n",
			p.ID, p.Name, p.Count, p.Size.Width, p.Size.Height, p.Weight, len(p.Comments))
	}
	return w.Flush()
}

func (a *app) show(id int64) error {
	p, err := a.c.ByID(id)
	if err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}
	return a.printJSON(dto.FromProduct(p))
}

func (a *app) comments(id int64) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION")
	for _, c := range a.c.CommentsFor(id) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Date.UTC().Format("2006-01-02 15:04"), c.Description)
	}
	return w.Flush()
}

func (a *app) create(ctx context.Context, opts docopt.Opts) error {
	var d domain.Draft
	if err := applyFields(opts, &d.Name, &d.ImageURL, &d.Count, &d.Size, &d.Weight); err != nil {
		return err
	}
	return a.submit(ctx, d)
}

// copyProduct creates a new product from an existing one, with the given
// fields overridden. Comments stay with the source product.
func (a *app) copyProduct(ctx context.Context, id int64, opts docopt.Opts) error {
	p, err := a.c.ByID(id)
	if err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}
	d := p.Draft()
	d.Comments = nil
	if err := applyFields(opts, &d.Name, &d.ImageURL, &d.Count, &d.Size, &d.Weight); err != nil {
		return err
	}
	return a.submit(ctx, d)
}

func (a *app) submit(ctx context.Context, d domain.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	created, err := a.c.Create(ctx, d)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	a.log.Info("product created", zap.Int64("product_id", created.ID))
	return a.printJSON(dto.FromProduct(created))
}

// update edits only the fields given on the command line.
func (a *app) update(ctx context.Context, id int64, opts docopt.Opts) error {
	p, err := a.c.ByID(id)
	if err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}
	if err := applyFields(opts, &p.Name, &p.ImageURL, &p.Count, &p.Size, &p.Weight); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	updated, err := a.c.Update(ctx, p)
	if err != nil {
		return fmt.Errorf("update %d: %w", id, err)
	}
	return a.printJSON(dto.FromProduct(updated))
}

// deleteAll issues the deletes concurrently. Every id is attempted; the
// first failure is reported.
func (a *app) deleteAll(ctx context.Context, ids []int64) error {
	var g errgroup.Group
	g.SetLimit(maxParallelDeletes)
	for _, id := range ids {
		g.Go(func() error {
			if err := a.c.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete %d: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintf(a.out, "deleted %d\n", id)
	}
	return nil
}

func (a *app) commentAdd(ctx context.Context, productID int64, text string) error {
	p, err := a.c.AddComment(ctx, productID, text)
	if err != nil {
		return fmt.Errorf("comment on %d: %w", productID, err)
	}
	if n := len(p.Comments); n > 0 {
		fmt.Fprintf(a.out, "added comment %s\n", p.Comments[n-1].ID)
	}
	return nil
}

func (a *app) commentDelete(ctx context.Context, productID int64, commentID string) error {
	if _, err := a.c.DeleteComment(ctx, productID, commentID); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}
	fmt.Fprintf(a.out, "deleted comment %s\n", commentID)
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func applyFields(opts docopt.Opts, name, imageURL *string, count *int, size *domain.Size, weight *string) error {
	if v, ok := optString(opts, "--name"); ok {
		*name = v
	}
	if v, ok := optString(opts, "--image"); ok {
		*imageURL = v
	}
	if v, ok := optString(opts, "--weight"); ok {
		*weight = v
	}

	n, ok, err := optInt(opts, "--count")
	if err != nil {
		return err
	}
	if ok {
		*count = n
	}

	w, ok, err := optFloat(opts, "--width")
	if err != nil {
		return err
	}
	if ok {
		size.Width = w
	}

	h, ok, err := optFloat(opts, "--height")
	if err != nil {
		return err
	}
	if ok {
		size.Height = h
	}
	return nil
}
