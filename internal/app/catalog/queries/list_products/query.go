package list_products

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

// Criterion selects the primary sort key of a listing.
type Criterion string

const (
	// ByName sorts by name ascending, then count descending.
	ByName Criterion = "name"
	// ByCount sorts by count descending, then name ascending.
	ByCount Criterion = "count"
)

// ParseCriterion accepts "name" or "count" (case-insensitive). Empty means ByName.
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(strings.ToLower(strings.TrimSpace(s))) {
	case "", ByName:
		return ByName, nil
	case ByCount:
		return ByCount, nil
	default:
		return "", fmt.Errorf("unknown sort criterion %q", s)
	}
}

// Order returns a sorted copy of products. Names are compared with the
// collation rules of locale; IDs break any remaining tie so the order is total.
func Order(products []domain.Product, by Criterion, locale language.Tag) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}

	// Collators keep internal buffers, one per call.
	col := collate.New(locale)
	byName := func(a, b domain.Product) int {
		return col.CompareString(a.Name, b.Name)
	}
	byCountDesc := func(a, b domain.Product) int {
		switch {
		case a.Count > b.Count:
			return -1
		case a.Count < b.Count:
			return 1
		}
		return 0
	}

	primary, secondary := byName, byCountDesc
	if by == ByCount {
		primary, secondary = byCountDesc, byName
	}

	slices.SortStableFunc(out, func(a, b domain.Product) int {
		if c := primary(a, b); c != 0 {
			return c
		}
		if c := secondary(a, b); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
