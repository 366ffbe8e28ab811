// Package shopping turns a user's shopping list into a summed ingredient list
// and renders it as a downloadable text document.
package shopping

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/foodgram/foodgram-server/internal/domain"
)

// Item is one aggregated shopping-list line.
type Item struct {
	Name  string `json:"name"`
	Unit  string `json:"measurement_unit"`
	Total int64  `json:"total_amount"`
}

// CartSource yields the ungrouped ingredient rows behind a user's shopping list.
type CartSource interface {
	ListIngredientsInCart(ctx context.Context, userID string) ([]domain.CartLine, error)
}

// Aggregator sums a user's shopping list by ingredient.
type Aggregator struct {
	src CartSource
}

// NewAggregator creates an aggregator reading from src.
func NewAggregator(src CartSource) *Aggregator {
	return &Aggregator{src: src}
}

// Aggregate returns one Item per (name, unit) across every recipe in the
// user's shopping list. An empty list yields an empty, non-nil slice.
func (a *Aggregator) Aggregate(ctx context.Context, userID string) ([]Item, error) {
	lines, err := a.src.ListIngredientsInCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart ingredients: %w", err)
	}
	return Group(lines), nil
}

type groupKey struct {
	name string
	unit string
}

// Group sums lines by (name, unit) and sorts by name then unit in code-point order.
// The result does not depend on the order of lines.
func Group(lines []domain.CartLine) []Item {
	totals := make(map[groupKey]int64, len(lines))
	for _, l := range lines {
		totals[groupKey{name: l.Name, unit: l.MeasurementUnit}] += int64(l.Amount)
	}

	items := make([]Item, 0, len(totals))
	for k, total := range totals {
		items = append(items, Item{Name: k.name, Unit: k.unit, Total: total})
	}

	slices.SortFunc(items, func(a, b Item) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Unit, b.Unit)
	})
	return items
}
