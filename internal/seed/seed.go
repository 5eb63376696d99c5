// Package seed installs the default status palette into an empty store.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"task-board/internal/model"
)

//go:embed statuses.yaml
var statusesYAML []byte

//go:embed colors.yaml
var colorsYAML []byte

// Store is the subset of the status and color repositories seeding needs.
type Store[T any] interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, item *T) error
}

func DefaultStatuses() ([]model.Status, error) {
	var statuses []model.Status
	if err := yaml.Unmarshal(statusesYAML, &statuses); err != nil {
		return nil, fmt.Errorf("parse default statuses: %w", err)
	}
	return statuses, nil
}

func DefaultColors() ([]model.Color, error) {
	var colors []model.Color
	if err := yaml.Unmarshal(colorsYAML, &colors); err != nil {
		return nil, fmt.Errorf("parse default colors: %w", err)
	}
	return colors, nil
}

// Result reports how many rows were inserted.
type Result struct {
	Statuses int
	Colors   int
}

// Seed fills each table from the defaults when it is empty. Tables that
// already hold rows are left alone.
func Seed(ctx context.Context, statuses Store[model.Status], colors Store[model.Color]) (Result, error) {
	var res Result

	defaultColors, err := DefaultColors()
	if err != nil {
		return res, err
	}
	if res.Colors, err = fill(ctx, colors, defaultColors); err != nil {
		return res, fmt.Errorf("seed colors: %w", err)
	}

	defaultStatuses, err := DefaultStatuses()
	if err != nil {
		return res, err
	}
	if res.Statuses, err = fill(ctx, statuses, defaultStatuses); err != nil {
		return res, fmt.Errorf("seed statuses: %w", err)
	}
	return res, nil
}

func fill[T any](ctx context.Context, store Store[T], items []T) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range items {
		if err := store.Create(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
