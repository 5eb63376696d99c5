package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"task-board/internal/model"
	"task-board/internal/repository"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidHex    = errors.New("invalid hex color")
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// StatusInput is what an operator supplies for a status.
type StatusInput struct {
	Name     string
	Color    string
	Hex      string
	Category string
}

// StatusService administers statuses and colors.
type StatusService struct {
	statuses StatusStore
	colors   ColorStore
}

func NewStatusService(statuses StatusStore, colors ColorStore) *StatusService {
	return &StatusService{statuses: statuses, colors: colors}
}

func (s *StatusService) Palette(ctx context.Context) (Palette, error) {
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return Palette{}, err
	}
	colors, err := s.colors.List(ctx)
	if err != nil {
		return Palette{}, err
	}
	return NewPalette(statuses).WithColorOrder(colors), nil
}

func (s *StatusService) ListStatuses(ctx context.Context) ([]model.Status, error) {
	return s.statuses.List(ctx)
}

func (s *StatusService) CreateStatus(ctx context.Context, input StatusInput) (*model.Status, error) {
	status, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.statuses.Create(ctx, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *StatusService) UpdateStatus(ctx context.Context, id uint, input StatusInput) (*model.Status, error) {
	status, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	status.ID = id
	if err := s.statuses.Update(ctx, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *StatusService) DeleteStatus(ctx context.Context, id uint) error {
	return s.statuses.Delete(ctx, id)
}

// build validates input and takes the color class from the first color
// matching the hex, keeping the given class when none matches.
func (s *StatusService) build(ctx context.Context, input StatusInput) (model.Status, error) {
	status := model.Status{
		Name:     strings.TrimSpace(input.Name),
		Color:    strings.TrimSpace(input.Color),
		Hex:      strings.ToLower(strings.TrimSpace(input.Hex)),
		Category: strings.TrimSpace(input.Category),
	}
	if status.Name == "" || status.Hex == "" || status.Category == "" {
		return model.Status{}, ErrMissingFields
	}
	if !hexPattern.MatchString(status.Hex) {
		return model.Status{}, fmt.Errorf("%w: %q", ErrInvalidHex, input.Hex)
	}

	color, err := s.colors.FindByHex(ctx, status.Hex)
	switch {
	case err == nil:
		if color.TailwindClass != "" {
			status.Color = color.TailwindClass
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		return model.Status{}, err
	}
	if status.Color == "" {
		return model.Status{}, ErrMissingFields
	}
	return status, nil
}

func (s *StatusService) ListColors(ctx context.Context) ([]model.Color, error) {
	return s.colors.List(ctx)
}

func (s *StatusService) CreateColor(ctx context.Context, name, hex, class string) (*model.Color, error) {
	color := model.Color{
		Name:          strings.TrimSpace(name),
		Hex:           strings.ToLower(strings.TrimSpace(hex)),
		TailwindClass: strings.TrimSpace(class),
	}
	if color.Name == "" || color.Hex == "" {
		return nil, fmt.Errorf("%w: name, hex", ErrMissingFields)
	}
	if !hexPattern.MatchString(color.Hex) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	if err := s.colors.Create(ctx, &color); err != nil {
		return nil, err
	}
	return &color, nil
}

func (s *StatusService) DeleteColor(ctx context.Context, id uint) error {
	return s.colors.Delete(ctx, id)
}
