package repository

import (
	"cmp"
	"context"
	"slices"

	hallserrors "utsav/internal/halls/errors"
	"utsav/pkg/model"
)

// MemoryHallRepository serves a fixed catalog. It never changes after
// construction, so reads need no lock.
type MemoryHallRepository struct {
	halls []model.Hall
}

func NewMemoryHallRepository(halls []model.Hall) *MemoryHallRepository {
	sorted := slices.Clone(halls)
	slices.SortStableFunc(sorted, func(a, b model.Hall) int {
		return cmp.Or(cmp.Compare(a.City, b.City), cmp.Compare(a.Name, b.Name))
	})
	return &MemoryHallRepository{halls: sorted}
}

func (r *MemoryHallRepository) List(ctx context.Context, cityKey string) ([]*model.Hall, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []*model.Hall{}
	for i := range r.halls {
		if cityKey == "" || r.halls[i].CityKey == cityKey {
			h := r.halls[i]
			h.Amenities = slices.Clone(h.Amenities)
			out = append(out, &h)
		}
	}
	return out, nil
}

func (r *MemoryHallRepository) FindByID(ctx context.Context, id string) (*model.Hall, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range r.halls {
		if r.halls[i].ID == id {
			h := r.halls[i]
			h.Amenities = slices.Clone(h.Amenities)
			return &h, nil
		}
	}
	return nil, hallserrors.ErrNotFound
}
