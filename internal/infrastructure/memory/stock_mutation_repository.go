package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

type mutationRepo struct{ r *Repos }

func (m mutationRepo) Create(ctx context.Context, mutation *entity.StockMutation) error {
	return m.r.write(ctx, func(st *state) error {
		st.mutations = append(st.mutations, *mutation)
		return nil
	})
}

func (m mutationRepo) LastByProduct(_ context.Context, productID string) (*entity.StockMutation, error) {
	var out *entity.StockMutation
	err := m.r.read(func(st *state) error {
		for i := len(st.mutations) - 1; i >= 0; i-- {
			if st.mutations[i].ProductID == productID {
				v := st.mutations[i]
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List filtra y ordena por fecha; dentro de la misma fecha conserva el orden de inserción.
func (m mutationRepo) List(_ context.Context, f repository.MutationFilter) ([]*entity.StockMutation, error) {
	var out []*entity.StockMutation
	err := m.r.read(func(st *state) error {
		for _, v := range st.mutations {
			if f.ProductID != "" && v.ProductID != f.ProductID {
				continue
			}
			if f.Direction != "" && v.Direction != f.Direction {
				continue
			}
			if f.DateFrom != "" && v.Date < f.DateFrom {
				continue
			}
			if f.DateTo != "" && v.Date > f.DateTo {
				continue
			}
			out = append(out, &v)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return paginate(out, f.Limit, f.Offset), err
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortPriceOptions(list []*entity.PriceOption) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		if list[i].Label != list[j].Label {
			return list[i].Label < list[j].Label
		}
		return list[i].ID < list[j].ID
	})
}
