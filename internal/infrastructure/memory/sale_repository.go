package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

type saleRepo struct{ r *Repos }

func (s saleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return s.r.write(ctx, func(st *state) error {
		st.sales = append(st.sales, *sale)
		return nil
	})
}

func (s saleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	return s.r.write(ctx, func(st *state) error {
		st.saleLines[line.SaleID] = append(st.saleLines[line.SaleID], *line)
		return nil
	})
}

func (s saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := s.r.read(func(st *state) error {
		for _, v := range st.sales {
			if v.ID == id {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (s saleRepo) ListLines(_ context.Context, saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	err := s.r.read(func(st *state) error {
		for _, v := range st.saleLines[saleID] {
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

// List de la venta más reciente a la más antigua (por fecha y luego inserción).
func (s saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := s.r.read(func(st *state) error {
		for i := len(st.sales) - 1; i >= 0; i-- {
			v := st.sales[i]
			if f.Status != "" && v.Status != f.Status {
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
	sortSalesByDateDesc(out)
	return paginate(out, f.Limit, f.Offset), err
}

func sortSalesByDateDesc(list []*entity.Sale) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date > list[j].Date })
}
