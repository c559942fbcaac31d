package memory

import (
	"context"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

type productRepo struct{ r *Repos }

func (p productRepo) Create(ctx context.Context, product *entity.Product) error {
	return p.r.write(ctx, func(st *state) error {
		st.products[product.ID] = *product
		st.productOrder = append(st.productOrder, product.ID)
		return nil
	})
}

func (p productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := p.r.read(func(st *state) error {
		if v, ok := st.products[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria no bloquea filas: las transacciones ya están serializadas.
func (p productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return p.GetByID(ctx, id)
}

func (p productRepo) Update(ctx context.Context, product *entity.Product) error {
	return p.r.write(ctx, func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return nil
		}
		cur.Name = product.Name
		cur.Price = product.Price
		cur.Photo = product.Photo
		cur.Manufactured = product.Manufactured
		cur.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = cur
		return nil
	})
}

func (p productRepo) UpdateStockAndCost(ctx context.Context, id string, stock, cost int64) error {
	return p.r.write(ctx, func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return nil
		}
		cur.Stock = stock
		cur.Cost = cost
		cur.UpdatedAt = time.Now()
		st.products[id] = cur
		return nil
	})
}

// List devuelve del más reciente al más antiguo.
func (p productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := p.r.read(func(st *state) error {
		for i := len(st.productOrder) - 1; i >= 0; i-- {
			v := st.products[st.productOrder[i]]
			out = append(out, &v)
		}
		return nil
	})
	return paginate(out, limit, offset), err
}

type priceOptionRepo struct{ r *Repos }

func (p priceOptionRepo) GetByID(_ context.Context, id string) (*entity.PriceOption, error) {
	var out *entity.PriceOption
	err := p.r.read(func(st *state) error {
		if v, ok := st.priceOptions[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (p priceOptionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.PriceOption, error) {
	var out []*entity.PriceOption
	err := p.r.read(func(st *state) error {
		for _, v := range st.priceOptions {
			if v.ProductID == productID {
				out = append(out, &v)
			}
		}
		return nil
	})
	sortPriceOptions(out)
	return out, err
}

func (p priceOptionRepo) ReplaceForProduct(ctx context.Context, productID string, options []*entity.PriceOption) error {
	return p.r.write(ctx, func(st *state) error {
		for id, v := range st.priceOptions {
			if v.ProductID == productID {
				delete(st.priceOptions, id)
			}
		}
		for _, o := range options {
			st.priceOptions[o.ID] = *o
		}
		return nil
	})
}

type recipeRepo struct{ r *Repos }

func (p recipeRepo) ListByProduct(_ context.Context, productID string) ([]*entity.RecipeLine, error) {
	var out []*entity.RecipeLine
	err := p.r.read(func(st *state) error {
		for _, l := range st.recipes[productID] {
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

func (p recipeRepo) ReplaceForProduct(ctx context.Context, productID string, lines []*entity.RecipeLine) error {
	return p.r.write(ctx, func(st *state) error {
		if len(lines) == 0 {
			delete(st.recipes, productID)
			return nil
		}
		cp := make([]entity.RecipeLine, 0, len(lines))
		for _, l := range lines {
			cp = append(cp, *l)
		}
		st.recipes[productID] = cp
		return nil
	})
}

type customerRepo struct{ r *Repos }

func (c customerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return c.r.write(ctx, func(st *state) error {
		st.customers[customer.ID] = *customer
		return nil
	})
}

func (c customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := c.r.read(func(st *state) error {
		if v, ok := st.customers[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}
