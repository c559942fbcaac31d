package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, cost, stock, manufactured, photo, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Cost, product.Stock,
		product.Manufactured, product.Photo, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No modifica Cost ni Stock (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, manufactured = $4, photo = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Manufactured, product.Photo, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStockAndCost escribe stock y HPP resultantes de un movimiento del libro.
func (r *ProductRepo) UpdateStockAndCost(ctx context.Context, id string, stock, cost int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, cost = $3, updated_at = now() WHERE id = $1`,
		id, stock, cost,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos del más reciente al más antiguo.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var w where
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Cost, &p.Stock, &p.Manufactured, &p.Photo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ repository.PriceOptionRepository = (*PriceOptionRepo)(nil)

// PriceOptionRepo variantes de precio.
type PriceOptionRepo struct {
	q Querier
}

// NewPriceOptionRepository construye el adaptador.
func NewPriceOptionRepository(q Querier) *PriceOptionRepo {
	return &PriceOptionRepo{q: q}
}

// GetByID obtiene una opción de precio.
func (r *PriceOptionRepo) GetByID(ctx context.Context, id string) (*entity.PriceOption, error) {
	var o entity.PriceOption
	err := r.q.QueryRow(ctx,
		`SELECT id, product_id, label, price, is_default FROM price_options WHERE id = $1`, id,
	).Scan(&o.ID, &o.ProductID, &o.Label, &o.Price, &o.IsDefault)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price option: %w", err)
	}
	return &o, nil
}

// ListByProduct devuelve la opción por defecto primero y luego por etiqueta.
func (r *PriceOptionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.PriceOption, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, label, price, is_default FROM price_options
		WHERE product_id = $1 ORDER BY is_default DESC, label, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price options: %w", err)
	}
	defer rows.Close()

	var list []*entity.PriceOption
	for rows.Next() {
		var o entity.PriceOption
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Label, &o.Price, &o.IsDefault); err != nil {
			return nil, fmt.Errorf("scan price option: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ReplaceForProduct borra las opciones del producto e inserta las nuevas. Llamar dentro de una tx.
func (r *PriceOptionRepo) ReplaceForProduct(ctx context.Context, productID string, options []*entity.PriceOption) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM price_options WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete price options: %w", err)
	}
	for _, o := range options {
		_, err := r.q.Exec(ctx,
			`INSERT INTO price_options (id, product_id, label, price, is_default) VALUES ($1, $2, $3, $4, $5)`,
			o.ID, productID, o.Label, o.Price, o.IsDefault,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert price option: %w", err)
		}
	}
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo líneas de BOM.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByProduct líneas de la receta ordenadas por ingrediente.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, ingredient_id, qty_per_unit FROM recipe_lines
		WHERE product_id = $1 ORDER BY ingredient_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()

	var list []*entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.IngredientID, &l.QtyPerUnit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ReplaceForProduct reemplaza la receta completa. Llamar dentro de una tx.
func (r *RecipeRepo) ReplaceForProduct(ctx context.Context, productID string, lines []*entity.RecipeLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO recipe_lines (id, product_id, ingredient_id, qty_per_unit) VALUES ($1, $2, $3, $4)`,
			l.ID, productID, l.IngredientID, l.QtyPerUnit,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}
