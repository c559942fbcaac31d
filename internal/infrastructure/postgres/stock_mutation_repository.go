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

var _ repository.StockMutationRepository = (*StockMutationRepo)(nil)

const mutationColumns = `id, product_id, direction, quantity, to_char(movement_date, 'YYYY-MM-DD'),
	unit_cost, note, reference, stock_after, created_at`

// StockMutationRepo libro de movimientos (solo inserción). seq conserva el orden de inserción.
type StockMutationRepo struct {
	q Querier
}

// NewStockMutationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMutationRepository(q Querier) *StockMutationRepo {
	return &StockMutationRepo{q: q}
}

// Create inserta una fila del libro.
func (r *StockMutationRepo) Create(ctx context.Context, m *entity.StockMutation) error {
	query := `
		INSERT INTO stock_mutations (id, product_id, direction, quantity, movement_date, unit_cost, note, reference, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Direction, m.Quantity, m.Date, m.UnitCost, m.Note, m.Reference, m.StockAfter, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock mutation: %w", err)
	}
	return nil
}

// LastByProduct fila más reciente del producto (por orden de inserción).
func (r *StockMutationRepo) LastByProduct(ctx context.Context, productID string) (*entity.StockMutation, error) {
	query := `SELECT ` + mutationColumns + ` FROM stock_mutations WHERE product_id = $1 ORDER BY seq DESC LIMIT 1`
	m, err := scanMutation(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last stock mutation: %w", err)
	}
	return m, nil
}

// List filtra por producto, dirección y rango de fechas; ordena por fecha y luego inserción.
func (r *StockMutationRepo) List(ctx context.Context, f repository.MutationFilter) ([]*entity.StockMutation, error) {
	var w where
	w.add("product_id = $%d", f.ProductID)
	w.add("direction = $%d", f.Direction)
	w.add("movement_date >= $%d::date", f.DateFrom)
	w.add("movement_date <= $%d::date", f.DateTo)
	query := `SELECT ` + mutationColumns + ` FROM stock_mutations` + w.String() +
		` ORDER BY movement_date, seq` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock mutations: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMutation
	for rows.Next() {
		m, err := scanMutation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock mutation: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMutation(row pgx.Row) (*entity.StockMutation, error) {
	var m entity.StockMutation
	err := row.Scan(&m.ID, &m.ProductID, &m.Direction, &m.Quantity, &m.Date,
		&m.UnitCost, &m.Note, &m.Reference, &m.StockAfter, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
