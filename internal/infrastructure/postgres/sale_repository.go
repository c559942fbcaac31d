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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, to_char(sale_date, 'YYYY-MM-DD'), total, COALESCE(customer_id, ''), amount_paid,
	change_amount, status, outstanding, COALESCE(to_char(due_date, 'YYYY-MM-DD'), ''), created_at`

// SaleRepo ventas confirmadas (inmutables) y sus líneas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta. CustomerID y DueDate vacíos se guardan como NULL.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_date, total, customer_id, amount_paid, change_amount, status, outstanding, due_date, created_at)
		VALUES ($1, $2::date, $3, NULLIF($4, ''), $5, $6, $7, $8, NULLIF($9, '')::date, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.Total, s.CustomerID, s.AmountPaid, s.Change, s.Status, s.Outstanding, s.DueDate, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de la venta.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sale_lines (id, sale_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
		l.ID, l.SaleID, l.ProductID, l.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListLines líneas de la venta en orden de producto.
func (r *SaleRepo) ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, quantity FROM sale_lines WHERE sale_id = $1 ORDER BY product_id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List ventas filtradas, de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var w where
	w.add("status = $%d", f.Status)
	w.add("sale_date >= $%d::date", f.DateFrom)
	w.add("sale_date <= $%d::date", f.DateTo)
	query := `SELECT ` + saleColumns + ` FROM sales` + w.String() +
		` ORDER BY sale_date DESC, seq DESC` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Date, &s.Total, &s.CustomerID, &s.AmountPaid,
		&s.Change, &s.Status, &s.Outstanding, &s.DueDate, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
