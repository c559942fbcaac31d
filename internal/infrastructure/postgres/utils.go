package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios no saben si corren en una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// where acumula condiciones y argumentos posicionales de un filtro opcional.
type where struct {
	conds []string
	args  []any
}

// add agrega la condición si value no está vacío; %d se reemplaza por el número del argumento.
func (w *where) add(cond string, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET. Limit <= 0 = sin límite (LIMIT NULL).
func (w *where) page(limit, offset int) string {
	var lim any
	if limit > 0 {
		lim = limit
	}
	w.args = append(w.args, lim, max(offset, 0))
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}
