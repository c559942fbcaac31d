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

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo carritos compartidos y sus líneas.
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

// Create inserta un Room. Un código repetido devuelve domain.ErrDuplicate
// (dentro de una tx la transacción queda abortada: verificar antes con GetByCode).
func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO rooms (id, code, status, created_at) VALUES ($1, $2, $3, $4)`,
		room.ID, room.Code, room.Status, room.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetByCode obtiene un Room por código.
func (r *RoomRepo) GetByCode(ctx context.Context, code string) (*entity.Room, error) {
	return r.get(ctx, `SELECT id, code, status, created_at FROM rooms WHERE code = $1`, code)
}

// GetByCodeForUpdate obtiene el Room bloqueando su fila.
func (r *RoomRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Room, error) {
	return r.get(ctx, `SELECT id, code, status, created_at FROM rooms WHERE code = $1 FOR UPDATE`, code)
}

func (r *RoomRepo) get(ctx context.Context, query, code string) (*entity.Room, error) {
	var room entity.Room
	err := r.q.QueryRow(ctx, query, code).Scan(&room.ID, &room.Code, &room.Status, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// UpdateStatus cambia el estado del Room.
func (r *RoomRepo) UpdateStatus(ctx context.Context, roomID, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE rooms SET status = $2 WHERE id = $1`, roomID, status)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// ListByStatus Rooms del estado dado, del más reciente al más antiguo.
func (r *RoomRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Room, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, code, status, created_at FROM rooms WHERE status = $1 ORDER BY created_at DESC, code`, status)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var list []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Code, &room.Status, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, &room)
	}
	return list, rows.Err()
}

// ListItems líneas del Room ordenadas por producto.
func (r *RoomRepo) ListItems(ctx context.Context, roomID string) ([]*entity.RoomItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT room_id, product_id, quantity, price FROM room_items WHERE room_id = $1 ORDER BY product_id`, roomID)
	if err != nil {
		return nil, fmt.Errorf("list room items: %w", err)
	}
	defer rows.Close()

	var list []*entity.RoomItem
	for rows.Next() {
		var it entity.RoomItem
		if err := rows.Scan(&it.RoomID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan room item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetItem línea del producto en el Room o nil.
func (r *RoomRepo) GetItem(ctx context.Context, roomID, productID string) (*entity.RoomItem, error) {
	var it entity.RoomItem
	err := r.q.QueryRow(ctx,
		`SELECT room_id, product_id, quantity, price FROM room_items WHERE room_id = $1 AND product_id = $2`,
		roomID, productID,
	).Scan(&it.RoomID, &it.ProductID, &it.Quantity, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room item: %w", err)
	}
	return &it, nil
}

// UpsertItem inserta o sobrescribe cantidad y precio de la línea.
func (r *RoomRepo) UpsertItem(ctx context.Context, it *entity.RoomItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO room_items (room_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price`,
		it.RoomID, it.ProductID, it.Quantity, it.Price,
	)
	if err != nil {
		return fmt.Errorf("upsert room item: %w", err)
	}
	return nil
}

// DeleteItem quita la línea (sin error si no existe).
func (r *RoomRepo) DeleteItem(ctx context.Context, roomID, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM room_items WHERE room_id = $1 AND product_id = $2`, roomID, productID); err != nil {
		return fmt.Errorf("delete room item: %w", err)
	}
	return nil
}

// DeleteItems vacía el Room.
func (r *RoomRepo) DeleteItems(ctx context.Context, roomID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM room_items WHERE room_id = $1`, roomID); err != nil {
		return fmt.Errorf("delete room items: %w", err)
	}
	return nil
}

// SumQuantity suma de cantidades del Room (0 si está vacío).
func (r *RoomRepo) SumQuantity(ctx context.Context, roomID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0)::bigint FROM room_items WHERE room_id = $1`, roomID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum room items: %w", err)
	}
	return total, nil
}
