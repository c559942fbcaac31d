package repository

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// RoomRepository persiste los Rooms y sus líneas.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	// GetByCodeForUpdate bloquea la fila del Room para serializar terminales concurrentes.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Room, error)
	UpdateStatus(ctx context.Context, roomID, status string) error
	// ListByStatus ordena del más reciente al más antiguo.
	ListByStatus(ctx context.Context, status string) ([]*entity.Room, error)

	ListItems(ctx context.Context, roomID string) ([]*entity.RoomItem, error)
	GetItem(ctx context.Context, roomID, productID string) (*entity.RoomItem, error)
	UpsertItem(ctx context.Context, item *entity.RoomItem) error
	DeleteItem(ctx context.Context, roomID, productID string) error
	DeleteItems(ctx context.Context, roomID string) error
	SumQuantity(ctx context.Context, roomID string) (int64, error)
}
