package cart

import (
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ToViewResponse mapea la vista del carrito.
func ToViewResponse(v *View) *dto.CartViewResponse {
	lines := make([]dto.CartLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, dto.CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Price * l.Quantity,
			Photo:     l.Photo,
			Stock:     l.Stock,
		})
	}
	return &dto.CartViewResponse{
		Mode:     v.Mode,
		RoomCode: v.RoomCode,
		Lines:    lines,
		Total:    v.Total,
		Profit:   v.Profit,
		Count:    v.Count,
	}
}

// ToRoomResponse mapea un Room.
func ToRoomResponse(r *entity.Room, itemCount int64) dto.RoomResponse {
	return dto.RoomResponse{Code: r.Code, Status: r.Status, ItemCount: itemCount, CreatedAt: r.CreatedAt}
}

// ToRoomListResponse mapea los listados de Rooms.
func ToRoomListResponse(open, closed []RoomSummary) *dto.RoomListResponse {
	out := &dto.RoomListResponse{
		Open:   make([]dto.RoomResponse, 0, len(open)),
		Closed: make([]dto.RoomResponse, 0, len(closed)),
	}
	for _, r := range open {
		out.Open = append(out.Open, ToRoomResponse(r.Room, r.ItemCount))
	}
	for _, r := range closed {
		out.Closed = append(out.Closed, ToRoomResponse(r.Room, r.ItemCount))
	}
	return out
}
