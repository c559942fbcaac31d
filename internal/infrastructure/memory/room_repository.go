package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

type roomRepo struct{ r *Repos }

func (p roomRepo) Create(ctx context.Context, room *entity.Room) error {
	return p.r.write(ctx, func(st *state) error {
		for _, v := range st.rooms {
			if v.Code == room.Code {
				return domain.ErrDuplicate
			}
		}
		st.rooms = append(st.rooms, *room)
		return nil
	})
}

func (p roomRepo) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	var out *entity.Room
	err := p.r.read(func(st *state) error {
		for _, v := range st.rooms {
			if v.Code == code {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (p roomRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Room, error) {
	return p.GetByCode(ctx, code)
}

func (p roomRepo) UpdateStatus(ctx context.Context, roomID, status string) error {
	return p.r.write(ctx, func(st *state) error {
		for i := range st.rooms {
			if st.rooms[i].ID == roomID {
				st.rooms[i].Status = status
			}
		}
		return nil
	})
}

func (p roomRepo) ListByStatus(_ context.Context, status string) ([]*entity.Room, error) {
	var out []*entity.Room
	err := p.r.read(func(st *state) error {
		for i := len(st.rooms) - 1; i >= 0; i-- {
			if st.rooms[i].Status == status {
				v := st.rooms[i]
				out = append(out, &v)
			}
		}
		return nil
	})
	return out, err
}

func (p roomRepo) ListItems(_ context.Context, roomID string) ([]*entity.RoomItem, error) {
	var out []*entity.RoomItem
	err := p.r.read(func(st *state) error {
		for _, v := range st.roomItems[roomID] {
			out = append(out, &v)
		}
		return nil
	})
	sortRoomItems(out)
	return out, err
}

func (p roomRepo) GetItem(_ context.Context, roomID, productID string) (*entity.RoomItem, error) {
	var out *entity.RoomItem
	err := p.r.read(func(st *state) error {
		if v, ok := st.roomItems[roomID][productID]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (p roomRepo) UpsertItem(ctx context.Context, item *entity.RoomItem) error {
	return p.r.write(ctx, func(st *state) error {
		items, ok := st.roomItems[item.RoomID]
		if !ok {
			items = make(map[string]entity.RoomItem)
			st.roomItems[item.RoomID] = items
		}
		items[item.ProductID] = *item
		return nil
	})
}

func (p roomRepo) DeleteItem(ctx context.Context, roomID, productID string) error {
	return p.r.write(ctx, func(st *state) error {
		delete(st.roomItems[roomID], productID)
		return nil
	})
}

func (p roomRepo) DeleteItems(ctx context.Context, roomID string) error {
	return p.r.write(ctx, func(st *state) error {
		delete(st.roomItems, roomID)
		return nil
	})
}

func (p roomRepo) SumQuantity(_ context.Context, roomID string) (int64, error) {
	var sum int64
	err := p.r.read(func(st *state) error {
		for _, v := range st.roomItems[roomID] {
			sum += v.Quantity
		}
		return nil
	})
	return sum, err
}

func sortRoomItems(list []*entity.RoomItem) {
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
}
