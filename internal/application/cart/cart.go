package cart

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// Modos de carrito.
const (
	ModeRoom    = "room"
	ModeSession = "session"
)

// Cart contrato único del carrito, con dos implementaciones elegidas por petición
// según haya o no un Room adjunto a la sesión.
type Cart interface {
	Mode() string
	RoomCode() string
	// Lines devuelve las líneas con nombre, foto, stock y HPP vigentes del producto.
	Lines(ctx context.Context) ([]entity.CartLine, error)
	// Add acumula cantidad si el producto ya está y sobrescribe el precio (gana el último).
	Add(ctx context.Context, product *entity.Product, quantity, price int64) error
	SetQuantity(ctx context.Context, productID string, quantity int64) error
	SetPrice(ctx context.Context, productID string, price int64) error
	Remove(ctx context.Context, productID string) error
	// Clear vacía el carrito. En un Room además lo cierra y lo desacopla de la sesión.
	Clear(ctx context.Context) error
}

// roomCart carrito compartido persistido en el almacén, visible para todas las terminales del Room.
type roomCart struct {
	repos   repository.Repos
	room    *entity.Room
	session *entity.Session
}

func (c *roomCart) Mode() string     { return ModeRoom }
func (c *roomCart) RoomCode() string { return c.room.Code }

func (c *roomCart) Lines(ctx context.Context) ([]entity.CartLine, error) {
	items, err := c.repos.Rooms().ListItems(ctx, c.room.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.CartLine, 0, len(items))
	for _, it := range items {
		line := entity.CartLine{ProductID: it.ProductID, Price: it.Price, Quantity: it.Quantity}
		p, err := c.repos.Products().GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			line.Name = p.Name
			line.Photo = p.Photo
			line.Stock = p.Stock
			line.Cost = p.Cost
			// Precio 0 en un item del Room = usar el precio base.
			if line.Price == 0 {
				line.Price = p.Price
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (c *roomCart) Add(ctx context.Context, product *entity.Product, quantity, price int64) error {
	item, err := c.repos.Rooms().GetItem(ctx, c.room.ID, product.ID)
	if err != nil {
		return err
	}
	if item == nil {
		item = &entity.RoomItem{RoomID: c.room.ID, ProductID: product.ID}
	}
	item.Quantity += quantity
	item.Price = price
	return c.repos.Rooms().UpsertItem(ctx, item)
}

func (c *roomCart) SetQuantity(ctx context.Context, productID string, quantity int64) error {
	if quantity == 0 {
		return c.Remove(ctx, productID)
	}
	item, err := c.repos.Rooms().GetItem(ctx, c.room.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrLineNotFound
	}
	item.Quantity = quantity
	return c.repos.Rooms().UpsertItem(ctx, item)
}

func (c *roomCart) SetPrice(ctx context.Context, productID string, price int64) error {
	item, err := c.repos.Rooms().GetItem(ctx, c.room.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrLineNotFound
	}
	item.Price = price
	return c.repos.Rooms().UpsertItem(ctx, item)
}

func (c *roomCart) Remove(ctx context.Context, productID string) error {
	return c.repos.Rooms().DeleteItem(ctx, c.room.ID, productID)
}

func (c *roomCart) Clear(ctx context.Context) error {
	if err := c.repos.Rooms().UpdateStatus(ctx, c.room.ID, entity.RoomStatusClosed); err != nil {
		return err
	}
	if err := c.repos.Rooms().DeleteItems(ctx, c.room.ID); err != nil {
		return err
	}
	c.room.Status = entity.RoomStatusClosed
	c.session.RoomCode = ""
	return nil
}

// sessionCart carrito privado de la terminal, guardado en la sesión.
type sessionCart struct {
	products repository.ProductRepository
	session  *entity.Session
}

func (c *sessionCart) Mode() string     { return ModeSession }
func (c *sessionCart) RoomCode() string { return "" }

func (c *sessionCart) Lines(ctx context.Context) ([]entity.CartLine, error) {
	lines := make([]entity.CartLine, 0, len(c.session.Lines))
	for _, l := range c.session.Lines {
		p, err := c.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			l.Stock = p.Stock
			l.Cost = p.Cost
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (c *sessionCart) Add(_ context.Context, product *entity.Product, quantity, price int64) error {
	i := c.session.Line(product.ID)
	if i < 0 {
		c.session.Lines = append(c.session.Lines, entity.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			Quantity:  quantity,
			Photo:     product.Photo,
		})
		return nil
	}
	l := &c.session.Lines[i]
	l.Quantity += quantity
	l.Price = price
	l.Name = product.Name
	l.Photo = product.Photo
	return nil
}

func (c *sessionCart) SetQuantity(ctx context.Context, productID string, quantity int64) error {
	if quantity == 0 {
		return c.Remove(ctx, productID)
	}
	i := c.session.Line(productID)
	if i < 0 {
		return domain.ErrLineNotFound
	}
	c.session.Lines[i].Quantity = quantity
	return nil
}

func (c *sessionCart) SetPrice(_ context.Context, productID string, price int64) error {
	i := c.session.Line(productID)
	if i < 0 {
		return domain.ErrLineNotFound
	}
	c.session.Lines[i].Price = price
	return nil
}

func (c *sessionCart) Remove(_ context.Context, productID string) error {
	if i := c.session.Line(productID); i >= 0 {
		c.session.Lines = append(c.session.Lines[:i], c.session.Lines[i+1:]...)
	}
	return nil
}

func (c *sessionCart) Clear(context.Context) error {
	c.session.Lines = nil
	return nil
}
