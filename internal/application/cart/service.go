package cart

import (
	"context"
	"errors"

	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// Service agregador del carrito: resuelve por petición qué carrito usa la sesión
// (Room adjunto o carrito privado) y ejecuta cada acción en una transacción.
type Service struct {
	txRunner       ports.TxRunner
	repos          repository.Repos
	sessions       SessionStore
	clock          ports.Clock
	metrics        ports.MetricsRecorder
	log            *logger.Logger
	roomCodeLength int
}

// Config dependencias del servicio.
type Config struct {
	TxRunner       ports.TxRunner
	Repos          repository.Repos // lecturas fuera de transacción (vista, conteo, listados)
	Sessions       SessionStore
	Clock          ports.Clock
	Metrics        ports.MetricsRecorder
	Logger         *logger.Logger
	RoomCodeLength int
}

// NewService construye el servicio.
func NewService(cfg Config) *Service {
	if cfg.RoomCodeLength <= 0 {
		cfg.RoomCodeLength = 6
	}
	return &Service{
		txRunner:       cfg.TxRunner,
		repos:          cfg.Repos,
		sessions:       cfg.Sessions,
		clock:          cfg.Clock,
		metrics:        cfg.Metrics,
		log:            cfg.Logger,
		roomCodeLength: cfg.RoomCodeLength,
	}
}

// AddInput entrada de Add.
type AddInput struct {
	ProductID     string
	Quantity      int64
	PriceOptionID string
	ManualPrice   int64
}

// View vista del carrito activo.
type View struct {
	Mode     string
	RoomCode string
	Lines    []entity.CartLine
	Totals
}

// Add agrega o incrementa una línea con el precio resuelto.
func (s *Service) Add(ctx context.Context, sessionID string, in AddInput) error {
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if in.ManualPrice < 0 {
		return domain.ErrInvalidPrice
	}
	return s.WithinCart(ctx, sessionID, func(repos repository.Repos, _ *entity.Session, c Cart) error {
		product, err := repos.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		price, err := ResolvePrice(ctx, repos.PriceOptions(), product, in.PriceOptionID, in.ManualPrice)
		if err != nil {
			return err
		}
		return c.Add(ctx, product, in.Quantity, price)
	})
}

// SetQuantity sobrescribe la cantidad; 0 elimina la línea.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return s.WithinCart(ctx, sessionID, func(_ repository.Repos, _ *entity.Session, c Cart) error {
		return c.SetQuantity(ctx, productID, quantity)
	})
}

// SetPrice sobrescribe solo el precio unitario de una línea existente.
func (s *Service) SetPrice(ctx context.Context, sessionID, productID string, price int64) error {
	if price < 0 {
		return domain.ErrInvalidPrice
	}
	return s.WithinCart(ctx, sessionID, func(_ repository.Repos, _ *entity.Session, c Cart) error {
		return c.SetPrice(ctx, productID, price)
	})
}

// Remove quita la línea del producto (sin error si no estaba).
func (s *Service) Remove(ctx context.Context, sessionID, productID string) error {
	return s.WithinCart(ctx, sessionID, func(_ repository.Repos, _ *entity.Session, c Cart) error {
		return c.Remove(ctx, productID)
	})
}

// Clear vacía el carrito; si es un Room lo cierra definitivamente.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	var closedRoom string
	err := s.WithinCart(ctx, sessionID, func(_ repository.Repos, _ *entity.Session, c Cart) error {
		closedRoom = c.RoomCode()
		return c.Clear(ctx)
	})
	if err != nil {
		return err
	}
	if closedRoom != "" {
		s.metrics.RoomClosed("clear")
		s.log.Info().Str("room", closedRoom).Msg("room cancelado")
	}
	return nil
}

// View lee el carrito activo con totales. Lectura fuera de transacción.
func (s *Service) View(ctx context.Context, sessionID string) (*View, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c, err := s.open(ctx, s.repos, sess, false)
	if err != nil {
		if errors.Is(err, domain.ErrRoomClosed) {
			s.detach(ctx, sess)
		}
		return nil, err
	}
	lines, err := c.Lines(ctx)
	if err != nil {
		return nil, err
	}
	return &View{Mode: c.Mode(), RoomCode: c.RoomCode(), Lines: lines, Totals: ComputeTotals(lines)}, nil
}

// Count suma de cantidades del carrito activo.
func (s *Service) Count(ctx context.Context, sessionID string) (int64, error) {
	v, err := s.View(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return v.Count, nil
}

// WithinCart ejecuta fn en una transacción con el carrito de la sesión ya resuelto
// (el Room, si hay, queda bloqueado). La sesión se guarda como último paso de la transacción;
// si el commit falla se restaura la copia previa.
func (s *Service) WithinCart(ctx context.Context, sessionID string, fn func(repos repository.Repos, sess *entity.Session, c Cart) error) error {
	return s.run(ctx, sessionID, true, fn)
}

func (s *Service) run(ctx context.Context, sessionID string, needCart bool, fn func(repos repository.Repos, sess *entity.Session, c Cart) error) error {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	snapshot := sess.Clone()
	saved := false

	err = s.txRunner.Run(ctx, func(repos repository.Repos) error {
		var c Cart
		if needCart {
			var err error
			if c, err = s.open(ctx, repos, sess, true); err != nil {
				return err
			}
		}
		if err := fn(repos, sess, c); err != nil {
			return err
		}
		sess.UpdatedAt = s.clock()
		if err := s.sessions.Save(ctx, sess); err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err == nil {
		return nil
	}
	if saved {
		if rerr := s.sessions.Save(ctx, snapshot); rerr != nil {
			s.log.Error().Err(rerr).Str("session_id", sessionID).Msg("no se pudo restaurar la sesión tras rollback")
		}
	}
	if errors.Is(err, domain.ErrRoomClosed) {
		s.detach(ctx, snapshot)
	}
	return domain.Consistency(err)
}

// open elige la implementación del carrito según el Room adjunto.
func (s *Service) open(ctx context.Context, repos repository.Repos, sess *entity.Session, lock bool) (Cart, error) {
	if sess.RoomCode == "" {
		return &sessionCart{products: repos.Products(), session: sess}, nil
	}
	var room *entity.Room
	var err error
	if lock {
		room, err = repos.Rooms().GetByCodeForUpdate(ctx, sess.RoomCode)
	} else {
		room, err = repos.Rooms().GetByCode(ctx, sess.RoomCode)
	}
	if err != nil {
		return nil, err
	}
	if !room.IsOpen() {
		return nil, domain.ErrRoomClosed
	}
	return &roomCart{repos: repos, room: room, session: sess}, nil
}

// load lee la sesión; una sesión inexistente empieza vacía.
func (s *Service) load(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.Consistency(err)
	}
	if sess == nil {
		sess = &entity.Session{ID: sessionID}
	}
	return sess, nil
}

// detach desacopla un Room cerrado de la sesión: las siguientes acciones usan el carrito privado.
func (s *Service) detach(ctx context.Context, sess *entity.Session) {
	if sess.RoomCode == "" {
		return
	}
	room := sess.RoomCode
	sess.RoomCode = ""
	sess.UpdatedAt = s.clock()
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("no se pudo desacoplar el room cerrado")
		return
	}
	s.log.Debug().Str("session_id", sess.ID).Str("room", room).Msg("room cerrado desacoplado de la sesión")
}
