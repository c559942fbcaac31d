package cart

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts  = 32
)

// RoomSummary Room con la suma de cantidades de sus líneas.
type RoomSummary struct {
	Room      *entity.Room
	ItemCount int64
}

// NewRoom crea un Room abierto con un código no usado y lo adjunta a la sesión.
func (s *Service) NewRoom(ctx context.Context, sessionID string) (*entity.Room, error) {
	var room *entity.Room
	err := s.run(ctx, sessionID, false, func(repos repository.Repos, sess *entity.Session, _ Cart) error {
		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			code, err := newRoomCode(s.roomCodeLength)
			if err != nil {
				return err
			}
			existing, err := repos.Rooms().GetByCode(ctx, code)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			r := &entity.Room{
				ID:        uuid.New().String(),
				Code:      code,
				Status:    entity.RoomStatusOpen,
				CreatedAt: s.clock(),
			}
			if err := repos.Rooms().Create(ctx, r); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					continue
				}
				return err
			}
			room = r
			sess.RoomCode = code
			return nil
		}
		return fmt.Errorf("no se encontró un código de room libre tras %d intentos", maxCodeAttempts)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("room", room.Code).Str("session_id", sessionID).Msg("room creado")
	return room, nil
}

// SwitchRoom adjunta un Room abierto existente. Desconocido o cerrado = ErrRoomNotFound.
func (s *Service) SwitchRoom(ctx context.Context, sessionID, code string) (*entity.Room, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	var room *entity.Room
	err := s.run(ctx, sessionID, false, func(repos repository.Repos, sess *entity.Session, _ Cart) error {
		r, err := repos.Rooms().GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if !r.IsOpen() {
			return domain.ErrRoomNotFound
		}
		room = r
		sess.RoomCode = r.Code
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// DetachRoom deja el Room sin cerrarlo; la sesión vuelve a su carrito privado.
func (s *Service) DetachRoom(ctx context.Context, sessionID string) error {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.RoomCode = ""
	sess.UpdatedAt = s.clock()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Consistency(err)
	}
	return nil
}

// ListRooms devuelve Rooms abiertos y cerrados, del más reciente al más antiguo.
func (s *Service) ListRooms(ctx context.Context) (open, closed []RoomSummary, err error) {
	if open, err = s.summaries(ctx, entity.RoomStatusOpen); err != nil {
		return nil, nil, err
	}
	if closed, err = s.summaries(ctx, entity.RoomStatusClosed); err != nil {
		return nil, nil, err
	}
	return open, closed, nil
}

func (s *Service) summaries(ctx context.Context, status string) ([]RoomSummary, error) {
	rooms, err := s.repos.Rooms().ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		n, err := s.repos.Rooms().SumQuantity(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomSummary{Room: r, ItemCount: n})
	}
	return out, nil
}

func newRoomCode(length int) (string, error) {
	max := big.NewInt(int64(len(roomCodeAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar código de room: %w", err)
		}
		b.WriteByte(roomCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
