package cart

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// SessionStore persiste el estado efímero de cada terminal (carrito privado y Room adjunto).
// Get devuelve (nil, nil) si la sesión no existe o expiró.
type SessionStore interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}
