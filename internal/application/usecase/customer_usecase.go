package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/ports"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (necesarios en ventas a crédito).
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	clock ports.Clock
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, clock ports.Clock) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, clock: clock}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: uc.clock(),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toCustomerResponse(c), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
