package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// PartnerRepository define el puerto de persistencia para proveedores y clientes.
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
	// List filtra por tipo; partnerType vacío devuelve todos.
	List(ctx context.Context, partnerType string, limit, offset int) ([]*entity.Partner, error)
	Delete(ctx context.Context, id string) error
}
