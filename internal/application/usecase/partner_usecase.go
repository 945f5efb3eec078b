package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// PartnerUseCase casos de uso CRUD para proveedores y clientes.
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create crea un proveedor o cliente.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.PartnerRequest) (*dto.PartnerResponse, error) {
	if !entity.ValidPartnerType(in.Type) {
		return nil, domain.InvalidInput("type debe ser supplier o customer")
	}
	now := time.Now().UTC()
	p := &entity.Partner{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// Update reemplaza los datos de la contraparte.
func (uc *PartnerUseCase) Update(ctx context.Context, id string, in dto.PartnerRequest) (*dto.PartnerResponse, error) {
	if !entity.ValidPartnerType(in.Type) {
		return nil, domain.InvalidInput("type debe ser supplier o customer")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Type = in.Type
	p.Name = in.Name
	p.ContactName = in.ContactName
	p.Email = in.Email
	p.Phone = in.Phone
	p.Address = in.Address
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// List lista contrapartes; partnerType vacío devuelve ambos tipos.
func (uc *PartnerUseCase) List(ctx context.Context, partnerType string, page dto.PageRequest) (*dto.PartnerListResponse, error) {
	if partnerType != "" && !entity.ValidPartnerType(partnerType) {
		return nil, domain.InvalidInput("type debe ser supplier o customer")
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, partnerType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return &dto.PartnerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una contraparte. Las operaciones que la referencian se conservan.
func (uc *PartnerUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:          p.ID,
		Type:        p.Type,
		Name:        p.Name,
		ContactName: p.ContactName,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
