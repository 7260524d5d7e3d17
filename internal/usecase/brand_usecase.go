package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/google/uuid"
)

// BrandUseCase реализует бизнес-логику управления брендами.
type BrandUseCase struct {
	brandRepo BrandRepository
	logger    logger.Logger
}

func NewBrandUC(brandRepo BrandRepository, logger logger.Logger) *BrandUseCase {
	return &BrandUseCase{
		brandRepo: brandRepo,
		logger:    logger,
	}
}

// List возвращает страницу брендов.
func (b *BrandUseCase) List(ctx context.Context, limit, offset int) (*ListBrandsRes, error) {
	const op = "BrandUseCase.List"

	brands, total, err := b.brandRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]*BrandRes, 0, len(brands))
	for _, brand := range brands {
		items = append(items, NewBrandRes(brand))
	}

	return &ListBrandsRes{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetByID возвращает бренд по идентификатору.
func (b *BrandUseCase) GetByID(ctx context.Context, id uuid.UUID) (*BrandRes, error) {
	const op = "BrandUseCase.GetByID"

	brand, err := b.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if brand == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrBrandNotFound, "Brand", id.String()))
	}

	return NewBrandRes(brand), nil
}

// GetByName возвращает бренд по уникальному имени.
func (b *BrandUseCase) GetByName(ctx context.Context, name string) (*BrandRes, error) {
	const op = "BrandUseCase.GetByName"

	brand, err := b.brandRepo.GetByName(ctx, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if brand == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrBrandNotFound, "Brand", name))
	}

	return NewBrandRes(brand), nil
}

// Create создаёт бренд. Имя бренда уникально.
func (b *BrandUseCase) Create(ctx context.Context, req *CreateBrandReq) (*BrandRes, error) {
	const op = "BrandUseCase.Create"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrNameRequired)
	}

	brand := domain.NewBrand(strings.TrimSpace(req.Name))
	brand.Logo = req.Logo
	brand.Description = req.Description

	created, err := b.brandRepo.Create(ctx, brand)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewBrandRes(created), nil
}

// Update частично обновляет бренд.
func (b *BrandUseCase) Update(ctx context.Context, id uuid.UUID, req *UpdateBrandReq) (*BrandRes, error) {
	const op = "BrandUseCase.Update"

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, e.Wrap(op, e.ErrNameRequired)
	}

	brand, err := b.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if brand == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrBrandNotFound, "Brand", id.String()))
	}

	if req.Name != nil {
		brand.Name = strings.TrimSpace(*req.Name)
	}
	if req.Logo != nil {
		brand.Logo = req.Logo
	}
	if req.Description != nil {
		brand.Description = req.Description
	}

	updated, err := b.brandRepo.Update(ctx, brand)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewBrandRes(updated), nil
}

// Delete удаляет бренд. Продукты бренда остаются, их brand_id обнуляется.
func (b *BrandUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "BrandUseCase.Delete"

	removed, err := b.brandRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !removed {
		return e.Wrap(op, e.NewEntityNotFound(e.ErrBrandNotFound, "Brand", id.String()))
	}

	return nil
}
