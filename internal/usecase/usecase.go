package usecase

import (
	"context"

	"github.com/google/uuid"
)

type ProductUC interface {
	List(ctx context.Context, filter *ProductFilter) (*ListProductsRes, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductRes, error)
	GetBySKU(ctx context.Context, sku string) (*ProductRes, error)
	Create(ctx context.Context, req *CreateProductReq) (*ProductRes, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductReq) (*ProductRes, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImages(ctx context.Context, req *UploadProductImagesReq) (*ProductRes, error)
}

type CategoryUC interface {
	List(ctx context.Context, limit, offset int) (*ListCategoriesRes, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CategoryRes, error)
	Create(ctx context.Context, req *CreateCategoryReq) (*CategoryRes, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryReq) (*CategoryRes, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BrandUC interface {
	List(ctx context.Context, limit, offset int) (*ListBrandsRes, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BrandRes, error)
	GetByName(ctx context.Context, name string) (*BrandRes, error)
	Create(ctx context.Context, req *CreateBrandReq) (*BrandRes, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateBrandReq) (*BrandRes, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DummyUC interface {
	List(ctx context.Context, limit, offset int) (*ListDummiesRes, error)
	GetByID(ctx context.Context, id int64) (*DummyRes, error)
	SearchByName(ctx context.Context, name string) ([]*DummyRes, error)
	Create(ctx context.Context, req *CreateDummyReq) (*DummyRes, error)
}
