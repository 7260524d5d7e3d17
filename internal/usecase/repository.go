package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
)

type ProductRepository interface {
	List(ctx context.Context, filter *ProductFilter) ([]*domain.Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product, fields *UpdateProductReq) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	AddImages(ctx context.Context, productID uuid.UUID, images []domain.Image) error
}

type CategoryRepository interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Category, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type BrandRepository interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Brand, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	GetByName(ctx context.Context, name string) (*domain.Brand, error)
	Create(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type DummyRepository interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Dummy, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Dummy, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Dummy, error)
	Create(ctx context.Context, dummy *domain.Dummy) (*domain.Dummy, error)
}

type OutboxEventRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

// CacheRepository — кэш представлений продуктов.
// Ошибки кэша не фатальны, вызывающая сторона обязана их переживать.
type CacheRepository interface {
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductRes, error)
	SetProducts(ctx context.Context, products []*ProductRes) error
	DeleteProducts(ctx context.Context, ids []uuid.UUID) error
}

// ImageRepository — объектное хранилище файлов изображений.
type ImageRepository interface {
	Upload(ctx context.Context, productID uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error)
	Delete(ctx context.Context, key string) error
}
