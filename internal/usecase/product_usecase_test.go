package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainProduct(id uuid.UUID) *domain.Product {
	product := domain.NewProduct("Gaming Mouse", "gaming-mouse", "Мышь", "GM-100", domain.NewMoneyFromFloat(49.99, "USD"))
	product.ID = id
	product.Stock = 3
	return product
}

func TestProductListUnknownSortField(t *testing.T) {
	uc, _ := newTestProductUC()

	_, err := uc.List(context.Background(), &ProductFilter{SortBy: "rating"})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestProductListDegeneratePriceRange(t *testing.T) {
	uc, _ := newTestProductUC()

	priceMin := decimal.NewFromInt(100)
	priceMax := decimal.NewFromInt(50)
	res, err := uc.List(context.Background(), &ProductFilter{
		PriceMin: &priceMin,
		PriceMax: &priceMax,
		Limit:    10,
	})

	// Пустая страница вместо ошибки, репозиторий не вызывается.
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
	assert.Equal(t, 10, res.Limit)
}

func TestProductListMapsDomain(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.listFn = func(_ context.Context, filter *ProductFilter) ([]*domain.Product, int64, error) {
		assert.Equal(t, "price", filter.SortBy)
		return []*domain.Product{domainProduct(id)}, 7, nil
	}

	res, err := uc.List(context.Background(), &ProductFilter{SortBy: "price", Limit: 10, Offset: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Total)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 20, res.Offset)
	require.Len(t, res.Items, 1)
	assert.Equal(t, id, res.Items[0].ID)
	assert.Equal(t, 49.99, res.Items[0].Price)
	assert.Equal(t, "USD", res.Items[0].Currency)
}

func TestProductListEmptyCatalog(t *testing.T) {
	uc, deps := newTestProductUC()
	deps.productRepo.listFn = func(_ context.Context, _ *ProductFilter) ([]*domain.Product, int64, error) {
		return nil, 0, nil
	}

	res, err := uc.List(context.Background(), &ProductFilter{Limit: 10, Offset: 0})

	require.NoError(t, err)
	require.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
	assert.Equal(t, 10, res.Limit)
}

func TestProductGetByIDCacheHit(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	cached := &ProductRes{ID: id, Name: "From cache"}
	deps.cacheRepo.getFn = func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductRes, error) {
		assert.Equal(t, []uuid.UUID{id}, ids)
		return map[uuid.UUID]*ProductRes{id: cached}, nil
	}

	res, err := uc.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Same(t, cached, res)
}

func TestProductGetByIDCacheMiss(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, got uuid.UUID) (*domain.Product, error) {
		assert.Equal(t, id, got)
		return domainProduct(id), nil
	}

	cachedCh := make(chan []*ProductRes, 1)
	deps.cacheRepo.setFn = func(_ context.Context, products []*ProductRes) error {
		cachedCh <- products
		return nil
	}

	res, err := uc.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, res.ID)

	// Продукт дописывается в кэш в фоне.
	select {
	case cachedProducts := <-cachedCh:
		require.Len(t, cachedProducts, 1)
		assert.Equal(t, id, cachedProducts[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("product was not cached in background")
	}
}

func TestProductGetByIDSurvivesCacheFailure(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.cacheRepo.getFn = func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]*ProductRes, error) {
		return nil, errors.New("redis: connection refused")
	}
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return domainProduct(id), nil
	}

	res, err := uc.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
}

func TestProductGetByIDNotFound(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return nil, nil
	}

	_, err := uc.GetByID(context.Background(), id)

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	var notFound *e.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, id.String(), notFound.ID)
}

func TestProductGetBySKUNotFound(t *testing.T) {
	uc, deps := newTestProductUC()

	deps.productRepo.getBySKUFn = func(_ context.Context, _ string) (*domain.Product, error) {
		return nil, nil
	}

	_, err := uc.GetBySKU(context.Background(), "NO-SUCH")

	require.Error(t, err)

	var notFound *e.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NO-SUCH", notFound.ID)
}

func TestProductCreate(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	var created *domain.Product
	deps.productRepo.createFn = func(_ context.Context, product *domain.Product) (*domain.Product, error) {
		created = product
		product.ID = id
		return product, nil
	}
	deps.publisher.publishFn = func(_ context.Context, _ *Event) error {
		// Событие уходит до фиксации транзакции.
		assert.False(t, deps.db.lastTx().committed)
		return nil
	}

	res, err := uc.Create(context.Background(), &CreateProductReq{
		Name:  "Test Product",
		SKU:   "TEST-123",
		Price: 99.99,
		Stock: 100,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "test-product", created.Slug)
	assert.Equal(t, "USD", created.Price.Currency)
	assert.Equal(t, domain.ConditionNew, created.Condition)
	assert.True(t, created.IsAvailable)

	assert.Equal(t, id, res.ID)
	assert.Equal(t, "test-product", res.Slug)
	assert.Equal(t, 99.99, res.Price)
	assert.Equal(t, 100, res.Stock)

	require.Len(t, deps.publisher.events, 1)
	event := deps.publisher.events[0]
	assert.Equal(t, EventProductCreated, event.EventType)
	assert.Equal(t, id.String(), event.AggregateID)
	assert.Equal(t, "TEST-123", event.Data["sku"])

	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].committed)
}

func TestProductCreateRetriesDerivedSlug(t *testing.T) {
	uc, deps := newTestProductUC()

	var slugs []string
	deps.productRepo.createFn = func(_ context.Context, product *domain.Product) (*domain.Product, error) {
		slugs = append(slugs, product.Slug)
		if len(slugs) < 3 {
			return nil, e.ErrDuplicateSlug
		}
		product.ID = uuid.New()
		return product, nil
	}

	res, err := uc.Create(context.Background(), &CreateProductReq{Name: "Gaming Mouse", SKU: "GM-100", Price: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"gaming-mouse", "gaming-mouse-1", "gaming-mouse-2"}, slugs)
	assert.Equal(t, "gaming-mouse-2", res.Slug)

	// Событие публикуется только в успешной попытке.
	assert.Len(t, deps.publisher.events, 1)

	require.Len(t, deps.db.txs, 3)
	assert.True(t, deps.db.txs[0].rolledBack)
	assert.True(t, deps.db.txs[1].rolledBack)
	assert.True(t, deps.db.txs[2].committed)
}

func TestProductCreateExplicitSlugConflict(t *testing.T) {
	uc, deps := newTestProductUC()

	calls := 0
	deps.productRepo.createFn = func(_ context.Context, _ *domain.Product) (*domain.Product, error) {
		calls++
		return nil, e.ErrDuplicateSlug
	}

	_, err := uc.Create(context.Background(), &CreateProductReq{
		Name:  "Gaming Mouse",
		Slug:  ptr("taken"),
		SKU:   "GM-100",
		Price: 1,
	})

	// Явный slug не перебирается.
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrDuplicateSlug)
	assert.Equal(t, 1, calls)
}

func TestProductCreateSlugExhausted(t *testing.T) {
	uc, deps := newTestProductUC()

	calls := 0
	deps.productRepo.createFn = func(_ context.Context, _ *domain.Product) (*domain.Product, error) {
		calls++
		return nil, e.ErrDuplicateSlug
	}

	_, err := uc.Create(context.Background(), &CreateProductReq{Name: "Gaming Mouse", SKU: "GM-100", Price: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrSlugExhausted)
	assert.Equal(t, maxSlugAttempts+1, calls)
}

func TestProductCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateProductReq
		wantErr error
	}{
		{
			name:    "empty name",
			req:     &CreateProductReq{Name: "  ", SKU: "S-1", Price: 1},
			wantErr: e.ErrNameRequired,
		},
		{
			name:    "empty sku",
			req:     &CreateProductReq{Name: "Mouse", SKU: " ", Price: 1},
			wantErr: e.ErrValidation,
		},
		{
			name:    "negative price",
			req:     &CreateProductReq{Name: "Mouse", SKU: "S-1", Price: -1},
			wantErr: e.ErrInvalidPrice,
		},
		{
			name:    "bad currency",
			req:     &CreateProductReq{Name: "Mouse", SKU: "S-1", Price: 1, Currency: "EU"},
			wantErr: e.ErrInvalidCurrency,
		},
		{
			name:    "negative stock",
			req:     &CreateProductReq{Name: "Mouse", SKU: "S-1", Price: 1, Stock: -5},
			wantErr: e.ErrNegativeStock,
		},
		{
			name:    "unknown condition",
			req:     &CreateProductReq{Name: "Mouse", SKU: "S-1", Price: 1, Condition: "broken"},
			wantErr: e.ErrValidation,
		},
		{
			name: "variant without sku",
			req: &CreateProductReq{
				Name: "Mouse", SKU: "S-1", Price: 1,
				Variants: []VariantReq{{Name: "Black", SKU: " ", Price: 1}},
			},
			wantErr: e.ErrValidation,
		},
		{
			name: "variant negative price",
			req: &CreateProductReq{
				Name: "Mouse", SKU: "S-1", Price: 1,
				Variants: []VariantReq{{Name: "Black", SKU: "S-1-B", Price: -2}},
			},
			wantErr: e.ErrInvalidPrice,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc, deps := newTestProductUC()

			_, err := uc.Create(context.Background(), tc.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, deps.db.txs)
		})
	}
}

func TestProductCreateMissingCategory(t *testing.T) {
	uc, deps := newTestProductUC()

	missing := uuid.New()
	deps.categoryRepo.existingIDsFn = func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]struct{}, error) {
		return map[uuid.UUID]struct{}{}, nil
	}

	_, err := uc.Create(context.Background(), &CreateProductReq{
		Name:        "Mouse",
		SKU:         "S-1",
		Price:       1,
		CategoryIDs: []uuid.UUID{missing},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrCategoryNotFound)

	var notFound *e.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing.String(), notFound.ID)

	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].rolledBack)
}

func TestProductCreateMissingBrand(t *testing.T) {
	uc, deps := newTestProductUC()

	missing := uuid.New()
	deps.brandRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Brand, error) {
		return nil, nil
	}

	_, err := uc.Create(context.Background(), &CreateProductReq{
		Name:    "Mouse",
		SKU:     "S-1",
		Price:   1,
		BrandID: &missing,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrBrandNotFound)
}

func TestProductUpdate(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return domainProduct(id), nil
	}
	deps.productRepo.updateFn = func(_ context.Context, product *domain.Product, _ *UpdateProductReq) (*domain.Product, error) {
		return product, nil
	}

	var invalidated []uuid.UUID
	deps.cacheRepo.deleteFn = func(_ context.Context, ids []uuid.UUID) error {
		invalidated = append(invalidated, ids...)
		return nil
	}

	res, err := uc.Update(context.Background(), id, &UpdateProductReq{
		Name:  ptr("Gaming Mouse Pro"),
		Price: ptr(59.99),
	})

	require.NoError(t, err)
	assert.Equal(t, "Gaming Mouse Pro", res.Name)
	assert.Equal(t, 59.99, res.Price)

	require.Len(t, deps.publisher.events, 1)
	event := deps.publisher.events[0]
	assert.Equal(t, EventProductUpdated, event.EventType)
	assert.Equal(t, "Gaming Mouse", event.PreviousData["name"])
	assert.Equal(t, 49.99, event.PreviousData["price"])

	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].committed)
	assert.Equal(t, []uuid.UUID{id}, invalidated)
}

func TestProductUpdateNotFound(t *testing.T) {
	uc, deps := newTestProductUC()

	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return nil, nil
	}

	_, err := uc.Update(context.Background(), uuid.New(), &UpdateProductReq{Name: ptr("New name")})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].rolledBack)
	assert.Empty(t, deps.publisher.events)
}

func TestProductUpdateValidation(t *testing.T) {
	uc, deps := newTestProductUC()

	_, err := uc.Update(context.Background(), uuid.New(), &UpdateProductReq{Name: ptr(" ")})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrNameRequired)
	assert.Empty(t, deps.db.txs)
}

func TestProductDelete(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return domainProduct(id), nil
	}
	deps.productRepo.deleteFn = func(_ context.Context, got uuid.UUID) (bool, error) {
		assert.Equal(t, id, got)
		return true, nil
	}

	err := uc.Delete(context.Background(), id)

	require.NoError(t, err)

	require.Len(t, deps.publisher.events, 1)
	event := deps.publisher.events[0]
	assert.Equal(t, EventProductDeleted, event.EventType)
	assert.Equal(t, "Gaming Mouse", event.Data["name"])

	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].committed)
}

func TestProductDeleteNotFound(t *testing.T) {
	uc, deps := newTestProductUC()

	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return nil, nil
	}

	err := uc.Delete(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	assert.Empty(t, deps.publisher.events)
}

func uploadReq(productID uuid.UUID, names ...string) *UploadProductImagesReq {
	images := make([]ProductImage, 0, len(names))
	for _, name := range names {
		images = append(images, *NewProductImage([]byte{1, 2, 3}, "image/png", 3, name))
	}
	return NewUploadProductImagesReq(productID, images)
}

func TestProductUploadImages(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return domainProduct(id), nil
	}
	deps.imagesInfra.uploadFn = func(_ context.Context, req *UploadProductImagesReq) (*UploadImagesRes, error) {
		require.Len(t, req.Images, 2)
		return NewUploadImagesRes(
			[]string{"p/front-abc.png", "p/back-def.png"},
			[]string{"https://cdn/p/front-abc.png", "https://cdn/p/back-def.png"},
		), nil
	}

	var attached []domain.Image
	deps.productRepo.addImagesFn = func(_ context.Context, gotID uuid.UUID, images []domain.Image) error {
		assert.Equal(t, id, gotID)
		attached = images
		return nil
	}

	_, err := uc.UploadImages(context.Background(), uploadReq(id, "front.png", "back.png"))

	require.NoError(t, err)
	require.Len(t, attached, 2)
	assert.Equal(t, "https://cdn/p/front-abc.png", attached[0].URL)
	assert.True(t, attached[0].IsMain)
	assert.Equal(t, 0, attached[0].Order)
	assert.Equal(t, "https://cdn/p/back-def.png", attached[1].URL)
	assert.False(t, attached[1].IsMain)
	assert.Equal(t, 1, attached[1].Order)

	assert.Empty(t, deps.imagesInfra.cleanedKeys)
	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].committed)
}

func TestProductUploadImagesKeepsExistingMain(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		product := domainProduct(id)
		product.Images = []domain.Image{{ProductID: id, URL: "https://cdn/p/old.png", IsMain: true, Order: 0}}
		return product, nil
	}
	deps.imagesInfra.uploadFn = func(_ context.Context, _ *UploadProductImagesReq) (*UploadImagesRes, error) {
		return NewUploadImagesRes([]string{"p/new.png"}, []string{"https://cdn/p/new.png"}), nil
	}

	var attached []domain.Image
	deps.productRepo.addImagesFn = func(_ context.Context, _ uuid.UUID, images []domain.Image) error {
		attached = images
		return nil
	}

	_, err := uc.UploadImages(context.Background(), uploadReq(id, "new.png"))

	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.False(t, attached[0].IsMain)
	assert.Equal(t, 1, attached[0].Order)
}

func TestProductUploadImagesCleanupOnAttachFailure(t *testing.T) {
	uc, deps := newTestProductUC()

	id := uuid.New()
	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return domainProduct(id), nil
	}
	deps.imagesInfra.uploadFn = func(_ context.Context, _ *UploadProductImagesReq) (*UploadImagesRes, error) {
		return NewUploadImagesRes([]string{"p/a.png", "p/b.png"}, []string{"https://cdn/p/a.png", "https://cdn/p/b.png"}), nil
	}
	deps.productRepo.addImagesFn = func(_ context.Context, _ uuid.UUID, _ []domain.Image) error {
		return errors.New("insert failed")
	}

	_, err := uc.UploadImages(context.Background(), uploadReq(id, "a.png", "b.png"))

	require.Error(t, err)
	require.Len(t, deps.imagesInfra.cleanedKeys, 1)
	assert.Equal(t, []string{"p/a.png", "p/b.png"}, deps.imagesInfra.cleanedKeys[0])

	require.Len(t, deps.db.txs, 1)
	assert.True(t, deps.db.txs[0].rolledBack)
}

func TestProductUploadImagesEmptyRequest(t *testing.T) {
	uc, _ := newTestProductUC()

	_, err := uc.UploadImages(context.Background(), NewUploadProductImagesReq(uuid.New(), nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrNoImages)
}

func TestProductUploadImagesProductNotFound(t *testing.T) {
	uc, deps := newTestProductUC()

	deps.productRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
		return nil, nil
	}

	_, err := uc.UploadImages(context.Background(), uploadReq(uuid.New(), "a.png"))

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
	// До загрузки файлов дело не доходит.
	assert.Empty(t, deps.imagesInfra.cleanedKeys)
}
