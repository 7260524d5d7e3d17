package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/slug"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Максимум попыток подобрать свободный slug, когда базовый занят.
const maxSlugAttempts = 10

// Таймаут фоновой записи в кэш.
const cacheSetTimeout = 500 * time.Millisecond

// ProductUseCase реализует бизнес-логику управления каталогом продуктов.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	brandRepo    BrandRepository
	dbPool       transaction.Transactional
	imagesInfra  ImagesInfra
	publisher    EventPublisher
	cacheRepo    CacheRepository
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	brandRepo BrandRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	publisher EventPublisher,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		dbPool:       dbPool,
		imagesInfra:  imagesInfra,
		publisher:    publisher,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

// List возвращает страницу продуктов по фильтру вместе с общим числом совпадений.
func (p *ProductUseCase) List(ctx context.Context, filter *ProductFilter) (*ListProductsRes, error) {
	const op = "ProductUseCase.List"

	if filter.SortBy != "" {
		if _, ok := SortableFields[filter.SortBy]; !ok {
			return nil, e.Wrap(op, e.Invalid("unknown sort field %q", filter.SortBy))
		}
	}

	// Вырожденный диапазон цен означает пустую выборку, а не ошибку.
	if filter.PriceMin != nil && filter.PriceMax != nil && filter.PriceMin.GreaterThan(*filter.PriceMax) {
		return NewListProductsRes([]*ProductRes{}, 0, filter.Limit, filter.Offset), nil
	}

	products, total, err := p.productRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]*ProductRes, 0, len(products))
	for _, product := range products {
		items = append(items, NewProductRes(product))
	}

	return NewListProductsRes(items, total, filter.Limit, filter.Offset), nil
}

// GetByID возвращает продукт по идентификатору, сначала заглядывая в кэш.
func (p *ProductUseCase) GetByID(ctx context.Context, id uuid.UUID) (*ProductRes, error) {
	const op = "ProductUseCase.GetByID"

	cached, err := p.cacheRepo.GetProducts(ctx, []uuid.UUID{id})
	if err != nil {
		p.logger.Warnf("Failed to read product cache: %v", e.Wrap(op, err))
	} else if res, ok := cached[id]; ok {
		return res, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrProductNotFound, "Product", id.String()))
	}

	res := NewProductRes(product)

	// Фоновое добавление продукта в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheSetTimeout)
		defer cancel()

		if err := p.cacheRepo.SetProducts(bgCtx, []*ProductRes{res}); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return res, nil
}

// GetBySKU возвращает продукт по его SKU.
func (p *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*ProductRes, error) {
	const op = "ProductUseCase.GetBySKU"

	product, err := p.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrProductNotFound, "Product", sku))
	}

	return NewProductRes(product), nil
}

// Create создаёт продукт вместе с вложенными коллекциями.
// Slug выводится из имени, если не задан явно; занятый производный slug
// разрешается повтором всей транзакции с суффиксом -1, -2 и так далее.
func (p *ProductUseCase) Create(ctx context.Context, req *CreateProductReq) (*ProductRes, error) {
	const op = "ProductUseCase.Create"

	if err := p.validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := newProductFromCreateReq(req)
	explicitSlug := req.Slug != nil && strings.TrimSpace(*req.Slug) != ""
	baseSlug := product.Slug

	var (
		created *domain.Product
		err     error
	)
	for attempt := 0; ; attempt++ {
		created, err = p.createInTx(ctx, product, req.CategoryIDs)
		if err == nil {
			break
		}

		if explicitSlug || !errors.Is(err, e.ErrDuplicateSlug) {
			return nil, e.Wrap(op, err)
		}
		if attempt >= maxSlugAttempts {
			return nil, e.Wrap(op, e.ErrSlugExhausted)
		}

		product.Slug = slug.WithSuffix(baseSlug, attempt+1)
	}

	return NewProductRes(created), nil
}

// Update частично обновляет продукт. Присланные коллекции заменяются целиком.
func (p *ProductUseCase) Update(ctx context.Context, id uuid.UUID, req *UpdateProductReq) (*ProductRes, error) {
	const op = "ProductUseCase.Update"

	if err := p.validateUpdate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		err = e.NewEntityNotFound(e.ErrProductNotFound, "Product", id.String())
		return nil, e.Wrap(op, err)
	}

	previous := map[string]any{
		"name":  product.Name,
		"price": product.Price.Float64(),
	}

	if req.CategoryIDs != nil {
		if err = p.ensureCategoriesExist(ctx, *req.CategoryIDs); err != nil {
			return nil, e.Wrap(op, err)
		}
	}
	if req.BrandID != nil {
		if err = p.ensureBrandExists(ctx, *req.BrandID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	applyUpdateReq(product, req)

	updated, err := p.productRepo.Update(ctx, product, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, NewEvent(EventProductUpdated, updated.ID.String(), productEventData(updated), previous))

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, op, updated.ID)

	return NewProductRes(updated), nil
}

// Delete удаляет продукт. Каскад по внешним ключам убирает варианты,
// изображения, отзывы и опции конфигурации.
func (p *ProductUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "ProductUseCase.Delete"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if product == nil {
		err = e.NewEntityNotFound(e.ErrProductNotFound, "Product", id.String())
		return e.Wrap(op, err)
	}

	removed, err := p.productRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !removed {
		err = e.NewEntityNotFound(e.ErrProductNotFound, "Product", id.String())
		return e.Wrap(op, err)
	}

	p.publish(ctx, NewEvent(EventProductDeleted, id.String(), map[string]any{
		"id":   id.String(),
		"name": product.Name,
	}, nil))

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateCache(ctx, op, id)

	return nil
}

// UploadImages загружает файлы в S3 и привязывает их к продукту.
// Файлы заливаются до открытия транзакции; при ошибке записи в БД
// загруженные объекты зачищаются компенсирующим удалением.
func (p *ProductUseCase) UploadImages(ctx context.Context, req *UploadProductImagesReq) (*ProductRes, error) {
	const op = "ProductUseCase.UploadImages"

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	product, err := p.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrProductNotFound, "Product", req.ProductID.String()))
	}

	imagesRes, err := p.imagesInfra.UploadImages(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Контекст без транзакции нужен для чтения после коммита.
	reqCtx := ctx

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		p.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженных изображений
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			p.logger.Warnf(
				"Cleaning up orphaned images after failed attach. product_id: %s, error: %v",
				req.ProductID,
				e.Wrap(op, err),
			)
			p.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	images := make([]domain.Image, 0, len(imagesRes.ImageURLs))
	hasMain := false
	for _, img := range product.Images {
		if img.IsMain {
			hasMain = true
			break
		}
	}
	for i, url := range imagesRes.ImageURLs {
		images = append(images, domain.Image{
			ProductID: req.ProductID,
			URL:       url,
			IsMain:    !hasMain && len(product.Images) == 0 && i == 0,
			Order:     len(product.Images) + i,
		})
	}

	if err = p.productRepo.AddImages(ctx, req.ProductID, images); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(reqCtx, op, req.ProductID)

	// Перечитывание после коммита не должно запускать компенсацию.
	refreshed, readErr := p.productRepo.GetByID(reqCtx, req.ProductID)
	if readErr != nil {
		return nil, e.Wrap(op, readErr)
	}

	return NewProductRes(refreshed), nil
}

// createInTx выполняет одну транзакционную попытку создания продукта.
func (p *ProductUseCase) createInTx(ctx context.Context, product *domain.Product, categoryIDs []uuid.UUID) (*domain.Product, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	if err = p.ensureCategoriesExist(ctx, categoryIDs); err != nil {
		return nil, err
	}
	if product.BrandID != nil {
		if err = p.ensureBrandExists(ctx, *product.BrandID); err != nil {
			return nil, err
		}
	}

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	p.publish(ctx, NewEvent(EventProductCreated, created.ID.String(), productEventData(created), nil))

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// ensureCategoriesExist проверяет, что все категории из списка существуют.
func (p *ProductUseCase) ensureCategoriesExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := p.categoryRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", id.String())
		}
	}

	return nil
}

// ensureBrandExists проверяет существование бренда.
func (p *ProductUseCase) ensureBrandExists(ctx context.Context, id uuid.UUID) error {
	brand, err := p.brandRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return e.NewEntityNotFound(e.ErrBrandNotFound, "Brand", id.String())
	}

	return nil
}

// publish отправляет событие и логирует неудачу, не прерывая операцию.
func (p *ProductUseCase) publish(ctx context.Context, event *Event) {
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.logger.Warnf("Failed to publish %s event: %v", event.EventType, err)
	}
}

// invalidateCache убирает устаревшее представление продукта из кэша.
func (p *ProductUseCase) invalidateCache(ctx context.Context, op string, id uuid.UUID) {
	if err := p.cacheRepo.DeleteProducts(ctx, []uuid.UUID{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}
}

// validateCreate проверяет корректность входных данных запроса на создание продукта.
func (p *ProductUseCase) validateCreate(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrNameRequired
	}

	if strings.TrimSpace(req.SKU) == "" {
		return e.Invalid("sku is required")
	}

	if req.Price < 0 {
		return e.ErrInvalidPrice
	}

	money := domain.NewMoneyFromFloat(req.Price, strings.ToUpper(req.Currency))
	if err := money.Validate(); err != nil {
		return err
	}

	if req.Stock < 0 {
		return e.ErrNegativeStock
	}

	if req.Condition != "" && !domain.IsValidCondition(req.Condition) {
		return e.Invalid("unknown condition %q", req.Condition)
	}

	for _, v := range req.Variants {
		if strings.TrimSpace(v.SKU) == "" {
			return e.Invalid("variant sku is required")
		}
		if v.Price < 0 {
			return e.ErrInvalidPrice
		}
	}

	return nil
}

// validateUpdate проверяет присланные поля частичного обновления.
func (p *ProductUseCase) validateUpdate(req *UpdateProductReq) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return e.ErrNameRequired
	}

	if req.SKU != nil && strings.TrimSpace(*req.SKU) == "" {
		return e.Invalid("sku is required")
	}

	if req.Price != nil && *req.Price < 0 {
		return e.ErrInvalidPrice
	}

	if req.Currency != nil {
		money := domain.NewMoney(decimal.Zero, strings.ToUpper(*req.Currency))
		if err := money.Validate(); err != nil {
			return err
		}
	}

	if req.Stock != nil && *req.Stock < 0 {
		return e.ErrNegativeStock
	}

	if req.Condition != nil && !domain.IsValidCondition(*req.Condition) {
		return e.Invalid("unknown condition %q", *req.Condition)
	}

	if req.Variants != nil {
		for _, v := range *req.Variants {
			if strings.TrimSpace(v.SKU) == "" {
				return e.Invalid("variant sku is required")
			}
			if v.Price < 0 {
				return e.ErrInvalidPrice
			}
		}
	}

	return nil
}

// productEventData собирает полезную нагрузку события продукта.
func productEventData(product *domain.Product) map[string]any {
	return map[string]any{
		"id":    product.ID.String(),
		"name":  product.Name,
		"price": product.Price.Float64(),
		"sku":   product.SKU,
	}
}

// newProductFromCreateReq строит доменный агрегат из запроса на создание.
func newProductFromCreateReq(req *CreateProductReq) *domain.Product {
	currency := strings.ToUpper(req.Currency)
	product := domain.NewProduct(
		strings.TrimSpace(req.Name),
		"",
		req.Description,
		strings.TrimSpace(req.SKU),
		domain.NewMoneyFromFloat(req.Price, currency),
	)

	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		product.Slug = strings.TrimSpace(*req.Slug)
	} else {
		product.Slug = slug.Make(req.Name)
	}

	product.Summary = req.Summary
	product.BrandID = req.BrandID
	product.Model = req.Model
	product.Stock = req.Stock
	product.IsNew = req.IsNew
	product.IsRefurbished = req.IsRefurbished
	product.HasVariants = req.HasVariants || len(req.Variants) > 0
	product.Tags = req.Tags
	product.HighlightedFeatures = req.HighlightedFeatures

	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.Condition != "" {
		product.Condition = req.Condition
	}
	if req.CompareAtPrice != nil {
		compareAt := domain.NewMoneyFromFloat(*req.CompareAtPrice, currency)
		product.CompareAtPrice = &compareAt
	}

	product.Attributes = newAttributesFromReq(req.Attributes)
	product.Images = newImagesFromReq(req.Images)
	product.Variants = newVariantsFromReq(req.Variants, currency)
	product.ConfigOptions = newConfigOptionsFromReq(req.ConfigOptions)
	product.Warranty = newWarrantyFromPayload(req.Warranty)
	product.Shipping = newShippingFromPayload(req.Shipping)

	for _, id := range req.CategoryIDs {
		product.Categories = append(product.Categories, domain.Category{ID: id})
	}

	return product
}

// applyUpdateReq накладывает частичное обновление на загруженный агрегат.
func applyUpdateReq(product *domain.Product, req *UpdateProductReq) {
	currency := product.Price.Currency
	if req.Currency != nil {
		currency = strings.ToUpper(*req.Currency)
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		product.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Summary != nil {
		product.Summary = req.Summary
	}
	if req.Price != nil {
		product.Price = domain.NewMoneyFromFloat(*req.Price, currency)
	} else if req.Currency != nil {
		product.Price = domain.NewMoney(product.Price.Amount, currency)
	}
	if req.CompareAtPrice != nil {
		compareAt := domain.NewMoneyFromFloat(*req.CompareAtPrice, currency)
		product.CompareAtPrice = &compareAt
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}
	if req.Model != nil {
		product.Model = req.Model
	}
	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsRefurbished != nil {
		product.IsRefurbished = *req.IsRefurbished
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.HasVariants != nil {
		product.HasVariants = *req.HasVariants
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}
	if req.HighlightedFeatures != nil {
		product.HighlightedFeatures = *req.HighlightedFeatures
	}
	if req.Attributes != nil {
		product.Attributes = newAttributesFromReq(*req.Attributes)
	}
	if req.Images != nil {
		product.Images = newImagesFromReq(*req.Images)
	}
	if req.Variants != nil {
		product.Variants = newVariantsFromReq(*req.Variants, currency)
	}
	if req.ConfigOptions != nil {
		product.ConfigOptions = newConfigOptionsFromReq(*req.ConfigOptions)
	}
	if req.Warranty != nil {
		product.Warranty = newWarrantyFromPayload(req.Warranty)
	}
	if req.Shipping != nil {
		product.Shipping = newShippingFromPayload(req.Shipping)
	}
	if req.CategoryIDs != nil {
		product.Categories = product.Categories[:0]
		for _, id := range *req.CategoryIDs {
			product.Categories = append(product.Categories, domain.Category{ID: id})
		}
	}
}

// newAttributesFromReq переводит атрибуты запроса в доменные,
// присваивая идентификаторы недостающим.
func newAttributesFromReq(reqs []AttributeReq) []domain.Attribute {
	if reqs == nil {
		return nil
	}

	attrs := make([]domain.Attribute, 0, len(reqs))
	for i, a := range reqs {
		id := a.ID
		if id == "" {
			id = NewAttributeID(i)
		}

		attrs = append(attrs, domain.Attribute{
			ID:            id,
			Name:          a.Name,
			Value:         a.Value,
			DisplayValue:  a.DisplayValue,
			IsHighlighted: a.IsHighlighted,
			GroupName:     a.GroupName,
		})
	}

	return attrs
}

func newImagesFromReq(reqs []ImageReq) []domain.Image {
	if reqs == nil {
		return nil
	}

	images := make([]domain.Image, 0, len(reqs))
	for _, img := range reqs {
		images = append(images, domain.Image{
			URL:    img.URL,
			Alt:    img.Alt,
			IsMain: img.IsMain,
			Order:  img.Order,
		})
	}

	return images
}

func newVariantsFromReq(reqs []VariantReq, currency string) []domain.Variant {
	if reqs == nil {
		return nil
	}

	variants := make([]domain.Variant, 0, len(reqs))
	for _, v := range reqs {
		variant := domain.Variant{
			Name:       v.Name,
			SKU:        strings.TrimSpace(v.SKU),
			Price:      domain.NewMoneyFromFloat(v.Price, currency),
			Stock:      v.Stock,
			IsSelected: v.IsSelected,
			Attributes: v.Attributes,
		}

		variant.IsAvailable = true
		if v.IsAvailable != nil {
			variant.IsAvailable = *v.IsAvailable
		}

		if v.CompareAtPrice != nil {
			compareAt := domain.NewMoneyFromFloat(*v.CompareAtPrice, currency)
			variant.CompareAtPrice = &compareAt
		}

		variants = append(variants, variant)
	}

	return variants
}

func newConfigOptionsFromReq(reqs []ConfigOptionReq) []domain.ConfigOption {
	if reqs == nil {
		return nil
	}

	options := make([]domain.ConfigOption, 0, len(reqs))
	for _, opt := range reqs {
		values := make([]domain.ConfigOptionValue, 0, len(opt.Values))
		for _, v := range opt.Values {
			value := domain.ConfigOptionValue{
				ID:          v.ID,
				Value:       v.Value,
				IsAvailable: true,
				IsSelected:  v.IsSelected,
				Image:       v.Image,
			}
			if v.IsAvailable != nil {
				value.IsAvailable = *v.IsAvailable
			}

			values = append(values, value)
		}

		options = append(options, domain.ConfigOption{
			Name:   opt.Name,
			Values: values,
		})
	}

	return options
}

func newWarrantyFromPayload(payload *WarrantyPayload) *domain.Warranty {
	if payload == nil {
		return nil
	}

	return &domain.Warranty{
		HasWarranty: payload.HasWarranty,
		Length:      payload.Length,
		Unit:        payload.Unit,
		Type:        payload.Type,
		Description: payload.Description,
	}
}

func newShippingFromPayload(payload *ShippingPayload) *domain.Shipping {
	if payload == nil {
		return nil
	}

	shipping := &domain.Shipping{
		IsFree:                payload.IsFree,
		EstimatedDeliveryTime: payload.EstimatedDeliveryTime,
	}

	for _, m := range payload.AvailableShippingMethods {
		shipping.AvailableShippingMethods = append(shipping.AvailableShippingMethods, domain.ShippingMethod{
			ID:                    m.ID,
			Name:                  m.Name,
			Cost:                  m.Cost,
			EstimatedDeliveryTime: m.EstimatedDeliveryTime,
		})
	}

	return shipping
}
