package pgdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `p.id, p.name, p.slug, p.description, p.summary,
	p.price_amount, p.price_currency, p.compare_at_price,
	p.brand_id, p.model, p.sku, p.status, p.stock,
	p.is_available, p.is_new, p.is_refurbished, p.condition, p.has_variants,
	p.tags, p.attributes, p.highlighted_features, p.warranty, p.shipping,
	p.created_at, p.updated_at`

// productSortColumns ограничивает сортировку известными колонками.
var productSortColumns = map[string]string{
	"name":       "p.name",
	"price":      "p.price_amount",
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
	"stock":      "p.stock",
}

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// Агрегат раскладывается по таблицам products, product_categories,
// product_images, product_variants и config_options.
type ProductRepo struct {
	pool     *pgxpool.Pool
	conv     converter.ProductConverter
	images   converter.ImageConverter
	variants converter.VariantConverter
	options  converter.ConfigOptionConverter
	reviews  converter.ReviewConverter
	cats     converter.CategoryConverter
	brands   converter.BrandConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool:     pool,
		conv:     conv,
		images:   converter.NewImageConverter(),
		variants: converter.NewVariantConverter(),
		options:  converter.NewConfigOptionConverter(),
		reviews:  converter.NewReviewConverter(),
		cats:     converter.NewCategoryConverter(),
		brands:   converter.NewBrandConverter(),
	}
}

// List возвращает страницу продуктов по фильтру и общее число совпадений.
// Обе выборки строятся на одном и том же наборе условий.
func (p *ProductRepo) List(ctx context.Context, filter *usecase.ProductFilter) ([]*domain.Product, int64, error) {
	db := q(ctx, p.pool)

	listSQL, countSQL, listArgs, countArgs := buildProductListQuery(filter)

	var total int64
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	rows, err := db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.ProductModel
	for rows.Next() {
		model, err := scanProductModel(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	products, err := p.conv.ToArrEntity(models)
	if err != nil {
		return nil, 0, err
	}

	if err := p.loadRelations(ctx, db, products, false); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID возвращает продукт со всеми связями, включая отзывы.
// Отсутствие продукта не считается ошибкой: возвращается (nil, nil).
func (p *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return p.getOne(ctx, q(ctx, p.pool), "p.id = $1", id, true)
}

// GetBySKU возвращает продукт по SKU со всеми связями, включая отзывы.
func (p *ProductRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return p.getOne(ctx, q(ctx, p.pool), "p.sku = $1", sku, true)
}

// Create вставляет продукт и все его вложенные коллекции.
// Вызывается только внутри транзакции, открытой юзкейсом.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	model, err := p.conv.ToModel(product)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products (
			id, name, slug, description, summary,
			price_amount, price_currency, compare_at_price,
			brand_id, model, sku, status, stock,
			is_available, is_new, is_refurbished, condition, has_variants,
			tags, attributes, highlighted_features, warranty, shipping
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING created_at, updated_at;
	`

	err = tx.QueryRow(ctx, query,
		model.ID, model.Name, model.Slug, model.Description, model.Summary,
		model.PriceAmount, model.PriceCurrency, model.CompareAtPrice,
		model.BrandID, model.Model, model.SKU, model.Status, model.Stock,
		model.IsAvailable, model.IsNew, model.IsRefurbished, model.Condition, model.HasVariants,
		model.Tags, model.Attributes, model.HighlightedFeatures, model.Warranty, model.Shipping,
	).Scan(&model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, e.Wrap(whereami.WhereAmI(), dup)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.insertCategoryLinks(ctx, tx, product.ID, product.Categories); err != nil {
		return nil, err
	}
	if err := p.insertImages(ctx, tx, product.ID, nil, product.Images); err != nil {
		return nil, err
	}
	if err := p.insertVariants(ctx, tx, product.ID, product.Variants); err != nil {
		return nil, err
	}
	if err := p.insertConfigOptions(ctx, tx, product.ID, product.ConfigOptions); err != nil {
		return nil, err
	}

	return p.getOne(ctx, tx, "p.id = $1", product.ID, false)
}

// Update перезаписывает строку продукта и заменяет целиком те коллекции,
// которые пришли в запросе. Поля, отсутствующие в fields, не трогаются.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product, fields *usecase.UpdateProductReq) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := p.conv.ToModel(product)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products SET
			name = $2, slug = $3, description = $4, summary = $5,
			price_amount = $6, price_currency = $7, compare_at_price = $8,
			brand_id = $9, model = $10, sku = $11, status = $12, stock = $13,
			is_available = $14, is_new = $15, is_refurbished = $16,
			condition = $17, has_variants = $18,
			tags = $19, attributes = $20, highlighted_features = $21,
			warranty = $22, shipping = $23,
			updated_at = NOW()
		WHERE id = $1;
	`

	tag, err := tx.Exec(ctx, query,
		model.ID, model.Name, model.Slug, model.Description, model.Summary,
		model.PriceAmount, model.PriceCurrency, model.CompareAtPrice,
		model.BrandID, model.Model, model.SKU, model.Status, model.Stock,
		model.IsAvailable, model.IsNew, model.IsRefurbished, model.Condition, model.HasVariants,
		model.Tags, model.Attributes, model.HighlightedFeatures, model.Warranty, model.Shipping,
	)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, e.Wrap(whereami.WhereAmI(), dup)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	if fields.CategoryIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, product.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := p.insertCategoryLinks(ctx, tx, product.ID, product.Categories); err != nil {
			return nil, err
		}
	}

	if fields.Images != nil {
		// Изображения вариантов живут в той же таблице и заменяются вместе с вариантами.
		if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1 AND variant_id IS NULL`, product.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := p.insertImages(ctx, tx, product.ID, nil, product.Images); err != nil {
			return nil, err
		}
	}

	if fields.Variants != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE parent_product_id = $1`, product.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := p.insertVariants(ctx, tx, product.ID, product.Variants); err != nil {
			return nil, err
		}
	}

	if fields.ConfigOptions != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM config_options WHERE product_id = $1`, product.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := p.insertConfigOptions(ctx, tx, product.ID, product.ConfigOptions); err != nil {
			return nil, err
		}
	}

	return p.getOne(ctx, tx, "p.id = $1", product.ID, false)
}

// Delete удаляет продукт. Вложенные коллекции убирает каскад внешних ключей.
func (p *ProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db := q(ctx, p.pool)

	tag, err := db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddImages дописывает изображения к продукту, не трогая существующие.
func (p *ProductRepo) AddImages(ctx context.Context, productID uuid.UUID, images []domain.Image) error {
	return p.insertImages(ctx, q(ctx, p.pool), productID, nil, images)
}

func (p *ProductRepo) getOne(ctx context.Context, db querier, cond string, arg any, withReviews bool) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products p WHERE %s;", productColumns, cond)

	model, err := scanProductModel(db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product, err := p.conv.ToEntity(model)
	if err != nil {
		return nil, err
	}

	if err := p.loadRelations(ctx, db, []*domain.Product{product}, withReviews); err != nil {
		return nil, err
	}

	return product, nil
}

// loadRelations дозагружает связи страницы продуктов пакетными запросами,
// по одному на таблицу вместо запроса на продукт.
func (p *ProductRepo) loadRelations(ctx context.Context, db querier, products []*domain.Product, withReviews bool) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
		byID[product.ID] = product
	}

	if err := p.loadCategories(ctx, db, ids, byID); err != nil {
		return err
	}
	if err := p.loadVariants(ctx, db, ids, byID); err != nil {
		return err
	}
	if err := p.loadImages(ctx, db, ids, byID, products); err != nil {
		return err
	}
	if err := p.loadConfigOptions(ctx, db, ids, byID); err != nil {
		return err
	}
	if err := p.loadBrands(ctx, db, products); err != nil {
		return err
	}
	if withReviews {
		if err := p.loadReviews(ctx, db, ids, byID); err != nil {
			return err
		}
	}

	return nil
}

func (p *ProductRepo) loadCategories(ctx context.Context, db querier, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	query := `
		SELECT pc.product_id, c.id, c.name, c.slug, c.description, c.parent_id, c.created_at, c.updated_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY c.name;
	`

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var model converter.CategoryModel
		if err := rows.Scan(
			&productID,
			&model.ID, &model.Name, &model.Slug, &model.Description, &model.ParentID,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		if product, ok := byID[productID]; ok {
			product.Categories = append(product.Categories, *p.cats.ToEntity(&model))
		}
	}

	if err := rows.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) loadVariants(ctx context.Context, db querier, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	query := `
		SELECT id, parent_product_id, name, sku, price_amount, price_currency, compare_at_price,
			stock, is_available, is_selected, attributes, created_at, updated_at
		FROM product_variants
		WHERE parent_product_id = ANY($1)
		ORDER BY created_at, id;
	`

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.VariantModel
		if err := rows.Scan(
			&model.ID, &model.ParentProductID, &model.Name, &model.SKU,
			&model.PriceAmount, &model.PriceCurrency, &model.CompareAtPrice,
			&model.Stock, &model.IsAvailable, &model.IsSelected, &model.Attributes,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		variant, err := p.variants.ToEntity(&model)
		if err != nil {
			return err
		}

		if product, ok := byID[model.ParentProductID]; ok {
			product.Variants = append(product.Variants, *variant)
		}
	}

	if err := rows.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// loadImages распределяет строки product_images между продуктами и их
// вариантами, поэтому вызывается после loadVariants.
func (p *ProductRepo) loadImages(ctx context.Context, db querier, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product, products []*domain.Product) error {
	varIndex := make(map[uuid.UUID]*domain.Variant)
	for _, product := range products {
		for i := range product.Variants {
			varIndex[product.Variants[i].ID] = &product.Variants[i]
		}
	}

	query := `
		SELECT id, product_id, variant_id, url, alt, is_main, sort_order, created_at, updated_at
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY sort_order, created_at;
	`

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.ImageModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.VariantID, &model.URL, &model.Alt,
			&model.IsMain, &model.SortOrder, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		image := p.images.ToEntity(&model)

		if image.VariantID != nil {
			if variant, ok := varIndex[*image.VariantID]; ok {
				variant.Images = append(variant.Images, *image)
			}
			continue
		}

		if product, ok := byID[image.ProductID]; ok {
			product.Images = append(product.Images, *image)
		}
	}

	if err := rows.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) loadConfigOptions(ctx context.Context, db querier, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	query := `
		SELECT id, product_id, name, option_values, created_at, updated_at
		FROM config_options
		WHERE product_id = ANY($1)
		ORDER BY created_at, id;
	`

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.ConfigOptionModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.Name, &model.Values,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		option, err := p.options.ToEntity(&model)
		if err != nil {
			return err
		}

		if product, ok := byID[model.ProductID]; ok {
			product.ConfigOptions = append(product.ConfigOptions, *option)
		}
	}

	if err := rows.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) loadBrands(ctx context.Context, db querier, products []*domain.Product) error {
	seen := make(map[uuid.UUID]struct{})
	var brandIDs []uuid.UUID
	for _, product := range products {
		if product.BrandID == nil {
			continue
		}
		if _, ok := seen[*product.BrandID]; ok {
			continue
		}

		seen[*product.BrandID] = struct{}{}
		brandIDs = append(brandIDs, *product.BrandID)
	}
	if len(brandIDs) == 0 {
		return nil
	}

	query := `
		SELECT id, name, logo, description, created_at, updated_at
		FROM brands
		WHERE id = ANY($1);
	`

	rows, err := db.Query(ctx, query, brandIDs)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	brands := make(map[uuid.UUID]*domain.Brand, len(brandIDs))
	for rows.Next() {
		var model converter.BrandModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Logo, &model.Description,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		brands[model.ID] = p.brands.ToEntity(&model)
	}
	if err := rows.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	for _, product := range products {
		if product.BrandID != nil {
			product.Brand = brands[*product.BrandID]
		}
	}

	return nil
}

func (p *ProductRepo) loadReviews(ctx context.Context, db querier, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	query := `
		SELECT id, product_id, user_id, user_name, rating, title, comment,
			is_verified_purchase, likes, attributes, created_at, updated_at
		FROM product_reviews
		WHERE product_id = ANY($1)
		ORDER BY created_at DESC;
	`

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.ReviewModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.UserID, &model.UserName, &model.Rating,
			&model.Title, &model.Comment, &model.IsVerifiedPurchase, &model.Likes,
			&model.Attributes, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		review, err := p.reviews.ToEntity(&model)
		if err != nil {
			return err
		}

		if product, ok := byID[model.ProductID]; ok {
			product.Reviews = append(product.Reviews, *review)
		}
	}

	if err := rows.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) insertCategoryLinks(ctx context.Context, db querier, productID uuid.UUID, categories []domain.Category) error {
	for _, category := range categories {
		_, err := db.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			productID, category.ID,
		)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

func (p *ProductRepo) insertImages(ctx context.Context, db querier, productID uuid.UUID, variantID *uuid.UUID, images []domain.Image) error {
	for i := range images {
		image := &images[i]
		if image.ID == uuid.Nil {
			image.ID = uuid.New()
		}
		image.ProductID = productID
		if variantID != nil {
			image.VariantID = variantID
		}

		model := p.images.ToModel(image)
		_, err := db.Exec(ctx, `
			INSERT INTO product_images (id, product_id, variant_id, url, alt, is_main, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			model.ID, model.ProductID, model.VariantID, model.URL, model.Alt, model.IsMain, model.SortOrder,
		)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

func (p *ProductRepo) insertVariants(ctx context.Context, db querier, productID uuid.UUID, variants []domain.Variant) error {
	for i := range variants {
		variant := &variants[i]
		if variant.ID == uuid.Nil {
			variant.ID = uuid.New()
		}
		variant.ParentProductID = productID

		model, err := p.variants.ToModel(variant)
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx, `
			INSERT INTO product_variants (
				id, parent_product_id, name, sku, price_amount, price_currency,
				compare_at_price, stock, is_available, is_selected, attributes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			model.ID, model.ParentProductID, model.Name, model.SKU,
			model.PriceAmount, model.PriceCurrency, model.CompareAtPrice,
			model.Stock, model.IsAvailable, model.IsSelected, model.Attributes,
		)
		if err != nil {
			if dup := duplicateError(err); dup != nil {
				return e.Wrap(whereami.WhereAmI(), dup)
			}

			return e.Wrap(whereami.WhereAmI(), err)
		}

		if err := p.insertImages(ctx, db, productID, &variant.ID, variant.Images); err != nil {
			return err
		}
	}

	return nil
}

func (p *ProductRepo) insertConfigOptions(ctx context.Context, db querier, productID uuid.UUID, options []domain.ConfigOption) error {
	for i := range options {
		option := &options[i]
		if option.ID == uuid.Nil {
			option.ID = uuid.New()
		}
		option.ProductID = productID

		model, err := p.options.ToModel(option)
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx, `
			INSERT INTO config_options (id, product_id, name, option_values)
			VALUES ($1, $2, $3, $4)`,
			model.ID, model.ProductID, model.Name, model.Values,
		)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

// buildProductListQuery собирает выборку страницы и счётчик совпадений
// на одном наборе условий. Неизвестное поле сортировки заменяется умолчанием,
// его валидация происходит уровнем выше.
func buildProductListQuery(filter *usecase.ProductFilter) (listSQL, countSQL string, listArgs, countArgs []any) {
	var conds []string
	args := make([]any, 0, 8)

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id = $%d)",
			len(args),
		))
	}
	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		conds = append(conds, fmt.Sprintf("p.brand_id = $%d", len(args)))
	}
	if filter.PriceMin != nil {
		args = append(args, *filter.PriceMin)
		conds = append(conds, fmt.Sprintf("p.price_amount >= $%d", len(args)))
	}
	if filter.PriceMax != nil {
		args = append(args, *filter.PriceMax)
		conds = append(conds, fmt.Sprintf("p.price_amount <= $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d OR p.sku ILIKE $%d)", n, n, n))
	}
	for _, tag := range filter.Tags {
		raw, _ := json.Marshal([]string{tag})
		args = append(args, raw)
		conds = append(conds, fmt.Sprintf("p.tags @> $%d", len(args)))
	}
	if filter.IsAvailable != nil {
		args = append(args, *filter.IsAvailable)
		conds = append(conds, fmt.Sprintf("p.is_available = $%d", len(args)))
	}
	if filter.IsNew != nil {
		args = append(args, *filter.IsNew)
		conds = append(conds, fmt.Sprintf("p.is_new = $%d", len(args)))
	}
	if filter.Condition != nil {
		args = append(args, *filter.Condition)
		conds = append(conds, fmt.Sprintf("p.condition = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countSQL = strings.TrimSpace(fmt.Sprintf("SELECT COUNT(*) FROM products p %s", where)) + ";"
	countArgs = append([]any(nil), args...)

	sortCol := productSortColumns["created_at"]
	if col, ok := productSortColumns[filter.SortBy]; ok {
		sortCol = col
	}
	// Без явного направления сортируем по убыванию; любое значение,
	// кроме "desc", читается как "asc".
	dir := "DESC"
	if filter.SortOrder != "" && !strings.EqualFold(filter.SortOrder, "desc") {
		dir = "ASC"
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	// Добор по id делает порядок устойчивым при равных значениях сортировки.
	listSQL = strings.TrimSpace(fmt.Sprintf(
		"SELECT %s FROM products p %s ORDER BY %s %s, p.id ASC LIMIT $%d OFFSET $%d",
		productColumns, where, sortCol, dir, limitPos, offsetPos,
	)) + ";"
	listArgs = args

	return listSQL, countSQL, listArgs, countArgs
}

func scanProductModel(row pgx.Row) (*converter.ProductModel, error) {
	var m converter.ProductModel
	err := row.Scan(
		&m.ID, &m.Name, &m.Slug, &m.Description, &m.Summary,
		&m.PriceAmount, &m.PriceCurrency, &m.CompareAtPrice,
		&m.BrandID, &m.Model, &m.SKU, &m.Status, &m.Stock,
		&m.IsAvailable, &m.IsNew, &m.IsRefurbished, &m.Condition, &m.HasVariants,
		&m.Tags, &m.Attributes, &m.HighlightedFeatures, &m.Warranty, &m.Shipping,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}
