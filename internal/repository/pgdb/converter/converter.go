package converter

import (
	"encoding/json"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// Записи ниже фиксируют форму jsonb-колонок. Ключи в snake_case,
// чтобы содержимое колонок читалось так же, как остальная схема.

type attributeRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Value         any     `json:"value"`
	DisplayValue  string  `json:"display_value"`
	IsHighlighted bool    `json:"is_highlighted"`
	GroupName     *string `json:"group_name,omitempty"`
}

type warrantyRecord struct {
	HasWarranty bool    `json:"has_warranty"`
	Length      *int    `json:"length,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

type shippingRecord struct {
	IsFree                   bool                   `json:"is_free"`
	EstimatedDeliveryTime    map[string]any         `json:"estimated_delivery_time,omitempty"`
	AvailableShippingMethods []shippingMethodRecord `json:"available_shipping_methods,omitempty"`
}

type shippingMethodRecord struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Cost                  float64        `json:"cost"`
	EstimatedDeliveryTime map[string]any `json:"estimated_delivery_time,omitempty"`
}

type optionValueRecord struct {
	ID          string  `json:"id"`
	Value       string  `json:"value"`
	IsAvailable bool    `json:"is_available"`
	IsSelected  bool    `json:"is_selected"`
	Image       *string `json:"image,omitempty"`
}

type reviewAttributeRecord struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// ProductConverter преобразует доменный продукт в строку таблицы products и обратно.
// Связанные коллекции (категории, изображения, варианты) собираются репозиторием
// из собственных таблиц и в преобразовании строки не участвуют.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (c ProductConverter) ToModel(product *domain.Product) (*ProductModel, error) {
	tags := product.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsRaw, err := json.Marshal(tags)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	attrs := make([]attributeRecord, 0, len(product.Attributes))
	for _, a := range product.Attributes {
		attrs = append(attrs, attributeRecord{
			ID:            a.ID,
			Name:          a.Name,
			Value:         a.Value,
			DisplayValue:  a.DisplayValue,
			IsHighlighted: a.IsHighlighted,
			GroupName:     a.GroupName,
		})
	}
	attrsRaw, err := json.Marshal(attrs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	features := product.HighlightedFeatures
	if features == nil {
		features = []string{}
	}
	featuresRaw, err := json.Marshal(features)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var warrantyRaw []byte
	if product.Warranty != nil {
		warrantyRaw, err = json.Marshal(warrantyRecord{
			HasWarranty: product.Warranty.HasWarranty,
			Length:      product.Warranty.Length,
			Unit:        product.Warranty.Unit,
			Type:        product.Warranty.Type,
			Description: product.Warranty.Description,
		})
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	var shippingRaw []byte
	if product.Shipping != nil {
		methods := make([]shippingMethodRecord, 0, len(product.Shipping.AvailableShippingMethods))
		for _, m := range product.Shipping.AvailableShippingMethods {
			methods = append(methods, shippingMethodRecord{
				ID:                    m.ID,
				Name:                  m.Name,
				Cost:                  m.Cost,
				EstimatedDeliveryTime: m.EstimatedDeliveryTime,
			})
		}
		shippingRaw, err = json.Marshal(shippingRecord{
			IsFree:                   product.Shipping.IsFree,
			EstimatedDeliveryTime:    product.Shipping.EstimatedDeliveryTime,
			AvailableShippingMethods: methods,
		})
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	model := &ProductModel{
		ID:                  product.ID,
		Name:                product.Name,
		Slug:                product.Slug,
		Description:         product.Description,
		Summary:             product.Summary,
		PriceAmount:         product.Price.Amount,
		PriceCurrency:       product.Price.Currency,
		BrandID:             product.BrandID,
		Model:               product.Model,
		SKU:                 product.SKU,
		Status:              product.Status,
		Stock:               product.Stock,
		IsAvailable:         product.IsAvailable,
		IsNew:               product.IsNew,
		IsRefurbished:       product.IsRefurbished,
		Condition:           product.Condition,
		HasVariants:         product.HasVariants,
		Tags:                tagsRaw,
		Attributes:          attrsRaw,
		HighlightedFeatures: featuresRaw,
		Warranty:            warrantyRaw,
		Shipping:            shippingRaw,
		CreatedAt:           product.CreatedAt,
		UpdatedAt:           product.UpdatedAt,
	}
	if product.CompareAtPrice != nil {
		amount := product.CompareAtPrice.Amount
		model.CompareAtPrice = &amount
	}

	return model, nil
}

func (c ProductConverter) ToEntity(model *ProductModel) (*domain.Product, error) {
	product := &domain.Product{
		ID:            model.ID,
		Name:          model.Name,
		Slug:          model.Slug,
		Description:   model.Description,
		Summary:       model.Summary,
		Price:         domain.NewMoney(model.PriceAmount, model.PriceCurrency),
		BrandID:       model.BrandID,
		Model:         model.Model,
		SKU:           model.SKU,
		Status:        model.Status,
		Stock:         model.Stock,
		IsAvailable:   model.IsAvailable,
		IsNew:         model.IsNew,
		IsRefurbished: model.IsRefurbished,
		Condition:     model.Condition,
		HasVariants:   model.HasVariants,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.CompareAtPrice != nil {
		compareAt := domain.NewMoney(*model.CompareAtPrice, model.PriceCurrency)
		product.CompareAtPrice = &compareAt
	}

	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &product.Tags); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if len(model.Attributes) > 0 {
		var attrs []attributeRecord
		if err := json.Unmarshal(model.Attributes, &attrs); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		product.Attributes = make([]domain.Attribute, 0, len(attrs))
		for _, a := range attrs {
			product.Attributes = append(product.Attributes, domain.Attribute{
				ID:            a.ID,
				Name:          a.Name,
				Value:         a.Value,
				DisplayValue:  a.DisplayValue,
				IsHighlighted: a.IsHighlighted,
				GroupName:     a.GroupName,
			})
		}
	}

	if len(model.HighlightedFeatures) > 0 {
		if err := json.Unmarshal(model.HighlightedFeatures, &product.HighlightedFeatures); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if len(model.Warranty) > 0 {
		var rec warrantyRecord
		if err := json.Unmarshal(model.Warranty, &rec); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		product.Warranty = &domain.Warranty{
			HasWarranty: rec.HasWarranty,
			Length:      rec.Length,
			Unit:        rec.Unit,
			Type:        rec.Type,
			Description: rec.Description,
		}
	}

	if len(model.Shipping) > 0 {
		var rec shippingRecord
		if err := json.Unmarshal(model.Shipping, &rec); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		methods := make([]domain.ShippingMethod, 0, len(rec.AvailableShippingMethods))
		for _, m := range rec.AvailableShippingMethods {
			methods = append(methods, domain.ShippingMethod{
				ID:                    m.ID,
				Name:                  m.Name,
				Cost:                  m.Cost,
				EstimatedDeliveryTime: m.EstimatedDeliveryTime,
			})
		}
		product.Shipping = &domain.Shipping{
			IsFree:                   rec.IsFree,
			EstimatedDeliveryTime:    rec.EstimatedDeliveryTime,
			AvailableShippingMethods: methods,
		}
	}

	return product, nil
}

func (c ProductConverter) ToArrEntity(models []*ProductModel) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(models))
	for _, model := range models {
		product, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// CategoryConverter преобразует доменную категорию в строку таблицы categories и обратно.
type CategoryConverter struct{}

func NewCategoryConverter() CategoryConverter {
	return CategoryConverter{}
}

func (c CategoryConverter) ToModel(category *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ParentID:    category.ParentID,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func (c CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:          model.ID,
		Name:        model.Name,
		Slug:        model.Slug,
		Description: model.Description,
		ParentID:    model.ParentID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (c CategoryConverter) ToArrEntity(models []*CategoryModel) []*domain.Category {
	categories := make([]*domain.Category, 0, len(models))
	for _, model := range models {
		categories = append(categories, c.ToEntity(model))
	}
	return categories
}

// BrandConverter преобразует доменный бренд в строку таблицы brands и обратно.
type BrandConverter struct{}

func NewBrandConverter() BrandConverter {
	return BrandConverter{}
}

func (c BrandConverter) ToModel(brand *domain.Brand) *BrandModel {
	return &BrandModel{
		ID:          brand.ID,
		Name:        brand.Name,
		Logo:        brand.Logo,
		Description: brand.Description,
		CreatedAt:   brand.CreatedAt,
		UpdatedAt:   brand.UpdatedAt,
	}
}

func (c BrandConverter) ToEntity(model *BrandModel) *domain.Brand {
	return &domain.Brand{
		ID:          model.ID,
		Name:        model.Name,
		Logo:        model.Logo,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (c BrandConverter) ToArrEntity(models []*BrandModel) []*domain.Brand {
	brands := make([]*domain.Brand, 0, len(models))
	for _, model := range models {
		brands = append(brands, c.ToEntity(model))
	}
	return brands
}

// ImageConverter преобразует доменное изображение в строку таблицы product_images и обратно.
type ImageConverter struct{}

func NewImageConverter() ImageConverter {
	return ImageConverter{}
}

func (c ImageConverter) ToModel(image *domain.Image) *ImageModel {
	return &ImageModel{
		ID:        image.ID,
		ProductID: image.ProductID,
		VariantID: image.VariantID,
		URL:       image.URL,
		Alt:       image.Alt,
		IsMain:    image.IsMain,
		SortOrder: image.Order,
		CreatedAt: image.CreatedAt,
		UpdatedAt: image.UpdatedAt,
	}
}

func (c ImageConverter) ToEntity(model *ImageModel) *domain.Image {
	return &domain.Image{
		ID:        model.ID,
		ProductID: model.ProductID,
		VariantID: model.VariantID,
		URL:       model.URL,
		Alt:       model.Alt,
		IsMain:    model.IsMain,
		Order:     model.SortOrder,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c ImageConverter) ToArrEntity(models []*ImageModel) []domain.Image {
	images := make([]domain.Image, 0, len(models))
	for _, model := range models {
		images = append(images, *c.ToEntity(model))
	}
	return images
}

// VariantConverter преобразует доменный вариант в строку таблицы product_variants и обратно.
type VariantConverter struct{}

func NewVariantConverter() VariantConverter {
	return VariantConverter{}
}

func (c VariantConverter) ToModel(variant *domain.Variant) (*VariantModel, error) {
	attrs := variant.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrsRaw, err := json.Marshal(attrs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := &VariantModel{
		ID:              variant.ID,
		ParentProductID: variant.ParentProductID,
		Name:            variant.Name,
		SKU:             variant.SKU,
		PriceAmount:     variant.Price.Amount,
		PriceCurrency:   variant.Price.Currency,
		Stock:           variant.Stock,
		IsAvailable:     variant.IsAvailable,
		IsSelected:      variant.IsSelected,
		Attributes:      attrsRaw,
		CreatedAt:       variant.CreatedAt,
		UpdatedAt:       variant.UpdatedAt,
	}
	if variant.CompareAtPrice != nil {
		amount := variant.CompareAtPrice.Amount
		model.CompareAtPrice = &amount
	}

	return model, nil
}

func (c VariantConverter) ToEntity(model *VariantModel) (*domain.Variant, error) {
	variant := &domain.Variant{
		ID:              model.ID,
		ParentProductID: model.ParentProductID,
		Name:            model.Name,
		SKU:             model.SKU,
		Price:           domain.NewMoney(model.PriceAmount, model.PriceCurrency),
		Stock:           model.Stock,
		IsAvailable:     model.IsAvailable,
		IsSelected:      model.IsSelected,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	if model.CompareAtPrice != nil {
		compareAt := domain.NewMoney(*model.CompareAtPrice, model.PriceCurrency)
		variant.CompareAtPrice = &compareAt
	}

	if len(model.Attributes) > 0 {
		if err := json.Unmarshal(model.Attributes, &variant.Attributes); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return variant, nil
}

func (c VariantConverter) ToArrEntity(models []*VariantModel) ([]domain.Variant, error) {
	variants := make([]domain.Variant, 0, len(models))
	for _, model := range models {
		variant, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *variant)
	}
	return variants, nil
}

// ConfigOptionConverter преобразует доменную опцию конфигурации в строку таблицы
// config_options и обратно. Значения опции хранятся единым jsonb-массивом.
type ConfigOptionConverter struct{}

func NewConfigOptionConverter() ConfigOptionConverter {
	return ConfigOptionConverter{}
}

func (c ConfigOptionConverter) ToModel(option *domain.ConfigOption) (*ConfigOptionModel, error) {
	values := make([]optionValueRecord, 0, len(option.Values))
	for _, v := range option.Values {
		values = append(values, optionValueRecord{
			ID:          v.ID,
			Value:       v.Value,
			IsAvailable: v.IsAvailable,
			IsSelected:  v.IsSelected,
			Image:       v.Image,
		})
	}
	valuesRaw, err := json.Marshal(values)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &ConfigOptionModel{
		ID:        option.ID,
		ProductID: option.ProductID,
		Name:      option.Name,
		Values:    valuesRaw,
		CreatedAt: option.CreatedAt,
		UpdatedAt: option.UpdatedAt,
	}, nil
}

func (c ConfigOptionConverter) ToEntity(model *ConfigOptionModel) (*domain.ConfigOption, error) {
	option := &domain.ConfigOption{
		ID:        model.ID,
		ProductID: model.ProductID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if len(model.Values) > 0 {
		var values []optionValueRecord
		if err := json.Unmarshal(model.Values, &values); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		option.Values = make([]domain.ConfigOptionValue, 0, len(values))
		for _, v := range values {
			option.Values = append(option.Values, domain.ConfigOptionValue{
				ID:          v.ID,
				Value:       v.Value,
				IsAvailable: v.IsAvailable,
				IsSelected:  v.IsSelected,
				Image:       v.Image,
			})
		}
	}

	return option, nil
}

func (c ConfigOptionConverter) ToArrEntity(models []*ConfigOptionModel) ([]domain.ConfigOption, error) {
	options := make([]domain.ConfigOption, 0, len(models))
	for _, model := range models {
		option, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		options = append(options, *option)
	}
	return options, nil
}

// ReviewConverter преобразует доменный отзыв в строку таблицы product_reviews и обратно.
type ReviewConverter struct{}

func NewReviewConverter() ReviewConverter {
	return ReviewConverter{}
}

func (c ReviewConverter) ToModel(review *domain.Review) (*ReviewModel, error) {
	attrs := make([]reviewAttributeRecord, 0, len(review.Attributes))
	for _, a := range review.Attributes {
		attrs = append(attrs, reviewAttributeRecord{Name: a.Name, Rating: a.Rating})
	}
	attrsRaw, err := json.Marshal(attrs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &ReviewModel{
		ID:                 review.ID,
		ProductID:          review.ProductID,
		UserID:             review.UserID,
		UserName:           review.UserName,
		Rating:             review.Rating,
		Title:              review.Title,
		Comment:            review.Comment,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		Likes:              review.Likes,
		Attributes:         attrsRaw,
		CreatedAt:          review.CreatedAt,
		UpdatedAt:          review.UpdatedAt,
	}, nil
}

func (c ReviewConverter) ToEntity(model *ReviewModel) (*domain.Review, error) {
	review := &domain.Review{
		ID:                 model.ID,
		ProductID:          model.ProductID,
		UserID:             model.UserID,
		UserName:           model.UserName,
		Rating:             model.Rating,
		Title:              model.Title,
		Comment:            model.Comment,
		IsVerifiedPurchase: model.IsVerifiedPurchase,
		Likes:              model.Likes,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}

	if len(model.Attributes) > 0 {
		var attrs []reviewAttributeRecord
		if err := json.Unmarshal(model.Attributes, &attrs); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		review.Attributes = make([]domain.ReviewAttribute, 0, len(attrs))
		for _, a := range attrs {
			review.Attributes = append(review.Attributes, domain.ReviewAttribute{
				Name:   a.Name,
				Rating: a.Rating,
			})
		}
	}

	return review, nil
}

func (c ReviewConverter) ToArrEntity(models []*ReviewModel) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0, len(models))
	for _, model := range models {
		review, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, nil
}

// DummyConverter преобразует доменный объект Dummy в строку таблицы dummies и обратно.
type DummyConverter struct{}

func NewDummyConverter() DummyConverter {
	return DummyConverter{}
}

func (c DummyConverter) ToModel(dummy *domain.Dummy) *DummyModel {
	return &DummyModel{
		ID:   dummy.ID,
		Name: dummy.Name,
	}
}

func (c DummyConverter) ToEntity(model *DummyModel) *domain.Dummy {
	return &domain.Dummy{
		ID:   model.ID,
		Name: model.Name,
	}
}

func (c DummyConverter) ToArrEntity(models []*DummyModel) []*domain.Dummy {
	dummies := make([]*domain.Dummy, 0, len(models))
	for _, model := range models {
		dummies = append(dummies, c.ToEntity(model))
	}
	return dummies
}

// OutboxEventConverter преобразует событие outbox в строку таблицы outbox_events и обратно.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter {
	return OutboxEventConverter{}
}

func (c OutboxEventConverter) ToModel(event *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          event.ID,
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     event.Payload,
		Status:      event.Status,
		CreatedAt:   event.CreatedAt,
		ProcessedAt: event.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   model.EventType,
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	events := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		events = append(events, c.ToEntity(model))
	}
	return events
}
