package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PRODUCT USECASE

// Допустимые поля сортировки списка продуктов.
var SortableFields = map[string]struct{}{
	"name":       {},
	"price":      {},
	"created_at": {},
	"updated_at": {},
	"stock":      {},
}

// ProductFilter — критерии выборки списка продуктов.
// nil-поле означает отсутствие ограничения.
type ProductFilter struct {
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	Search      *string
	Tags        []string
	IsAvailable *bool
	IsNew       *bool
	Condition   *string
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}

// CreateProductReq — запрос на создание продукта.
type CreateProductReq struct {
	Name                string            `json:"name"`
	Slug                *string           `json:"slug,omitempty"`
	Description         string            `json:"description"`
	Summary             *string           `json:"summary,omitempty"`
	Price               float64           `json:"price"`
	CompareAtPrice      *float64          `json:"compareAtPrice,omitempty"`
	Currency            string            `json:"currency,omitempty"`
	BrandID             *uuid.UUID        `json:"brandId,omitempty"`
	Model               *string           `json:"model,omitempty"`
	SKU                 string            `json:"sku"`
	Stock               int               `json:"stock"`
	IsAvailable         *bool             `json:"isAvailable,omitempty"`
	IsNew               bool              `json:"isNew"`
	IsRefurbished       bool              `json:"isRefurbished"`
	Condition           string            `json:"condition,omitempty"`
	CategoryIDs         []uuid.UUID       `json:"categoryIds,omitempty"`
	Tags                []string          `json:"tags,omitempty"`
	Images              []ImageReq        `json:"images,omitempty"`
	Attributes          []AttributeReq    `json:"attributes,omitempty"`
	HasVariants         bool              `json:"hasVariants"`
	Variants            []VariantReq      `json:"variants,omitempty"`
	ConfigOptions       []ConfigOptionReq `json:"configOptions,omitempty"`
	Warranty            *WarrantyPayload  `json:"warranty,omitempty"`
	Shipping            *ShippingPayload  `json:"shipping,omitempty"`
	HighlightedFeatures []string          `json:"highlightedFeatures,omitempty"`
}

// UpdateProductReq — частичное обновление продукта.
// nil-поле остаётся без изменений; присланная коллекция заменяет
// существующую целиком.
type UpdateProductReq struct {
	Name                *string            `json:"name,omitempty"`
	Slug                *string            `json:"slug,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Summary             *string            `json:"summary,omitempty"`
	Price               *float64           `json:"price,omitempty"`
	CompareAtPrice      *float64           `json:"compareAtPrice,omitempty"`
	Currency            *string            `json:"currency,omitempty"`
	BrandID             *uuid.UUID         `json:"brandId,omitempty"`
	Model               *string            `json:"model,omitempty"`
	SKU                 *string            `json:"sku,omitempty"`
	Stock               *int               `json:"stock,omitempty"`
	IsAvailable         *bool              `json:"isAvailable,omitempty"`
	IsNew               *bool              `json:"isNew,omitempty"`
	IsRefurbished       *bool              `json:"isRefurbished,omitempty"`
	Condition           *string            `json:"condition,omitempty"`
	CategoryIDs         *[]uuid.UUID       `json:"categoryIds,omitempty"`
	Tags                *[]string          `json:"tags,omitempty"`
	Images              *[]ImageReq        `json:"images,omitempty"`
	Attributes          *[]AttributeReq    `json:"attributes,omitempty"`
	HasVariants         *bool              `json:"hasVariants,omitempty"`
	Variants            *[]VariantReq      `json:"variants,omitempty"`
	ConfigOptions       *[]ConfigOptionReq `json:"configOptions,omitempty"`
	Warranty            *WarrantyPayload   `json:"warranty,omitempty"`
	Shipping            *ShippingPayload   `json:"shipping,omitempty"`
	HighlightedFeatures *[]string          `json:"highlightedFeatures,omitempty"`
}

type ImageReq struct {
	URL    string  `json:"url"`
	Alt    *string `json:"alt,omitempty"`
	IsMain bool    `json:"isMain"`
	Order  int     `json:"order"`
}

type AttributeReq struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Value         any     `json:"value"`
	DisplayValue  string  `json:"displayValue"`
	IsHighlighted bool    `json:"isHighlighted"`
	GroupName     *string `json:"groupName,omitempty"`
}

type VariantReq struct {
	Name           string         `json:"name"`
	SKU            string         `json:"sku"`
	Price          float64        `json:"price"`
	CompareAtPrice *float64       `json:"compareAtPrice,omitempty"`
	Stock          int            `json:"stock"`
	IsAvailable    *bool          `json:"isAvailable,omitempty"`
	IsSelected     bool           `json:"isSelected"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}

type ConfigOptionReq struct {
	Name   string                 `json:"name"`
	Values []ConfigOptionValueReq `json:"values"`
}

type ConfigOptionValueReq struct {
	ID          string  `json:"id,omitempty"`
	Value       string  `json:"value"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	IsSelected  bool    `json:"isSelected"`
	Image       *string `json:"image,omitempty"`
}

// WarrantyPayload используется и в запросах, и в ответах.
type WarrantyPayload struct {
	HasWarranty bool    `json:"hasWarranty"`
	Length      *int    `json:"length,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ShippingPayload используется и в запросах, и в ответах.
type ShippingPayload struct {
	IsFree                   bool                 `json:"isFree"`
	EstimatedDeliveryTime    map[string]any       `json:"estimatedDeliveryTime,omitempty"`
	AvailableShippingMethods []ShippingMethodInfo `json:"availableShippingMethods,omitempty"`
}

type ShippingMethodInfo struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Cost                  float64        `json:"cost"`
	EstimatedDeliveryTime map[string]any `json:"estimatedDeliveryTime,omitempty"`
}

// ProductRes — представление продукта на границе API.
type ProductRes struct {
	ID                  uuid.UUID         `json:"id"`
	SKU                 string            `json:"sku"`
	Name                string            `json:"name"`
	Slug                string            `json:"slug"`
	Description         string            `json:"description"`
	Summary             *string           `json:"summary,omitempty"`
	Brand               *BrandInfo        `json:"brand,omitempty"`
	Model               *string           `json:"model,omitempty"`
	Price               float64           `json:"price"`
	CompareAtPrice      *float64          `json:"compareAtPrice,omitempty"`
	Currency            string            `json:"currency"`
	Stock               int               `json:"stock"`
	IsAvailable         bool              `json:"isAvailable"`
	IsNew               bool              `json:"isNew"`
	IsRefurbished       bool              `json:"isRefurbished"`
	Condition           string            `json:"condition"`
	Categories          []CategoryInfo    `json:"categories"`
	Tags                []string          `json:"tags"`
	Images              []ImageRes        `json:"images"`
	Attributes          []AttributeRes    `json:"attributes"`
	HasVariants         bool              `json:"hasVariants"`
	Variants            []VariantRes      `json:"variants,omitempty"`
	ConfigOptions       []ConfigOptionRes `json:"configOptions,omitempty"`
	Warranty            *WarrantyPayload  `json:"warranty,omitempty"`
	Shipping            *ShippingPayload  `json:"shipping,omitempty"`
	Rating              *RatingRes        `json:"rating,omitempty"`
	Reviews             []ReviewRes       `json:"reviews,omitempty"`
	HighlightedFeatures []string          `json:"highlightedFeatures,omitempty"`
	CreatedAt           *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time        `json:"updatedAt,omitempty"`
}

// BrandInfo — краткое представление бренда внутри продукта.
type BrandInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Logo *string   `json:"logo,omitempty"`
}

// CategoryInfo — краткое представление категории внутри продукта.
type CategoryInfo struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

type ImageRes struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Alt    *string `json:"alt,omitempty"`
	IsMain bool    `json:"isMain"`
	Order  int     `json:"order"`
}

type AttributeRes struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Value         any     `json:"value"`
	DisplayValue  string  `json:"displayValue"`
	IsHighlighted bool    `json:"isHighlighted"`
	GroupName     *string `json:"groupName,omitempty"`
}

type VariantRes struct {
	ID             uuid.UUID      `json:"id"`
	SKU            string         `json:"sku"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	CompareAtPrice *float64       `json:"compareAtPrice,omitempty"`
	Attributes     map[string]any `json:"attributes"`
	Stock          int            `json:"stock"`
	IsAvailable    bool           `json:"isAvailable"`
	IsSelected     bool           `json:"isSelected"`
	Image          *string        `json:"image,omitempty"`
	Images         []ImageRes     `json:"images,omitempty"`
}

type ConfigOptionRes struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Values []ConfigOptionValueRes `json:"values"`
}

type ConfigOptionValueRes struct {
	ID          string  `json:"id"`
	Value       string  `json:"value"`
	IsAvailable bool    `json:"isAvailable"`
	IsSelected  bool    `json:"isSelected"`
	Image       *string `json:"image,omitempty"`
}

type RatingRes struct {
	Average      float64        `json:"average"`
	Count        int            `json:"count"`
	Distribution map[string]int `json:"distribution"`
}

type ReviewRes struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"userId"`
	UserName           string          `json:"userName"`
	Rating             int             `json:"rating"`
	Title              *string         `json:"title,omitempty"`
	Comment            string          `json:"comment"`
	Date               time.Time       `json:"date"`
	IsVerifiedPurchase bool            `json:"isVerifiedPurchase"`
	Likes              int             `json:"likes"`
	Attributes         []ReviewAttrRes `json:"attributes,omitempty"`
}

type ReviewAttrRes struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// ListProductsRes — страница продуктов с общим количеством совпадений.
type ListProductsRes struct {
	Items  []*ProductRes `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// UploadProductImagesReq — запрос на привязку изображений к продукту.
type UploadProductImagesReq struct {
	ProductID uuid.UUID
	Images    []ProductImage
}

// CATEGORY USECASE

type CreateCategoryReq struct {
	Name        string     `json:"name"`
	Slug        *string    `json:"slug,omitempty"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
}

type UpdateCategoryReq struct {
	Name        *string    `json:"name,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
}

type CategoryRes struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type ListCategoriesRes struct {
	Items  []*CategoryRes `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// BRAND USECASE

type CreateBrandReq struct {
	Name        string  `json:"name"`
	Logo        *string `json:"logo,omitempty"`
	Description *string `json:"description,omitempty"`
}

type UpdateBrandReq struct {
	Name        *string `json:"name,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Description *string `json:"description,omitempty"`
}

type BrandRes struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Logo        *string    `json:"logo,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type ListBrandsRes struct {
	Items  []*BrandRes `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// DUMMY USECASE

type CreateDummyReq struct {
	Name string `json:"name"`
}

type DummyRes struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ListDummiesRes struct {
	Items  []*DummyRes `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// INFRASTUCTURE

// Типы доменных событий.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventDummyCreated   = "dummy.created"
)

// Статусы событий в outbox-таблице.
const (
	Pending    = "pending"
	Processing = "processing"
	Processed  = "processed"
)

// Event — конверт доменного события.
type Event struct {
	EventID      string         `json:"eventId"`
	EventType    string         `json:"eventType"`
	AggregateID  string         `json:"aggregateId"`
	OccurredAt   time.Time      `json:"occurredAt"`
	Data         map[string]any `json:"data,omitempty"`
	PreviousData map[string]any `json:"previousData,omitempty"`
}

// OutboxEvent — запись события в outbox-таблице.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	AggregateID string
	Payload     []byte
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewEvent(eventType, aggregateID string, data, previousData map[string]any) *Event {
	return &Event{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		AggregateID:  aggregateID,
		OccurredAt:   time.Now().UTC(),
		Data:         data,
		PreviousData: previousData,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadProductImagesReq(productID uuid.UUID, images []ProductImage) *UploadProductImagesReq {
	return &UploadProductImagesReq{
		ProductID: productID,
		Images:    images,
	}
}

func NewListProductsRes(items []*ProductRes, total int64, limit, offset int) *ListProductsRes {
	return &ListProductsRes{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}

// NewProductRes собирает представление продукта для границы API.
// Отсутствующие идентификаторы восстанавливаются: это путь починки
// данных, записанных до ввода обязательных идентификаторов.
func NewProductRes(product *domain.Product) *ProductRes {
	res := &ProductRes{
		ID:                  product.ID,
		SKU:                 product.SKU,
		Name:                product.Name,
		Slug:                product.Slug,
		Description:         product.Description,
		Summary:             product.Summary,
		Model:               product.Model,
		Price:               product.Price.Float64(),
		Currency:            product.Price.Currency,
		Stock:               product.Stock,
		IsAvailable:         product.IsAvailable,
		IsNew:               product.IsNew,
		IsRefurbished:       product.IsRefurbished,
		Condition:           product.Condition,
		Categories:          make([]CategoryInfo, 0, len(product.Categories)),
		Tags:                product.Tags,
		Images:              make([]ImageRes, 0, len(product.Images)),
		Attributes:          make([]AttributeRes, 0, len(product.Attributes)),
		HasVariants:         product.HasVariants,
		HighlightedFeatures: product.HighlightedFeatures,
	}

	if res.Tags == nil {
		res.Tags = []string{}
	}

	if product.CompareAtPrice != nil {
		v := product.CompareAtPrice.Float64()
		res.CompareAtPrice = &v
	}

	if product.Brand != nil {
		res.Brand = &BrandInfo{
			ID:   product.Brand.ID,
			Name: product.Brand.Name,
			Logo: product.Brand.Logo,
		}
	}

	for _, c := range product.Categories {
		res.Categories = append(res.Categories, CategoryInfo{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			ParentID: c.ParentID,
		})
	}

	for _, img := range product.Images {
		res.Images = append(res.Images, NewImageRes(img))
	}

	for i, attr := range product.Attributes {
		res.Attributes = append(res.Attributes, NewAttributeRes(attr, i))
	}

	for _, v := range product.Variants {
		res.Variants = append(res.Variants, NewVariantRes(v))
	}

	for _, opt := range product.ConfigOptions {
		res.ConfigOptions = append(res.ConfigOptions, NewConfigOptionRes(opt))
	}

	if product.Warranty != nil {
		res.Warranty = &WarrantyPayload{
			HasWarranty: product.Warranty.HasWarranty,
			Length:      product.Warranty.Length,
			Unit:        product.Warranty.Unit,
			Type:        product.Warranty.Type,
			Description: product.Warranty.Description,
		}
	}

	if product.Shipping != nil {
		res.Shipping = NewShippingPayload(product.Shipping)
	}

	if len(product.Reviews) > 0 {
		res.Reviews = make([]ReviewRes, 0, len(product.Reviews))
		for _, r := range product.Reviews {
			res.Reviews = append(res.Reviews, NewReviewRes(r))
		}
		res.Rating = NewRatingRes(domain.NewRating(product.Reviews))
	}

	if !product.CreatedAt.IsZero() {
		createdAt := product.CreatedAt
		res.CreatedAt = &createdAt
	}
	res.UpdatedAt = product.UpdatedAt

	return res
}

func NewImageRes(img domain.Image) ImageRes {
	id := img.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return ImageRes{
		ID:     id.String(),
		URL:    img.URL,
		Alt:    img.Alt,
		IsMain: img.IsMain,
		Order:  img.Order,
	}
}

func NewAttributeRes(attr domain.Attribute, position int) AttributeRes {
	id := attr.ID
	if id == "" {
		id = NewAttributeID(position)
	}

	return AttributeRes{
		ID:            id,
		Name:          attr.Name,
		Value:         attr.Value,
		DisplayValue:  attr.DisplayValue,
		IsHighlighted: attr.IsHighlighted,
		GroupName:     attr.GroupName,
	}
}

// NewAttributeID формирует идентификатор атрибута из его позиции
// и короткой случайной части.
func NewAttributeID(position int) string {
	return fmt.Sprintf("attr-%d-%s", position, uuid.NewString()[:8])
}

func NewVariantRes(v domain.Variant) VariantRes {
	res := VariantRes{
		ID:          v.ID,
		SKU:         v.SKU,
		Name:        v.Name,
		Price:       v.Price.Float64(),
		Stock:       v.Stock,
		IsAvailable: v.IsAvailable,
		IsSelected:  v.IsSelected,
		Attributes:  v.Attributes,
	}

	if res.Attributes == nil {
		res.Attributes = map[string]any{}
	}

	if v.CompareAtPrice != nil {
		price := v.CompareAtPrice.Float64()
		res.CompareAtPrice = &price
	}

	for _, img := range v.Images {
		res.Images = append(res.Images, NewImageRes(img))
	}
	if len(res.Images) > 0 {
		res.Image = &res.Images[0].URL
	}

	return res
}

func NewConfigOptionRes(opt domain.ConfigOption) ConfigOptionRes {
	values := make([]ConfigOptionValueRes, 0, len(opt.Values))
	for _, v := range opt.Values {
		values = append(values, ConfigOptionValueRes{
			ID:          v.ID,
			Value:       v.Value,
			IsAvailable: v.IsAvailable,
			IsSelected:  v.IsSelected,
			Image:       v.Image,
		})
	}

	return ConfigOptionRes{
		ID:     opt.ID.String(),
		Name:   opt.Name,
		Values: values,
	}
}

func NewShippingPayload(s *domain.Shipping) *ShippingPayload {
	payload := &ShippingPayload{
		IsFree:                s.IsFree,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
	}

	for _, m := range s.AvailableShippingMethods {
		payload.AvailableShippingMethods = append(payload.AvailableShippingMethods, ShippingMethodInfo{
			ID:                    m.ID,
			Name:                  m.Name,
			Cost:                  m.Cost,
			EstimatedDeliveryTime: m.EstimatedDeliveryTime,
		})
	}

	return payload
}

func NewReviewRes(r domain.Review) ReviewRes {
	res := ReviewRes{
		ID:                 r.ID.String(),
		UserID:             r.UserID,
		UserName:           r.UserName,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		Date:               r.CreatedAt,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		Likes:              r.Likes,
	}

	for _, a := range r.Attributes {
		res.Attributes = append(res.Attributes, ReviewAttrRes{Name: a.Name, Rating: a.Rating})
	}

	return res
}

func NewRatingRes(rating *domain.Rating) *RatingRes {
	if rating == nil {
		return nil
	}

	distribution := make(map[string]int, len(rating.Distribution))
	for score, count := range rating.Distribution {
		distribution[strconv.Itoa(score)] = count
	}

	return &RatingRes{
		Average:      rating.Average,
		Count:        rating.Count,
		Distribution: distribution,
	}
}

func NewCategoryRes(category *domain.Category) *CategoryRes {
	res := &CategoryRes{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ParentID:    category.ParentID,
	}

	if !category.CreatedAt.IsZero() {
		createdAt := category.CreatedAt
		res.CreatedAt = &createdAt
	}
	res.UpdatedAt = category.UpdatedAt

	return res
}

func NewBrandRes(brand *domain.Brand) *BrandRes {
	res := &BrandRes{
		ID:          brand.ID,
		Name:        brand.Name,
		Logo:        brand.Logo,
		Description: brand.Description,
	}

	if !brand.CreatedAt.IsZero() {
		createdAt := brand.CreatedAt
		res.CreatedAt = &createdAt
	}
	res.UpdatedAt = brand.UpdatedAt

	return res
}

func NewDummyRes(dummy *domain.Dummy) *DummyRes {
	return &DummyRes{
		ID:   dummy.ID,
		Name: dummy.Name,
	}
}
