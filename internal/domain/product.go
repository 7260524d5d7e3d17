package domain

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
)

// Статусы жизненного цикла продукта.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

// Состояния продукта.
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// Product описывает продукт каталога вместе с принадлежащими ему
// коллекциями: изображениями, вариантами, опциями конфигурации и отзывами.
type Product struct {
	ID                  uuid.UUID
	Name                string
	Slug                string
	Description         string
	Summary             *string
	Price               Money
	CompareAtPrice      *Money
	BrandID             *uuid.UUID
	Model               *string
	SKU                 string
	Status              string
	Stock               int
	IsAvailable         bool
	IsNew               bool
	IsRefurbished       bool
	Condition           string
	HasVariants         bool
	Tags                []string
	Attributes          []Attribute
	HighlightedFeatures []string
	Warranty            *Warranty
	Shipping            *Shipping
	Brand               *Brand
	Categories          []Category
	Images              []Image
	Variants            []Variant
	ConfigOptions       []ConfigOption
	Reviews             []Review
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

func NewProduct(name, slug, description, sku string, price Money) *Product {
	return &Product{
		Name:        name,
		Slug:        slug,
		Description: description,
		SKU:         sku,
		Price:       price,
		Status:      StatusActive,
		IsAvailable: true,
		Condition:   ConditionNew,
	}
}

// Validate проверяет обязательные поля продукта.
func (p *Product) Validate() error {
	if p.Name == "" {
		return e.ErrNameRequired
	}

	if err := p.Price.Validate(); err != nil {
		return err
	}

	if p.CompareAtPrice != nil {
		if err := p.CompareAtPrice.Validate(); err != nil {
			return err
		}
	}

	if p.Stock < 0 {
		return e.ErrNegativeStock
	}

	if !IsValidCondition(p.Condition) {
		return e.Invalid("unknown condition %q", p.Condition)
	}

	return nil
}

func IsValidCondition(condition string) bool {
	switch condition {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}

	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusDraft, StatusArchived:
		return true
	}

	return false
}

// Attribute описывает свободный атрибут продукта.
// Идентификатор присваивается при первой записи и далее стабилен.
type Attribute struct {
	ID            string
	Name          string
	Value         any
	DisplayValue  string
	IsHighlighted bool
	GroupName     *string
}

func NewAttribute(id, name string, value any, displayValue string) Attribute {
	return Attribute{
		ID:           id,
		Name:         name,
		Value:        value,
		DisplayValue: displayValue,
	}
}

// Warranty описывает гарантию продукта.
type Warranty struct {
	HasWarranty bool
	Length      *int
	Unit        *string
	Type        *string
	Description *string
}

// Shipping описывает условия доставки продукта.
type Shipping struct {
	IsFree                   bool
	EstimatedDeliveryTime    map[string]any
	AvailableShippingMethods []ShippingMethod
}

// ShippingMethod описывает один способ доставки.
type ShippingMethod struct {
	ID                    string
	Name                  string
	Cost                  float64
	EstimatedDeliveryTime map[string]any
}
