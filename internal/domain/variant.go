package domain

import (
	"time"

	"github.com/google/uuid"
)

// Variant описывает вариант продукта: отдельный SKU со своей ценой,
// остатком и набором атрибутов. Вариант принадлежит ровно одному продукту.
type Variant struct {
	ID              uuid.UUID
	ParentProductID uuid.UUID
	Name            string
	SKU             string
	Price           Money
	CompareAtPrice  *Money
	Stock           int
	IsAvailable     bool
	IsSelected      bool
	Attributes      map[string]any
	Images          []Image
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func NewVariant(parentProductID uuid.UUID, name, sku string, price Money) *Variant {
	return &Variant{
		ParentProductID: parentProductID,
		Name:            name,
		SKU:             sku,
		Price:           price,
		IsAvailable:     true,
	}
}
