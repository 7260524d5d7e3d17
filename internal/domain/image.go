package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image описывает изображение продукта либо его варианта.
// Порядок отображения задаётся полем Order, равные значения
// разрешаются порядком вставки.
type Image struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	URL       string
	Alt       *string
	IsMain    bool
	Order     int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewImage(productID uuid.UUID, url string) *Image {
	return &Image{
		ProductID: productID,
		URL:       url,
	}
}
