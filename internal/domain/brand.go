package domain

import (
	"time"

	"github.com/google/uuid"
)

// Brand описывает бренд продукта.
type Brand struct {
	ID          uuid.UUID
	Name        string
	Logo        *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewBrand(name string) *Brand {
	return &Brand{
		Name: name,
	}
}
