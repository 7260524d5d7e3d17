package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConfigOption описывает настраиваемую опцию продукта,
// например цвет или объём памяти, вместе с допустимыми значениями.
type ConfigOption struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Values    []ConfigOptionValue
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ConfigOptionValue описывает одно значение опции конфигурации.
type ConfigOptionValue struct {
	ID          string
	Value       string
	IsAvailable bool
	IsSelected  bool
	Image       *string
}

func NewConfigOption(productID uuid.UUID, name string, values []ConfigOptionValue) *ConfigOption {
	return &ConfigOption{
		ProductID: productID,
		Name:      name,
		Values:    values,
	}
}
