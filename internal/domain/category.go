package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category описывает категорию продукта.
// Категории образуют дерево через ParentID; корневые категории родителя не имеют.
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	ParentID    *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewCategory(name, slug string) *Category {
	return &Category{
		Name: name,
		Slug: slug,
	}
}
