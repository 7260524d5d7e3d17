package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review описывает отзыв пользователя о продукте.
type Review struct {
	ID                 uuid.UUID
	ProductID          uuid.UUID
	UserID             string
	UserName           string
	Rating             int
	Title              *string
	Comment            string
	IsVerifiedPurchase bool
	Likes              int
	Attributes         []ReviewAttribute
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// ReviewAttribute описывает оценку отдельного аспекта продукта в отзыве.
type ReviewAttribute struct {
	Name   string
	Rating int
}

// Rating агрегирует отзывы продукта в среднюю оценку и распределение.
type Rating struct {
	Average      float64
	Count        int
	Distribution map[int]int // Оценка -> количество отзывов
}

// NewRating вычисляет агрегированную оценку по списку отзывов.
// Для пустого списка возвращает nil.
func NewRating(reviews []Review) *Rating {
	if len(reviews) == 0 {
		return nil
	}

	distribution := make(map[int]int, 5)
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		distribution[r.Rating]++
	}

	return &Rating{
		Average:      float64(sum) / float64(len(reviews)),
		Count:        len(reviews),
		Distribution: distribution,
	}
}
