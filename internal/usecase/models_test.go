package usecase

import (
	"strings"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductResEmptyCollections(t *testing.T) {
	product := domain.NewProduct("Bare", "bare", "", "BARE-1", domain.NewMoneyFromFloat(1, "USD"))
	product.ID = uuid.New()

	res := NewProductRes(product)

	// Пустые коллекции сериализуются как [], а не null.
	require.NotNil(t, res.Tags)
	require.NotNil(t, res.Images)
	require.NotNil(t, res.Attributes)
	require.NotNil(t, res.Categories)
	assert.Empty(t, res.Tags)
	assert.Empty(t, res.Images)
	assert.Empty(t, res.Attributes)
	assert.Empty(t, res.Categories)

	assert.Nil(t, res.Variants)
	assert.Nil(t, res.ConfigOptions)
	assert.Nil(t, res.Reviews)
	assert.Nil(t, res.Rating)
}

func TestNewImageResSynthesizesMissingID(t *testing.T) {
	res := NewImageRes(domain.Image{URL: "https://cdn.example.com/a.webp"})

	require.NotEmpty(t, res.ID)
	_, err := uuid.Parse(res.ID)
	assert.NoError(t, err)
}

func TestNewImageResKeepsAssignedID(t *testing.T) {
	id := uuid.New()

	res := NewImageRes(domain.Image{ID: id, URL: "https://cdn.example.com/a.webp"})

	assert.Equal(t, id.String(), res.ID)
}

func TestNewAttributeResSynthesizesPositionalID(t *testing.T) {
	res := NewAttributeRes(domain.Attribute{Name: "Color", Value: "black", DisplayValue: "Чёрный"}, 2)

	assert.True(t, strings.HasPrefix(res.ID, "attr-2-"), res.ID)
	assert.Len(t, res.ID, len("attr-2-")+8)
}

func TestNewAttributeResKeepsAssignedID(t *testing.T) {
	res := NewAttributeRes(domain.Attribute{ID: "attr-0-a1b2c3d4", Name: "Color"}, 5)

	assert.Equal(t, "attr-0-a1b2c3d4", res.ID)
}

func TestNewVariantResPromotesFirstImage(t *testing.T) {
	variant := domain.Variant{
		ID:    uuid.New(),
		SKU:   "GM-100-BLK",
		Name:  "Black",
		Price: domain.NewMoneyFromFloat(49.99, "USD"),
		Images: []domain.Image{
			{URL: "https://cdn.example.com/main.webp"},
			{URL: "https://cdn.example.com/side.webp"},
		},
	}

	res := NewVariantRes(variant)

	require.NotNil(t, res.Image)
	assert.Equal(t, "https://cdn.example.com/main.webp", *res.Image)
	assert.Len(t, res.Images, 2)
	require.NotNil(t, res.Attributes)
	assert.Empty(t, res.Attributes)
}

func TestNewRatingResStringifiesDistributionKeys(t *testing.T) {
	reviews := []domain.Review{{Rating: 5}, {Rating: 4}, {Rating: 5}}

	res := NewRatingRes(domain.NewRating(reviews))

	require.NotNil(t, res)
	assert.Equal(t, 3, res.Count)
	assert.InDelta(t, 14.0/3.0, res.Average, 1e-9)
	assert.Equal(t, map[string]int{"4": 1, "5": 2}, res.Distribution)
}

func TestNewProductResAggregatesReviews(t *testing.T) {
	product := domainProduct(uuid.New())
	product.Reviews = []domain.Review{
		{ID: uuid.New(), UserID: "u1", UserName: "Ivan", Rating: 5, Comment: "Отличная мышь"},
		{ID: uuid.New(), UserID: "u2", UserName: "Olga", Rating: 3, Comment: "Норм"},
	}

	res := NewProductRes(product)

	require.Len(t, res.Reviews, 2)
	require.NotNil(t, res.Rating)
	assert.Equal(t, 2, res.Rating.Count)
	assert.InDelta(t, 4.0, res.Rating.Average, 1e-9)
}
