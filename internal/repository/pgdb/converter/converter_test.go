package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverterRoundTrip(t *testing.T) {
	length := 12
	unit := "months"
	group := "display"
	now := time.Now().UTC().Truncate(time.Second)
	compareAt := domain.NewMoney(decimal.NewFromInt(1299), "USD")

	product := &domain.Product{
		ID:             uuid.New(),
		Name:           "Ultra Laptop",
		Slug:           "ultra-laptop",
		Description:    "Thin and light",
		Price:          domain.NewMoney(decimal.NewFromInt(999), "USD"),
		CompareAtPrice: &compareAt,
		SKU:            "UL-001",
		Status:         domain.StatusActive,
		Stock:          5,
		IsAvailable:    true,
		Condition:      domain.ConditionNew,
		Tags:           []string{"gaming", "oled"},
		Attributes: []domain.Attribute{
			{ID: "attr-0-ab12cd34", Name: "panel", Value: "OLED", DisplayValue: "OLED", IsHighlighted: true, GroupName: &group},
		},
		HighlightedFeatures: []string{"120Hz"},
		Warranty:            &domain.Warranty{HasWarranty: true, Length: &length, Unit: &unit},
		Shipping: &domain.Shipping{
			IsFree: true,
			AvailableShippingMethods: []domain.ShippingMethod{
				{ID: "std", Name: "Standard", Cost: 0},
			},
		},
		CreatedAt: now,
	}

	conv := NewProductConverter()

	model, err := conv.ToModel(product)
	require.NoError(t, err)

	// В колонках лежит snake_case, как и в остальной схеме.
	var warranty map[string]any
	require.NoError(t, json.Unmarshal(model.Warranty, &warranty))
	assert.Contains(t, warranty, "has_warranty")
	var attrs []map[string]any
	require.NoError(t, json.Unmarshal(model.Attributes, &attrs))
	require.Len(t, attrs, 1)
	assert.Contains(t, attrs[0], "display_value")
	assert.Contains(t, attrs[0], "group_name")

	back, err := conv.ToEntity(model)
	require.NoError(t, err)

	assert.Equal(t, product.ID, back.ID)
	assert.Equal(t, product.Tags, back.Tags)
	assert.Equal(t, product.Attributes, back.Attributes)
	assert.Equal(t, product.HighlightedFeatures, back.HighlightedFeatures)
	assert.Equal(t, product.Warranty, back.Warranty)
	require.NotNil(t, back.Shipping)
	assert.Equal(t, product.Shipping.AvailableShippingMethods, back.Shipping.AvailableShippingMethods)
	require.NotNil(t, back.CompareAtPrice)
	assert.True(t, compareAt.Amount.Equal(back.CompareAtPrice.Amount))
	assert.Equal(t, "USD", back.CompareAtPrice.Currency)
}

func TestProductConverterEmptyCollections(t *testing.T) {
	product := &domain.Product{
		ID:    uuid.New(),
		Name:  "Bare",
		Slug:  "bare",
		SKU:   "B-1",
		Price: domain.NewMoney(decimal.NewFromInt(1), "USD"),
	}

	conv := NewProductConverter()

	model, err := conv.ToModel(product)
	require.NoError(t, err)

	// Пустые коллекции сохраняются как пустые jsonb-массивы, а не NULL.
	assert.Equal(t, []byte("[]"), model.Tags)
	assert.Equal(t, []byte("[]"), model.Attributes)
	assert.Equal(t, []byte("[]"), model.HighlightedFeatures)
	assert.Nil(t, model.Warranty)
	assert.Nil(t, model.Shipping)

	back, err := conv.ToEntity(model)
	require.NoError(t, err)
	assert.Nil(t, back.Warranty)
	assert.Nil(t, back.Shipping)
	assert.Empty(t, back.Tags)
}

func TestVariantConverterAttributes(t *testing.T) {
	variant := &domain.Variant{
		ID:              uuid.New(),
		ParentProductID: uuid.New(),
		Name:            "Red / 256GB",
		SKU:             "UL-001-R256",
		Price:           domain.NewMoney(decimal.NewFromInt(1099), "USD"),
		Attributes:      map[string]any{"color": "red", "storage": "256GB"},
	}

	conv := NewVariantConverter()

	model, err := conv.ToModel(variant)
	require.NoError(t, err)

	back, err := conv.ToEntity(model)
	require.NoError(t, err)

	assert.Equal(t, variant.Attributes, back.Attributes)
	assert.True(t, variant.Price.Amount.Equal(back.Price.Amount))
}
