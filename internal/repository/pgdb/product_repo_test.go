package pgdb

import (
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProductListQuery_NoFilters(t *testing.T) {
	filter := &usecase.ProductFilter{Limit: 100, Offset: 0}

	listSQL, countSQL, listArgs, countArgs := buildProductListQuery(filter)

	assert.NotContains(t, listSQL, "WHERE")
	assert.NotContains(t, countSQL, "WHERE")
	assert.Contains(t, listSQL, "ORDER BY p.created_at DESC, p.id ASC")
	assert.Contains(t, listSQL, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{100, 0}, listArgs)
	assert.Empty(t, countArgs)
}

func TestBuildProductListQuery_AllFilters(t *testing.T) {
	categoryID := uuid.New()
	brandID := uuid.New()
	priceMin := decimal.NewFromInt(10)
	priceMax := decimal.NewFromInt(500)
	search := "laptop"
	isAvailable := true
	isNew := false
	condition := "used"

	filter := &usecase.ProductFilter{
		CategoryID:  &categoryID,
		BrandID:     &brandID,
		PriceMin:    &priceMin,
		PriceMax:    &priceMax,
		Search:      &search,
		Tags:        []string{"gaming", "rgb"},
		IsAvailable: &isAvailable,
		IsNew:       &isNew,
		Condition:   &condition,
		SortBy:      "price",
		SortOrder:   "asc",
		Limit:       20,
		Offset:      40,
	}

	listSQL, countSQL, listArgs, countArgs := buildProductListQuery(filter)

	assert.Contains(t, listSQL, "pc.category_id = $1")
	assert.Contains(t, listSQL, "p.brand_id = $2")
	assert.Contains(t, listSQL, "p.price_amount >= $3")
	assert.Contains(t, listSQL, "p.price_amount <= $4")
	assert.Contains(t, listSQL, "(p.name ILIKE $5 OR p.description ILIKE $5 OR p.sku ILIKE $5)")
	assert.Contains(t, listSQL, "p.tags @> $6")
	assert.Contains(t, listSQL, "p.tags @> $7")
	assert.Contains(t, listSQL, "p.is_available = $8")
	assert.Contains(t, listSQL, "p.is_new = $9")
	assert.Contains(t, listSQL, "p.condition = $10")
	assert.Contains(t, listSQL, "ORDER BY p.price_amount ASC, p.id ASC")
	assert.Contains(t, listSQL, "LIMIT $11 OFFSET $12")

	// Счётчик строится на тех же условиях, но без пагинации.
	assert.Contains(t, countSQL, "p.condition = $10")
	assert.NotContains(t, countSQL, "LIMIT")

	require.Len(t, listArgs, 12)
	require.Len(t, countArgs, 10)
	assert.Equal(t, listArgs[:10], countArgs)
	assert.Equal(t, "%laptop%", listArgs[4])
	assert.Equal(t, []byte(`["gaming"]`), listArgs[5])
	assert.Equal(t, []byte(`["rgb"]`), listArgs[6])
	assert.Equal(t, 20, listArgs[10])
	assert.Equal(t, 40, listArgs[11])
}

func TestBuildProductListQuery_ConditionsJoinedWithAND(t *testing.T) {
	brandID := uuid.New()
	isNew := true

	filter := &usecase.ProductFilter{
		BrandID: &brandID,
		IsNew:   &isNew,
		Limit:   10,
	}

	listSQL, _, _, _ := buildProductListQuery(filter)

	assert.Contains(t, listSQL, "p.brand_id = $1 AND p.is_new = $2")
}

func TestBuildProductListQuery_UnknownSortFallsBack(t *testing.T) {
	filter := &usecase.ProductFilter{SortBy: "rating", Limit: 10}

	listSQL, _, _, _ := buildProductListQuery(filter)

	assert.Contains(t, listSQL, "ORDER BY p.created_at DESC, p.id ASC")
}

func TestBuildProductListQuery_SortDirection(t *testing.T) {
	cases := []struct {
		name      string
		sortOrder string
		want      string
	}{
		{"default is desc", "", "ORDER BY p.name DESC"},
		{"desc kept", "desc", "ORDER BY p.name DESC"},
		{"asc kept", "asc", "ORDER BY p.name ASC"},
		{"unknown treated as asc", "sideways", "ORDER BY p.name ASC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := &usecase.ProductFilter{SortBy: "name", SortOrder: tc.sortOrder, Limit: 10}

			listSQL, _, _, _ := buildProductListQuery(filter)

			assert.Contains(t, listSQL, tc.want)
		})
	}
}

func TestBuildProductListQuery_EmptySearchSkipped(t *testing.T) {
	search := ""
	filter := &usecase.ProductFilter{Search: &search, Limit: 10}

	listSQL, _, listArgs, _ := buildProductListQuery(filter)

	assert.NotContains(t, listSQL, "ILIKE")
	assert.Equal(t, []any{10, 0}, listArgs)
}

func TestDuplicateErrorMapsConstraints(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"products_slug_key", e.ErrDuplicateSlug},
		{"categories_slug_key", e.ErrDuplicateSlug},
		{"products_sku_key", e.ErrDuplicateSKU},
		{"product_variants_sku_key", e.ErrDuplicateSKU},
		{"brands_name_key", e.ErrDuplicateBrandName},
	}

	for _, tc := range cases {
		err := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: tc.constraint}
		assert.Equal(t, tc.want, duplicateError(err), tc.constraint)
		assert.True(t, postgresDuplicate(err))
	}

	assert.Nil(t, duplicateError(nil))
	assert.Nil(t, duplicateError(assert.AnError))
	assert.Nil(t, duplicateError(&pgconn.PgError{Code: "23503"}))
}
