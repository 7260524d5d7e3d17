package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail string
	}{
		{
			name:       "entity not found names the id",
			err:        e.NewEntityNotFound(e.ErrProductNotFound, "Product", "0b9bfacd-d2d9-4380-8a55-c90943087121"),
			wantCode:   http.StatusNotFound,
			wantDetail: "Product 0b9bfacd-d2d9-4380-8a55-c90943087121 not found",
		},
		{
			name:       "wrapped entity not found",
			err:        e.Wrap("ProductUC.GetByID", e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", "abc")),
			wantCode:   http.StatusNotFound,
			wantDetail: "Category abc not found",
		},
		{
			name:       "multipart envelope error is 400",
			err:        e.ErrExpectedMultipart,
			wantCode:   http.StatusBadRequest,
			wantDetail: "expected multipart/form-data request",
		},
		{
			name:       "too many images is 400",
			err:        e.Wrap("op", e.ErrTooManyImages),
			wantCode:   http.StatusBadRequest,
			wantDetail: "too many images",
		},
		{
			name:       "validation error is 422 without wrap prefix",
			err:        e.Wrap("ProductUC.Create", e.Invalid("price_min must be a number")),
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "validation failed: price_min must be a number",
		},
		{
			name:       "invalid id keeps the raw value",
			err:        fmt.Errorf("%w %q", e.ErrInvalidID, "not-a-uuid"),
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: `invalid id "not-a-uuid"`,
		},
		{
			name:       "duplicate sku is 422",
			err:        e.Wrap("ProductRepo.Create", e.ErrDuplicateSKU),
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "sku already exists",
		},
		{
			name:       "unsupported media type is 422",
			err:        e.ErrUnsupportedMediaType,
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "unsupported media type",
		},
		{
			name:       "unknown error hides details",
			err:        errors.New("pq: connection refused"),
			wantCode:   http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, detail := ToHTTPResponse(tc.err)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantDetail, detail)
		})
	}
}

func TestWriteErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, e.NewEntityNotFound(e.ErrBrandNotFound, "Brand", "b-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail": "Brand b-1 not found"}`, rec.Body.String())
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", query: "", wantLimit: 100, wantOffset: 0},
		{name: "explicit values", query: "limit=25&offset=50", wantLimit: 25, wantOffset: 50},
		{name: "zero limit falls back to default", query: "limit=0", wantLimit: 100, wantOffset: 0},
		{name: "limit above max is clamped", query: "limit=5000", wantLimit: 1000, wantOffset: 0},
		{name: "negative limit rejected", query: "limit=-1", wantErr: true},
		{name: "negative offset rejected", query: "offset=-5", wantErr: true},
		{name: "non-numeric limit rejected", query: "limit=ten", wantErr: true},
		{name: "non-numeric offset rejected", query: "offset=ten", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/products?"+tc.query, nil)

			limit, offset, err := parseLimitOffset(r, 100, 1000)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, e.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, parseTags(nil))
	assert.Equal(t, []string{"new", "sale"}, parseTags([]string{"new", "sale"}))
	assert.Equal(t, []string{"new", "sale"}, parseTags([]string{"new,sale"}))
	assert.Equal(t, []string{"new", "sale", "promo"}, parseTags([]string{"new, sale", "promo"}))
	assert.Nil(t, parseTags([]string{" , ,"}))
}

func TestParseProductFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/products?category_id=7e57d004-2b97-44e7-8f00-63e1e92533ac&price_min=10.50&price_max=99.99"+
			"&search=macbook&tags=new,sale&is_available=true&is_new=false&condition=refurbished"+
			"&sort_by=price&sort_order=asc&limit=20&offset=40", nil)

	filter, err := parseProductFilter(r)
	require.NoError(t, err)

	require.NotNil(t, filter.CategoryID)
	assert.Equal(t, "7e57d004-2b97-44e7-8f00-63e1e92533ac", filter.CategoryID.String())
	assert.Nil(t, filter.BrandID)
	require.NotNil(t, filter.PriceMin)
	assert.Equal(t, "10.5", filter.PriceMin.String())
	require.NotNil(t, filter.PriceMax)
	assert.Equal(t, "99.99", filter.PriceMax.String())
	require.NotNil(t, filter.Search)
	assert.Equal(t, "macbook", *filter.Search)
	assert.Equal(t, []string{"new", "sale"}, filter.Tags)
	require.NotNil(t, filter.IsAvailable)
	assert.True(t, *filter.IsAvailable)
	require.NotNil(t, filter.IsNew)
	assert.False(t, *filter.IsNew)
	require.NotNil(t, filter.Condition)
	assert.Equal(t, "refurbished", *filter.Condition)
	assert.Equal(t, "price", filter.SortBy)
	assert.Equal(t, "asc", filter.SortOrder)
	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 40, filter.Offset)
}

func TestParseProductFilterRejectsBadParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "bad category id", query: "category_id=nope"},
		{name: "bad brand id", query: "brand_id=123"},
		{name: "bad price", query: "price_min=cheap"},
		{name: "bad boolean", query: "is_available=yes-please"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/products?"+tc.query, nil)

			_, err := parseProductFilter(r)

			require.Error(t, err)
			assert.ErrorIs(t, err, e.ErrValidation)
		})
	}
}
