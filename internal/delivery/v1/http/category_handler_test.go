package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryFixture(id uuid.UUID) *usecase.CategoryRes {
	return &usecase.CategoryRes{ID: id, Name: "Ноутбуки", Slug: "noutbuki"}
}

func TestListCategories(t *testing.T) {
	var gotLimit, gotOffset int
	cat := &fakeCategoryUC{
		listFn: func(_ context.Context, limit, offset int) (*usecase.ListCategoriesRes, error) {
			gotLimit, gotOffset = limit, offset
			items := []*usecase.CategoryRes{categoryFixture(uuid.New())}
			return &usecase.ListCategoriesRes{Items: items, Total: 1, Limit: limit, Offset: offset}, nil
		},
	}
	router := newTestRouter(nil, cat, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/categories", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, gotLimit)
	assert.Equal(t, 0, gotOffset)

	var res usecase.ListCategoriesRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, int64(1), res.Total)
	assert.Len(t, res.Items, 1)
}

func TestGetCategoryByIDNotFound(t *testing.T) {
	id := uuid.New()
	cat := &fakeCategoryUC{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*usecase.CategoryRes, error) {
			return nil, e.Wrap("CategoryUC.GetByID", e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", id.String()))
		},
	}
	router := newTestRouter(nil, cat, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/categories/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category "+id.String()+" not found", decodeDetail(t, rec))
}

func TestCreateCategory(t *testing.T) {
	parentID := uuid.New()
	var got *usecase.CreateCategoryReq
	cat := &fakeCategoryUC{
		createFn: func(_ context.Context, req *usecase.CreateCategoryReq) (*usecase.CategoryRes, error) {
			got = req
			return categoryFixture(uuid.New()), nil
		},
	}
	router := newTestRouter(nil, cat, nil, nil)

	body := strings.NewReader(`{"name": "Ноутбуки", "parentId": "` + parentID.String() + `"}`)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/categories", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Ноутбуки", got.Name)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parentID, *got.ParentID)
}

func TestCreateCategoryValidationError(t *testing.T) {
	cat := &fakeCategoryUC{
		createFn: func(_ context.Context, _ *usecase.CreateCategoryReq) (*usecase.CategoryRes, error) {
			return nil, e.Wrap("CategoryUC.Create", e.Invalid("name is required"))
		},
	}
	router := newTestRouter(nil, cat, nil, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/categories", strings.NewReader(`{}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation failed: name is required", decodeDetail(t, rec))
}

func TestUpdateCategory(t *testing.T) {
	id := uuid.New()
	cat := &fakeCategoryUC{
		updateFn: func(_ context.Context, gotID uuid.UUID, req *usecase.UpdateCategoryReq) (*usecase.CategoryRes, error) {
			assert.Equal(t, id, gotID)
			require.NotNil(t, req.Name)
			assert.Equal(t, "Техника", *req.Name)
			return categoryFixture(id), nil
		},
	}
	router := newTestRouter(nil, cat, nil, nil)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/categories/"+id.String(),
		strings.NewReader(`{"name": "Техника"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	id := uuid.New()
	cat := &fakeCategoryUC{
		deleteFn: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}
	router := newTestRouter(nil, cat, nil, nil)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/categories/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
