package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Param		limit	query		int	false	"Размер страницы (по умолчанию 100, максимум 1000)"
//	@Param		offset	query		int	false	"Смещение страницы"
//	@Success	200		{object}	usecase.ListCategoriesRes
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 100
		maxLimit     = 1000
	)

	limit, offset, err := parseLimitOffset(r, defaultLimit, maxLimit)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.List(r.Context(), limit, offset)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getCategoryByID
//
//	@Summary	Категория по идентификатору
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"UUID категории"
//	@Success	200	{object}	usecase.CategoryRes
//	@Failure	404	{object}	ErrorResponse	"Категория не найдена"
//	@Router		/categories/{id} [get]
func (c *CategoryHandler) getCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		request	body		usecase.CreateCategoryReq	true	"Категория"
//	@Success	201		{object}	usecase.CategoryRes
//	@Failure	404		{object}	ErrorResponse	"Родительская категория не найдена"
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateCategoryReq
	if err := decodeJSONBody(r, &req); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.Create(r.Context(), &req)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}

// updateCategory
//
//	@Summary	Обновление категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"UUID категории"
//	@Param		request	body		usecase.UpdateCategoryReq	true	"Изменяемые поля"
//	@Success	200		{object}	usecase.CategoryRes
//	@Failure	404		{object}	ErrorResponse	"Категория не найдена"
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/categories/{id} [put]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	var req usecase.UpdateCategoryReq
	if err := decodeJSONBody(r, &req); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.Update(r.Context(), id, &req)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Дочерние категории не удаляются, их parent_id обнуляется
//	@Tags			categories
//	@Param			id	path	string	true	"UUID категории"
//	@Success		204	"Категория удалена"
//	@Failure		404	{object}	ErrorResponse	"Категория не найдена"
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := c.categoryUsecase.Delete(r.Context(), id); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
