package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type BrandHandler struct {
	brandUsecase usecase.BrandUC
	logger       logger.Logger
}

func NewBrandHandler(brandUsecase usecase.BrandUC, logger logger.Logger) *BrandHandler {
	return &BrandHandler{brandUsecase: brandUsecase, logger: logger}
}

// listBrands
//
//	@Summary	Список брендов
//	@Tags		brands
//	@Produce	json
//	@Param		limit	query		int	false	"Размер страницы (по умолчанию 10, максимум 100)"
//	@Param		offset	query		int	false	"Смещение страницы"
//	@Success	200		{object}	usecase.ListBrandsRes
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/brands [get]
func (b *BrandHandler) listBrands(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit, offset, err := parseLimitOffset(r, defaultLimit, maxLimit)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := b.brandUsecase.List(r.Context(), limit, offset)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getBrandByID
//
//	@Summary	Бренд по идентификатору
//	@Tags		brands
//	@Produce	json
//	@Param		id	path		string	true	"UUID бренда"
//	@Success	200	{object}	usecase.BrandRes
//	@Failure	404	{object}	ErrorResponse	"Бренд не найден"
//	@Router		/brands/{id} [get]
func (b *BrandHandler) getBrandByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := b.brandUsecase.GetByID(r.Context(), id)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getBrandByName
//
//	@Summary	Бренд по имени
//	@Tags		brands
//	@Produce	json
//	@Param		name	path		string	true	"Имя бренда"
//	@Success	200		{object}	usecase.BrandRes
//	@Failure	404		{object}	ErrorResponse	"Бренд не найден"
//	@Router		/brands/name/{name} [get]
func (b *BrandHandler) getBrandByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	res, err := b.brandUsecase.GetByName(r.Context(), name)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// createBrand
//
//	@Summary	Создание бренда
//	@Tags		brands
//	@Accept		json
//	@Produce	json
//	@Param		request	body		usecase.CreateBrandReq	true	"Бренд"
//	@Success	201		{object}	usecase.BrandRes
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/brands [post]
func (b *BrandHandler) createBrand(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateBrandReq
	if err := decodeJSONBody(r, &req); err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := b.brandUsecase.Create(r.Context(), &req)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}

// updateBrand
//
//	@Summary	Обновление бренда
//	@Tags		brands
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"UUID бренда"
//	@Param		request	body		usecase.UpdateBrandReq	true	"Изменяемые поля"
//	@Success	200		{object}	usecase.BrandRes
//	@Failure	404		{object}	ErrorResponse	"Бренд не найден"
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/brands/{id} [put]
func (b *BrandHandler) updateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	var req usecase.UpdateBrandReq
	if err := decodeJSONBody(r, &req); err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := b.brandUsecase.Update(r.Context(), id, &req)
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// deleteBrand
//
//	@Summary	Удаление бренда
//	@Tags		brands
//	@Param		id	path	string	true	"UUID бренда"
//	@Success	204	"Бренд удалён"
//	@Failure	404	{object}	ErrorResponse	"Бренд не найден"
//	@Router		/brands/{id} [delete]
func (b *BrandHandler) deleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := b.brandUsecase.Delete(r.Context(), id); err != nil {
		b.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
