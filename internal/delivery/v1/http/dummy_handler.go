package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// DummyHandler обслуживает учебные ручки, пережившие прототипирование API.
type DummyHandler struct {
	dummyUsecase usecase.DummyUC
	logger       logger.Logger
}

func NewDummyHandler(dummyUsecase usecase.DummyUC, logger logger.Logger) *DummyHandler {
	return &DummyHandler{dummyUsecase: dummyUsecase, logger: logger}
}

// listDummies
//
//	@Summary	Список dummy-записей
//	@Tags		dummy
//	@Produce	json
//	@Param		limit	query		int	false	"Размер страницы (по умолчанию 10, максимум 100)"
//	@Param		offset	query		int	false	"Смещение страницы"
//	@Success	200		{object}	usecase.ListDummiesRes
//	@Router		/dummy [get]
func (d *DummyHandler) listDummies(w http.ResponseWriter, r *http.Request) {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit, offset, err := parseLimitOffset(r, defaultLimit, maxLimit)
	if err != nil {
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := d.dummyUsecase.List(r.Context(), limit, offset)
	if err != nil {
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// searchDummies
//
//	@Summary	Поиск dummy-записей по точному имени
//	@Tags		dummy
//	@Produce	json
//	@Param		name	query		string	true	"Имя записи"
//	@Success	200		{array}		usecase.DummyRes
//	@Failure	422		{object}	ErrorResponse	"Имя не задано"
//	@Router		/dummy/search [get]
func (d *DummyHandler) searchDummies(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		err := e.ErrNameRequired
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := d.dummyUsecase.SearchByName(r.Context(), name)
	if err != nil {
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getDummyByID
//
//	@Summary	Dummy-запись по идентификатору
//	@Tags		dummy
//	@Produce	json
//	@Param		id	path		int	true	"Числовой идентификатор"
//	@Success	200	{object}	usecase.DummyRes
//	@Failure	404	{object}	ErrorResponse	"Запись не найдена"
//	@Router		/dummy/{id} [get]
func (d *DummyHandler) getDummyByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		err = fmt.Errorf("%w %q", e.ErrInvalidID, raw)
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := d.dummyUsecase.GetByID(r.Context(), id)
	if err != nil {
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// createDummy
//
//	@Summary	Создание dummy-записи
//	@Tags		dummy
//	@Accept		json
//	@Produce	json
//	@Param		request	body		usecase.CreateDummyReq	true	"Запись"
//	@Success	201		{object}	usecase.DummyRes
//	@Failure	422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router		/dummy [post]
func (d *DummyHandler) createDummy(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateDummyReq
	if err := decodeJSONBody(r, &req); err != nil {
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := d.dummyUsecase.Create(r.Context(), &req)
	if err != nil {
		d.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}
