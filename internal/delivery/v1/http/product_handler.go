package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает страницу каталога с фильтрами, сортировкой и пагинацией
//	@Tags			products
//	@Produce		json
//	@Param			category_id		query		string	false	"Фильтр по категории (UUID)"
//	@Param			brand_id		query		string	false	"Фильтр по бренду (UUID)"
//	@Param			price_min		query		number	false	"Нижняя граница цены"
//	@Param			price_max		query		number	false	"Верхняя граница цены"
//	@Param			search			query		string	false	"Подстрока в названии, описании или SKU"
//	@Param			tags			query		[]string	false	"Теги (все должны присутствовать)"
//	@Param			is_available	query		bool	false	"Только доступные"
//	@Param			is_new			query		bool	false	"Только новинки"
//	@Param			condition		query		string	false	"Состояние товара"
//	@Param			sort_by			query		string	false	"Поле сортировки (name, price, created_at, updated_at, stock)"
//	@Param			sort_order		query		string	false	"asc или desc"
//	@Param			limit			query		int		false	"Размер страницы (по умолчанию 100, максимум 1000)"
//	@Param			offset			query		int		false	"Смещение страницы"
//	@Success		200	{object}	usecase.ListProductsRes
//	@Failure		422	{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.List(r.Context(), filter)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getProductByID
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"UUID товара"
//	@Success	200	{object}	usecase.ProductRes
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Failure	422	{object}	ErrorResponse	"Некорректный идентификатор"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getProductBySKU
//
//	@Summary	Товар по SKU
//	@Tags		products
//	@Produce	json
//	@Param		sku	path		string	true	"SKU товара"
//	@Success	200	{object}	usecase.ProductRes
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/sku/{sku} [get]
func (p *ProductHandler) getProductBySKU(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	res, err := p.productUsecase.GetBySKU(r.Context(), sku)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает товар вместе с вложенными коллекциями и возвращает агрегат
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usecase.CreateProductReq	true	"Товар"
//	@Success		201		{object}	usecase.ProductRes
//	@Failure		404		{object}	ErrorResponse	"Связанная сущность не найдена"
//	@Failure		422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateProductReq
	if err := decodeJSONBody(r, &req); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.Create(r.Context(), &req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Частичное обновление; присланная коллекция заменяет существующую целиком
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"UUID товара"
//	@Param			request	body		usecase.UpdateProductReq	true	"Изменяемые поля"
//	@Success		200		{object}	usecase.ProductRes
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Failure		422		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	var req usecase.UpdateProductReq
	if err := decodeJSONBody(r, &req); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.Update(r.Context(), id, &req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	string	true	"UUID товара"
//	@Success	204	"Товар удалён"
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.Delete(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadProductImages
//
//	@Summary		Загрузка изображений товара
//	@Description	Принимает multipart/form-data, грузит файлы в S3 и привязывает их к товару
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"UUID товара"
//	@Param			images	formData	file	true	"Файлы изображений"
//	@Success		201		{object}	usecase.ProductRes
//	@Failure		400		{object}	ErrorResponse	"Некорректный multipart-запрос"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id}/images [post]
func (p *ProductHandler) uploadProductImages(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	id, err := parseUUIDParam(r, "id")
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.UploadImages(r.Context(), usecase.NewUploadProductImagesReq(id, images))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, res)
}
