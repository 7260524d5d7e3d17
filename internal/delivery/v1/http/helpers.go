package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ErrorResponse — тело ошибки API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorResponse(detail string) *ErrorResponse {
	return &ErrorResponse{Detail: detail}
}

// Ошибки multipart-конверта отдаются как 400.
var badRequestErrors = []error{
	e.ErrExpectedMultipart,
	e.ErrNoImages,
	e.ErrTooManyImages,
	e.ErrFileTooLarge,
}

// Ошибки валидации тела, параметров и конфликтов уникальности отдаются как 422.
var unprocessableErrors = []error{
	e.ErrValidation,
	e.ErrNameRequired,
	e.ErrInvalidPrice,
	e.ErrInvalidCurrency,
	e.ErrNegativeStock,
	e.ErrMessageRequired,
	e.ErrInvalidBody,
	e.ErrInvalidID,
	e.ErrDuplicateSKU,
	e.ErrDuplicateSlug,
	e.ErrDuplicateBrandName,
	e.ErrSlugExhausted,
	e.ErrUnsupportedMediaType,
}

// ToHTTPResponse переводит ошибку приложения в статус и detail-сообщение.
// Внутренние префиксы обёрток в ответ не попадают.
func ToHTTPResponse(err error) (int, string) {
	var notFound *e.EntityNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, notFound.Error()
	}

	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, detailFrom(err, sentinel)
		}
	}

	for _, sentinel := range unprocessableErrors {
		if errors.Is(err, sentinel) {
			return http.StatusUnprocessableEntity, detailFrom(err, sentinel)
		}
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

// detailFrom срезает служебные префиксы обёрток, оставляя сообщение
// начиная с текста сентинела.
func detailFrom(err, sentinel error) string {
	msg := err.Error()
	if idx := strings.Index(msg, sentinel.Error()); idx >= 0 {
		return msg[idx:]
	}
	return sentinel.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSONBody разбирает JSON-тело запроса в dst.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %s", e.ErrInvalidBody, err.Error())
	}
	return nil
}

// parseUUIDParam извлекает UUID из параметра пути.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q", e.ErrInvalidID, raw)
	}
	return id, nil
}

// parseLimitOffset читает пагинацию из query-параметров.
// Отсутствующий или нулевой limit заменяется значением по умолчанию,
// превышение максимума срезается до него.
func parseLimitOffset(r *http.Request, defaultLimit, maxLimit int) (int, int, error) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, e.Invalid("limit must be an integer")
		}
		if parsed < 0 {
			return 0, 0, e.Invalid("limit must be non-negative")
		}
		if parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, e.Invalid("offset must be an integer")
		}
		if parsed < 0 {
			return 0, 0, e.Invalid("offset must be non-negative")
		}
		offset = parsed
	}

	return limit, offset, nil
}

// parseProductFilter собирает фильтр списка продуктов из query-параметров.
func parseProductFilter(r *http.Request) (*usecase.ProductFilter, error) {
	const (
		defaultLimit = 100
		maxLimit     = 1000
	)

	query := r.URL.Query()
	filter := &usecase.ProductFilter{}

	var err error
	if filter.CategoryID, err = parseOptionalUUID(query.Get("category_id"), "category_id"); err != nil {
		return nil, err
	}
	if filter.BrandID, err = parseOptionalUUID(query.Get("brand_id"), "brand_id"); err != nil {
		return nil, err
	}
	if filter.PriceMin, err = parseOptionalDecimal(query.Get("price_min"), "price_min"); err != nil {
		return nil, err
	}
	if filter.PriceMax, err = parseOptionalDecimal(query.Get("price_max"), "price_max"); err != nil {
		return nil, err
	}
	if s := query.Get("search"); s != "" {
		filter.Search = &s
	}
	filter.Tags = parseTags(query["tags"])
	if filter.IsAvailable, err = parseOptionalBool(query.Get("is_available"), "is_available"); err != nil {
		return nil, err
	}
	if filter.IsNew, err = parseOptionalBool(query.Get("is_new"), "is_new"); err != nil {
		return nil, err
	}
	if c := query.Get("condition"); c != "" {
		filter.Condition = &c
	}
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	filter.Limit, filter.Offset, err = parseLimitOffset(r, defaultLimit, maxLimit)
	if err != nil {
		return nil, err
	}

	return filter, nil
}

func parseOptionalUUID(raw, name string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, e.Invalid("%s must be a UUID", name)
	}
	return &id, nil
}

func parseOptionalDecimal(raw, name string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, e.Invalid("%s must be a number", name)
	}
	return &d, nil
}

func parseOptionalBool(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, e.Invalid("%s must be a boolean", name)
	}
	return &b, nil
}

// parseTags принимает и повторяющиеся параметры, и перечисление через запятую.
func parseTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
