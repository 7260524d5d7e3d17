package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrBrandNotFound    = fmt.Errorf("brand not found")
	ErrDummyNotFound    = fmt.Errorf("dummy not found")

	// 422 Unprocessable Entity
	ErrValidation           = fmt.Errorf("validation failed")
	ErrNameRequired         = fmt.Errorf("name is required")
	ErrInvalidPrice         = fmt.Errorf("price must be a non-negative number")
	ErrInvalidCurrency      = fmt.Errorf("currency must be a 3-letter code")
	ErrInvalidBody          = fmt.Errorf("invalid request body")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrNegativeStock        = fmt.Errorf("stock must be non-negative")
	ErrMessageRequired      = fmt.Errorf("message is required")
	ErrDuplicateSKU         = fmt.Errorf("sku already exists")
	ErrDuplicateSlug        = fmt.Errorf("slug already exists")
	ErrDuplicateBrandName   = fmt.Errorf("brand name already exists")
	ErrSlugExhausted        = fmt.Errorf("could not generate a unique slug")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 400 Bad Request (multipart загрузка изображений)
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data request")
	ErrNoImages          = fmt.Errorf("no images provided")
	ErrTooManyImages     = fmt.Errorf("too many images")
	ErrFileTooLarge      = fmt.Errorf("file too large")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// EntityNotFoundError хранит вид и идентификатор отсутствующей сущности,
// чтобы ответ мог назвать её явно. Через Unwrap сохраняется сентинел
// для проверок errors.Is.
type EntityNotFoundError struct {
	Entity string
	ID     string
	err    error
}

// NewEntityNotFound создаёт ошибку отсутствия сущности поверх сентинела.
func NewEntityNotFound(sentinel error, entity, id string) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, ID: id, err: sentinel}
}

func (n *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", n.Entity, n.ID)
}

func (n *EntityNotFoundError) Unwrap() error {
	return n.err
}

// Invalid оборачивает ErrValidation с пояснением причины.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
