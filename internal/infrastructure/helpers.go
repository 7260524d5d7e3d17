package infrastructure

import "github.com/DRSN-tech/catalog-backend/pkg/e"

// mimeExtensions перечисляет поддерживаемые MIME-типы изображений.
var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Для неподдерживаемого типа возвращает e.ErrUnsupportedMediaType.
func GetExtensionFromMIME(mime string) (string, error) {
	ext, ok := mimeExtensions[mime]
	if !ok {
		return "bin", e.ErrUnsupportedMediaType
	}

	return ext, nil
}
