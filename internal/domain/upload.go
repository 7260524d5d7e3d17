package domain

// ImageUpload описывает файл изображения, принятый из multipart-формы
// и предназначенный для загрузки в S3.
type ImageUpload struct {
	Name     string // Имя исходного файла без расширения
	Bytes    []byte
	MimeType string
	Size     int64
}

func NewImageUpload(name string, data []byte, mimeType string) *ImageUpload {
	return &ImageUpload{
		Name:     name,
		Bytes:    data,
		MimeType: mimeType,
		Size:     int64(len(data)),
	}
}

// UploadedObject описывает объект, сохранённый в S3.
type UploadedObject struct {
	Bucket    string
	ObjectKey string
}
