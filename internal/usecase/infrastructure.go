package usecase

import "context"

// EventPublisher публикует доменные события. Публикация не должна
// приводить к отказу бизнес-операции: ошибки логируются вызывающей стороной.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// ImagesInfra загружает изображения продукта в объектное хранилище.
type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadProductImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

// UploadImagesRes — результат загрузки изображений (ключи и публичные URL).
type UploadImagesRes struct {
	ImagesKeys []string
	ImageURLs  []string
}

func NewUploadImagesRes(imagesKeys, imageURLs []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
		ImageURLs:  imageURLs,
	}
}
