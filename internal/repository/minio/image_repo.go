package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/slug"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// Суффикс ключа делает имена уникальными при повторной загрузке одного файла.
const keySuffixLen = 8

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageRepo реализует репозиторий изображений поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает изображение в MinIO и возвращает бакет с ключом объекта.
// Ключи группируются по продукту: <product_id>/<имя>-<суффикс>.<расширение>.
func (i *ImageRepo) Upload(ctx context.Context, productID uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error) {
	reader := bytes.NewReader(upload.Bytes)
	key := buildObjectKey(productID, upload)

	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, key, reader, upload.Size, minio.PutObjectOptions{
		ContentType: upload.MimeType,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &domain.UploadedObject{
		Bucket:    i.cfg.BucketName,
		ObjectKey: info.Key,
	}, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func buildObjectKey(productID uuid.UUID, upload *domain.ImageUpload) string {
	name := slug.Make(upload.Name)
	if name == "" {
		name = "image"
	}

	ext, ok := mimeExtensions[upload.MimeType]
	if !ok {
		ext = ".bin"
	}

	return fmt.Sprintf("%s/%s-%s%s", productID, name, uuid.NewString()[:keySuffixLen], ext)
}
