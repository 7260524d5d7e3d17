package minio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil))
}

// fakeImageRepo потокобезопасен: загрузки идут из нескольких горутин.
type fakeImageRepo struct {
	mu       sync.Mutex
	uploadFn func(ctx context.Context, productID uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error)
	deleted  []string

	current int
	maxSeen int
}

func (f *fakeImageRepo) Upload(ctx context.Context, productID uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error) {
	f.mu.Lock()
	f.current++
	if f.current > f.maxSeen {
		f.maxSeen = f.current
	}
	fn := f.uploadFn
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.current--
		f.mu.Unlock()
	}()

	if fn == nil {
		return &domain.UploadedObject{Bucket: "images", ObjectKey: "products/" + upload.Name}, nil
	}
	return fn(ctx, productID, upload)
}

func (f *fakeImageRepo) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImageRepo) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func newTestInfra(repo *fakeImageRepo, limit int) *MinioInfrastructure {
	return NewMinioInfrastructure(repo, &cfg.MinIOCfg{
		BucketName:        "images",
		PublicBaseURL:     "https://cdn.example.com",
		UploadImagesLimit: limit,
	}, testLogger(), context.Background())
}

func imagesReq(names ...string) *usecase.UploadProductImagesReq {
	images := make([]usecase.ProductImage, 0, len(names))
	for _, name := range names {
		images = append(images, *usecase.NewProductImage([]byte{1, 2, 3}, "image/png", 3, name))
	}
	return usecase.NewUploadProductImagesReq(uuid.New(), images)
}

func TestUploadImagesPreservesRequestOrder(t *testing.T) {
	repo := &fakeImageRepo{}
	// Задержки инвертированы: завершение идёт в обратном порядке.
	delays := map[string]time.Duration{"front": 40 * time.Millisecond, "side": 20 * time.Millisecond, "back": 0}
	repo.uploadFn = func(_ context.Context, _ uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error) {
		time.Sleep(delays[upload.Name])
		return &domain.UploadedObject{Bucket: "images", ObjectKey: "products/" + upload.Name + ".png"}, nil
	}

	infra := newTestInfra(repo, 3)

	res, err := infra.UploadImages(context.Background(), imagesReq("front.png", "side.png", "back.png"))

	require.NoError(t, err)
	assert.Equal(t, []string{"products/front.png", "products/side.png", "products/back.png"}, res.ImagesKeys)
	assert.Equal(t, []string{
		"https://cdn.example.com/images/products/front.png",
		"https://cdn.example.com/images/products/side.png",
		"https://cdn.example.com/images/products/back.png",
	}, res.ImageURLs)
}

func TestUploadImagesHonorsConcurrencyLimit(t *testing.T) {
	repo := &fakeImageRepo{}
	repo.uploadFn = func(_ context.Context, _ uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error) {
		time.Sleep(20 * time.Millisecond)
		return &domain.UploadedObject{Bucket: "images", ObjectKey: "products/" + upload.Name}, nil
	}

	infra := newTestInfra(repo, 2)

	_, err := infra.UploadImages(context.Background(), imagesReq("a.png", "b.png", "c.png", "d.png"))

	require.NoError(t, err)
	assert.LessOrEqual(t, repo.maxSeen, 2)
}

func TestUploadImagesStripsExtension(t *testing.T) {
	repo := &fakeImageRepo{}
	var gotName string
	repo.uploadFn = func(_ context.Context, _ uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error) {
		gotName = upload.Name
		return &domain.UploadedObject{Bucket: "images", ObjectKey: "products/photo"}, nil
	}

	infra := newTestInfra(repo, 1)

	_, err := infra.UploadImages(context.Background(), imagesReq("photo.png"))

	require.NoError(t, err)
	assert.Equal(t, "photo", gotName)
}

func TestUploadImagesRejectsUnsupportedMime(t *testing.T) {
	repo := &fakeImageRepo{}
	infra := newTestInfra(repo, 1)

	req := usecase.NewUploadProductImagesReq(uuid.New(), []usecase.ProductImage{
		*usecase.NewProductImage([]byte{1}, "application/pdf", 1, "doc.pdf"),
	})

	_, err := infra.UploadImages(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}

func TestUploadImagesCleansUpOnPartialFailure(t *testing.T) {
	repo := &fakeImageRepo{}
	repo.uploadFn = func(_ context.Context, _ uuid.UUID, upload *domain.ImageUpload) (*domain.UploadedObject, error) {
		if upload.Name == "bad" {
			// Успешная загрузка дренируется раньше, чем приходит ошибка.
			time.Sleep(50 * time.Millisecond)
			return nil, errors.New("minio: bucket unreachable")
		}
		return &domain.UploadedObject{Bucket: "images", ObjectKey: "products/good.png"}, nil
	}

	infra := newTestInfra(repo, 2)

	_, err := infra.UploadImages(context.Background(), imagesReq("good.png", "bad.png"))

	require.Error(t, err)

	waitCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, infra.WaitForCleanup(waitCtx))

	assert.Equal(t, []string{"products/good.png"}, repo.deletedKeys())
}

func TestCleanupImagesIgnoresEmptyKeys(t *testing.T) {
	repo := &fakeImageRepo{}
	infra := newTestInfra(repo, 1)

	infra.CleanupImages(nil)

	waitCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, infra.WaitForCleanup(waitCtx))
	assert.Empty(t, repo.deletedKeys())
}

func TestCompactKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, compactKeys([]string{"", "a", "", "b"}))
	assert.Empty(t, compactKeys([]string{"", ""}))
}
