package minio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/infrastructure"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/jitter"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

// MinioInfrastructure управляет загрузкой и очисткой изображений в MinIO.
type MinioInfrastructure struct {
	imageRepo         usecase.ImageRepository
	cfg               *cfg.MinIOCfg
	logger            logger.Logger
	shutdownCtx       context.Context
	wg                sync.WaitGroup
	uploadImagesLimit int
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:         imageRepo,
		cfg:               cfg,
		logger:            logger,
		shutdownCtx:       shutdownCtx,
		wg:                sync.WaitGroup{},
		uploadImagesLimit: cfg.UploadImagesLimit,
	}
}

// uploadedImage — результат одной загрузки с позицией исходного файла,
// чтобы порядок изображений в ответе совпадал с порядком в запросе.
type uploadedImage struct {
	idx int
	key string
	url string
}

// UploadImages загружает изображения продукта в MinIO параллельно с ограничением одновременных операций.
// В случае ошибки отменяет остальные загрузки и запускает очистку уже загруженных файлов.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadProductImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "MinioInfrastructure.UploadImages"
	// Отмена остальных загрузок при первой ошибке
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan uploadedImage, len(req.Images))
	errCh := make(chan error, len(req.Images))
	sem := make(chan struct{}, m.uploadImagesLimit)

	var uploadWg sync.WaitGroup
	for idx, image := range req.Images {
		uploadWg.Add(1)
		go func() {
			defer uploadWg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if _, err := infrastructure.GetExtensionFromMIME(image.MimeType); err != nil {
				errCh <- fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)
				return
			}

			name := strings.TrimSuffix(image.Name, filepath.Ext(image.Name))
			obj, err := m.imageRepo.Upload(ctx, req.ProductID, domain.NewImageUpload(name, image.Data, image.MimeType))
			if err != nil {
				errCh <- fmt.Errorf("upload %s failed: %w", image.Name, err)
				return
			}

			resCh <- uploadedImage{idx: idx, key: obj.ObjectKey, url: m.publicURL(obj)}
		}()
	}

	go func() {
		uploadWg.Wait()
		close(errCh)
		close(resCh)
	}()

	keys := make([]string, len(req.Images))
	urls := make([]string, len(req.Images))
	done := false
	defer func() {
		if !done {
			if uploaded := compactKeys(keys); len(uploaded) > 0 {
				m.wg.Add(1)
				go m.cleanupUploadedKeys(uploaded)
			}
		}
	}()

	for completed := 0; completed < len(req.Images); {
		select {
		case res, ok := <-resCh:
			if ok {
				keys[res.idx] = res.key
				urls[res.idx] = res.url
				completed++
			}
		case err, ok := <-errCh:
			if ok {
				cancel()
				return nil, e.Wrap(op, err)
			}
		case <-ctx.Done():
			cancel()
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	done = true
	return usecase.NewUploadImagesRes(keys, urls), nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done() // сигнализируем завершение компенсации
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	// Создаём контекст с таймаутом на основе shutdownCtx
	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	const maxAttempts = 3
	for _, key := range keys {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := m.imageRepo.Delete(ctx, key); err == nil {
				break // Успешно удалено
			}

			// Проверяем, не отменён ли контекст
			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < maxAttempts-1 {
				select {
				case <-time.After(jitter.Backoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// publicURL собирает внешний URL объекта из базового адреса хранилища.
func (m *MinioInfrastructure) publicURL(obj *domain.UploadedObject) string {
	return fmt.Sprintf("%s/%s/%s", m.cfg.PublicBaseURL, obj.Bucket, obj.ObjectKey)
}

// compactKeys отбрасывает пустые позиции незавершённых загрузок.
func compactKeys(keys []string) []string {
	uploaded := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			uploaded = append(uploaded, k)
		}
	}

	return uploaded
}
