package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errFakeNotConfigured = errors.New("fake repository method is not configured")

func ptr[T any](v T) *T { return &v }

func testLogger() logger.Logger {
	return logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil))
}

// fakeTx изображает pgx.Tx, не трогая базу. Репозитории в тестах тоже
// фейковые, поэтому до запросов через транзакцию дело не доходит.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(_ context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, errFakeNotConfigured
}

func (t *fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, errFakeNotConfigured
}

func (t *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errFakeNotConfigured
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// fakeDB раздаёт fakeTx и помнит каждую начатую транзакцию.
type fakeDB struct {
	txs []*fakeTx
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return f.BeginTx(ctx, pgx.TxOptions{})
}

func (f *fakeDB) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeDB) lastTx() *fakeTx {
	if len(f.txs) == 0 {
		return nil
	}
	return f.txs[len(f.txs)-1]
}

type fakeProductRepo struct {
	listFn      func(ctx context.Context, filter *ProductFilter) ([]*domain.Product, int64, error)
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	getBySKUFn  func(ctx context.Context, sku string) (*domain.Product, error)
	createFn    func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	updateFn    func(ctx context.Context, product *domain.Product, fields *UpdateProductReq) (*domain.Product, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) (bool, error)
	addImagesFn func(ctx context.Context, productID uuid.UUID, images []domain.Image) error
}

func (f *fakeProductRepo) List(ctx context.Context, filter *ProductFilter) ([]*domain.Product, int64, error) {
	if f.listFn == nil {
		return nil, 0, errFakeNotConfigured
	}
	return f.listFn(ctx, filter)
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if f.getByIDFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	if f.getBySKUFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.getBySKUFn(ctx, sku)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if f.createFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.createFn(ctx, product)
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product, fields *UpdateProductReq) (*domain.Product, error) {
	if f.updateFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.updateFn(ctx, product, fields)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.deleteFn == nil {
		return false, errFakeNotConfigured
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeProductRepo) AddImages(ctx context.Context, productID uuid.UUID, images []domain.Image) error {
	if f.addImagesFn == nil {
		return errFakeNotConfigured
	}
	return f.addImagesFn(ctx, productID, images)
}

type fakeCategoryRepo struct {
	listFn        func(ctx context.Context, limit, offset int) ([]*domain.Category, int64, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	existingIDsFn func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error)
	createFn      func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	updateFn      func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (f *fakeCategoryRepo) List(ctx context.Context, limit, offset int) ([]*domain.Category, int64, error) {
	if f.listFn == nil {
		return nil, 0, errFakeNotConfigured
	}
	return f.listFn(ctx, limit, offset)
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if f.getByIDFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeCategoryRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if f.existingIDsFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.existingIDsFn(ctx, ids)
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if f.createFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.createFn(ctx, category)
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if f.updateFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.updateFn(ctx, category)
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.deleteFn == nil {
		return false, errFakeNotConfigured
	}
	return f.deleteFn(ctx, id)
}

type fakeBrandRepo struct {
	listFn      func(ctx context.Context, limit, offset int) ([]*domain.Brand, int64, error)
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Brand, error)
	createFn    func(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	updateFn    func(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (f *fakeBrandRepo) List(ctx context.Context, limit, offset int) ([]*domain.Brand, int64, error) {
	if f.listFn == nil {
		return nil, 0, errFakeNotConfigured
	}
	return f.listFn(ctx, limit, offset)
}

func (f *fakeBrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	if f.getByIDFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeBrandRepo) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	if f.getByNameFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.getByNameFn(ctx, name)
}

func (f *fakeBrandRepo) Create(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	if f.createFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.createFn(ctx, brand)
}

func (f *fakeBrandRepo) Update(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	if f.updateFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.updateFn(ctx, brand)
}

func (f *fakeBrandRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.deleteFn == nil {
		return false, errFakeNotConfigured
	}
	return f.deleteFn(ctx, id)
}

type fakeDummyRepo struct {
	listFn         func(ctx context.Context, limit, offset int) ([]*domain.Dummy, int64, error)
	getByIDFn      func(ctx context.Context, id int64) (*domain.Dummy, error)
	searchByNameFn func(ctx context.Context, name string) ([]*domain.Dummy, error)
	createFn       func(ctx context.Context, dummy *domain.Dummy) (*domain.Dummy, error)
}

func (f *fakeDummyRepo) List(ctx context.Context, limit, offset int) ([]*domain.Dummy, int64, error) {
	if f.listFn == nil {
		return nil, 0, errFakeNotConfigured
	}
	return f.listFn(ctx, limit, offset)
}

func (f *fakeDummyRepo) GetByID(ctx context.Context, id int64) (*domain.Dummy, error) {
	if f.getByIDFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeDummyRepo) SearchByName(ctx context.Context, name string) ([]*domain.Dummy, error) {
	if f.searchByNameFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.searchByNameFn(ctx, name)
}

func (f *fakeDummyRepo) Create(ctx context.Context, dummy *domain.Dummy) (*domain.Dummy, error) {
	if f.createFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.createFn(ctx, dummy)
}

// fakeCacheRepo по умолчанию ведёт себя как пустой исправный кэш.
type fakeCacheRepo struct {
	getFn    func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductRes, error)
	setFn    func(ctx context.Context, products []*ProductRes) error
	deleteFn func(ctx context.Context, ids []uuid.UUID) error
}

func (f *fakeCacheRepo) GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductRes, error) {
	if f.getFn == nil {
		return map[uuid.UUID]*ProductRes{}, nil
	}
	return f.getFn(ctx, ids)
}

func (f *fakeCacheRepo) SetProducts(ctx context.Context, products []*ProductRes) error {
	if f.setFn == nil {
		return nil
	}
	return f.setFn(ctx, products)
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []uuid.UUID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, ids)
}

// fakePublisher записывает каждое опубликованное событие.
type fakePublisher struct {
	publishFn func(ctx context.Context, event *Event) error
	events    []*Event
}

func (f *fakePublisher) Publish(ctx context.Context, event *Event) error {
	f.events = append(f.events, event)
	if f.publishFn == nil {
		return nil
	}
	return f.publishFn(ctx, event)
}

// fakeImagesInfra записывает каждую компенсирующую зачистку.
type fakeImagesInfra struct {
	uploadFn    func(ctx context.Context, req *UploadProductImagesReq) (*UploadImagesRes, error)
	cleanedKeys [][]string
}

func (f *fakeImagesInfra) UploadImages(ctx context.Context, req *UploadProductImagesReq) (*UploadImagesRes, error) {
	if f.uploadFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.uploadFn(ctx, req)
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleanedKeys = append(f.cleanedKeys, keys)
}

type productUCDeps struct {
	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
	brandRepo    *fakeBrandRepo
	db           *fakeDB
	imagesInfra  *fakeImagesInfra
	publisher    *fakePublisher
	cacheRepo    *fakeCacheRepo
}

func newTestProductUC() (*ProductUseCase, *productUCDeps) {
	deps := &productUCDeps{
		productRepo:  &fakeProductRepo{},
		categoryRepo: &fakeCategoryRepo{},
		brandRepo:    &fakeBrandRepo{},
		db:           &fakeDB{},
		imagesInfra:  &fakeImagesInfra{},
		publisher:    &fakePublisher{},
		cacheRepo:    &fakeCacheRepo{},
	}

	uc := NewProductUC(
		deps.productRepo,
		deps.categoryRepo,
		deps.brandRepo,
		deps.db,
		deps.imagesInfra,
		deps.publisher,
		deps.cacheRepo,
		testLogger(),
	)

	return uc, deps
}
