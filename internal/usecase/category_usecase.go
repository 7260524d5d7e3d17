package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/slug"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryUseCase реализует бизнес-логику управления деревом категорий.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	logger       logger.Logger
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		logger:       logger,
	}
}

// List возвращает страницу категорий.
func (c *CategoryUseCase) List(ctx context.Context, limit, offset int) (*ListCategoriesRes, error) {
	const op = "CategoryUseCase.List"

	categories, total, err := c.categoryRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]*CategoryRes, 0, len(categories))
	for _, category := range categories {
		items = append(items, NewCategoryRes(category))
	}

	return &ListCategoriesRes{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetByID возвращает категорию по идентификатору.
func (c *CategoryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*CategoryRes, error) {
	const op = "CategoryUseCase.GetByID"

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if category == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", id.String()))
	}

	return NewCategoryRes(category), nil
}

// Create создаёт категорию, проверяя существование родителя.
// Slug выводится из имени, если не задан явно.
func (c *CategoryUseCase) Create(ctx context.Context, req *CreateCategoryReq) (*CategoryRes, error) {
	const op = "CategoryUseCase.Create"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrNameRequired)
	}

	category := domain.NewCategory(strings.TrimSpace(req.Name), "")
	category.Description = req.Description
	category.ParentID = req.ParentID

	explicitSlug := req.Slug != nil && strings.TrimSpace(*req.Slug) != ""
	if explicitSlug {
		category.Slug = strings.TrimSpace(*req.Slug)
	} else {
		category.Slug = slug.Make(req.Name)
	}
	baseSlug := category.Slug

	var (
		created *domain.Category
		err     error
	)
	for attempt := 0; ; attempt++ {
		created, err = c.createInTx(ctx, category)
		if err == nil {
			break
		}

		if explicitSlug || !errors.Is(err, e.ErrDuplicateSlug) {
			return nil, e.Wrap(op, err)
		}
		if attempt >= maxSlugAttempts {
			return nil, e.Wrap(op, e.ErrSlugExhausted)
		}

		category.Slug = slug.WithSuffix(baseSlug, attempt+1)
	}

	return NewCategoryRes(created), nil
}

// Update частично обновляет категорию.
func (c *CategoryUseCase) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryReq) (*CategoryRes, error) {
	const op = "CategoryUseCase.Update"

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, e.Wrap(op, e.ErrNameRequired)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if category == nil {
		err = e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", id.String())
		return nil, e.Wrap(op, err)
	}

	if req.ParentID != nil {
		if err = c.ensureParentExists(ctx, *req.ParentID); err != nil {
			return nil, e.Wrap(op, err)
		}
		category.ParentID = req.ParentID
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		category.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	updated, err := c.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCategoryRes(updated), nil
}

// Delete удаляет категорию. Дочерние категории становятся корневыми:
// внешний ключ обнуляет их parent_id.
func (c *CategoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "CategoryUseCase.Delete"

	removed, err := c.categoryRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !removed {
		return e.Wrap(op, e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", id.String()))
	}

	return nil
}

// createInTx выполняет одну транзакционную попытку создания категории.
func (c *CategoryUseCase) createInTx(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	if category.ParentID != nil {
		if err = c.ensureParentExists(ctx, *category.ParentID); err != nil {
			return nil, err
		}
	}

	created, err := c.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// ensureParentExists проверяет существование родительской категории.
func (c *CategoryUseCase) ensureParentExists(ctx context.Context, parentID uuid.UUID) error {
	parent, err := c.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return e.NewEntityNotFound(e.ErrCategoryNotFound, "Category", parentID.String())
	}

	return nil
}
