package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const categoryColumns = `id, name, slug, description, parent_id, created_at, updated_at`

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает страницу категорий в алфавитном порядке и общее их число.
func (c *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*domain.Category, int64, error) {
	db := q(ctx, c.pool)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM categories;`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY name, id
		LIMIT $1 OFFSET $2;
	`

	rows, err := db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.CategoryModel
	for rows.Next() {
		model, err := scanCategoryModel(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), total, nil
}

// GetByID возвращает категорию или (nil, nil), когда её нет.
func (c *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	db := q(ctx, c.pool)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1;`

	model, err := scanCategoryModel(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// ExistingIDs возвращает подмножество переданных идентификаторов,
// которые действительно есть в таблице.
func (c *CategoryRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	db := q(ctx, c.pool)

	rows, err := db.Query(ctx, `SELECT id FROM categories WHERE id = ANY($1);`, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	existing := make(map[uuid.UUID]struct{}, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		existing[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return existing, nil
}

// Create вставляет категорию. Занятый slug превращается в ErrDuplicateSlug,
// чтобы вызывающая сторона могла перегенерировать его и повторить.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	db := q(ctx, c.pool)

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	model := c.conv.ToModel(category)
	query := `
		INSERT INTO categories (id, name, slug, description, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at;
	`

	err := db.QueryRow(ctx, query,
		model.ID, model.Name, model.Slug, model.Description, model.ParentID,
	).Scan(&model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, e.Wrap(whereami.WhereAmI(), dup)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// Update перезаписывает категорию. Возвращает (nil, nil), когда строки нет.
func (c *CategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	db := q(ctx, c.pool)

	model := c.conv.ToModel(category)
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, parent_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at;
	`

	err := db.QueryRow(ctx, query,
		model.ID, model.Name, model.Slug, model.Description, model.ParentID,
	).Scan(&model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if dup := duplicateError(err); dup != nil {
			return nil, e.Wrap(whereami.WhereAmI(), dup)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

// Delete удаляет категорию. Ссылки дочерних категорий обнуляет внешний ключ,
// связи с продуктами убирает каскад таблицы product_categories.
func (c *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db := q(ctx, c.pool)

	tag, err := db.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanCategoryModel(row pgx.Row) (*converter.CategoryModel, error) {
	var m converter.CategoryModel
	err := row.Scan(
		&m.ID, &m.Name, &m.Slug, &m.Description, &m.ParentID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}
