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

const brandColumns = `id, name, logo, description, created_at, updated_at`

// BrandRepo реализует репозиторий брендов поверх PostgreSQL.
type BrandRepo struct {
	pool *pgxpool.Pool
	conv converter.BrandConverter
}

func NewBrandRepo(pool *pgxpool.Pool, conv converter.BrandConverter) *BrandRepo {
	return &BrandRepo{pool: pool, conv: conv}
}

// List возвращает страницу брендов в алфавитном порядке и общее их число.
func (b *BrandRepo) List(ctx context.Context, limit, offset int) ([]*domain.Brand, int64, error) {
	db := q(ctx, b.pool)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM brands;`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT ` + brandColumns + `
		FROM brands
		ORDER BY name, id
		LIMIT $1 OFFSET $2;
	`

	rows, err := db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.BrandModel
	for rows.Next() {
		model, err := scanBrandModel(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return b.conv.ToArrEntity(models), total, nil
}

// GetByID возвращает бренд или (nil, nil), когда его нет.
func (b *BrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	return b.getOne(ctx, "id = $1", id)
}

// GetByName возвращает бренд по уникальному имени, сравнение точное.
func (b *BrandRepo) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	return b.getOne(ctx, "name = $1", name)
}

// Create вставляет бренд. Занятое имя превращается в ErrDuplicateBrandName.
func (b *BrandRepo) Create(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	db := q(ctx, b.pool)

	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}

	model := b.conv.ToModel(brand)
	query := `
		INSERT INTO brands (id, name, logo, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at;
	`

	err := db.QueryRow(ctx, query,
		model.ID, model.Name, model.Logo, model.Description,
	).Scan(&model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, e.Wrap(whereami.WhereAmI(), dup)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return b.conv.ToEntity(model), nil
}

// Update перезаписывает бренд. Возвращает (nil, nil), когда строки нет.
func (b *BrandRepo) Update(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	db := q(ctx, b.pool)

	model := b.conv.ToModel(brand)
	query := `
		UPDATE brands
		SET name = $2, logo = $3, description = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at;
	`

	err := db.QueryRow(ctx, query,
		model.ID, model.Name, model.Logo, model.Description,
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

	return b.conv.ToEntity(model), nil
}

// Delete удаляет бренд. Продукты остаются, их brand_id обнуляет внешний ключ.
func (b *BrandRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db := q(ctx, b.pool)

	tag, err := db.Exec(ctx, `DELETE FROM brands WHERE id = $1;`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() > 0, nil
}

func (b *BrandRepo) getOne(ctx context.Context, cond string, arg any) (*domain.Brand, error) {
	db := q(ctx, b.pool)

	query := `SELECT ` + brandColumns + ` FROM brands WHERE ` + cond + `;`

	model, err := scanBrandModel(db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return b.conv.ToEntity(model), nil
}

func scanBrandModel(row pgx.Row) (*converter.BrandModel, error) {
	var m converter.BrandModel
	err := row.Scan(
		&m.ID, &m.Name, &m.Logo, &m.Description,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}
