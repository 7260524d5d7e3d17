package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// DummyRepo реализует репозиторий демонстрационной сущности поверх PostgreSQL.
type DummyRepo struct {
	pool *pgxpool.Pool
	conv converter.DummyConverter
}

func NewDummyRepo(pool *pgxpool.Pool, conv converter.DummyConverter) *DummyRepo {
	return &DummyRepo{pool: pool, conv: conv}
}

// List возвращает страницу записей по возрастанию идентификатора и общее их число.
func (d *DummyRepo) List(ctx context.Context, limit, offset int) ([]*domain.Dummy, int64, error) {
	db := q(ctx, d.pool)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM dummies;`).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	rows, err := db.Query(ctx, `SELECT id, name FROM dummies ORDER BY id LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectDummyModels(rows)
	if err != nil {
		return nil, 0, err
	}

	return d.conv.ToArrEntity(models), total, nil
}

// GetByID возвращает запись или (nil, nil), когда её нет.
func (d *DummyRepo) GetByID(ctx context.Context, id int64) (*domain.Dummy, error) {
	db := q(ctx, d.pool)

	var model converter.DummyModel
	err := db.QueryRow(ctx, `SELECT id, name FROM dummies WHERE id = $1;`, id).
		Scan(&model.ID, &model.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return d.conv.ToEntity(&model), nil
}

// SearchByName возвращает записи с точно совпадающим именем.
func (d *DummyRepo) SearchByName(ctx context.Context, name string) ([]*domain.Dummy, error) {
	db := q(ctx, d.pool)

	rows, err := db.Query(ctx, `SELECT id, name FROM dummies WHERE name = $1 ORDER BY id;`, name)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectDummyModels(rows)
	if err != nil {
		return nil, err
	}

	return d.conv.ToArrEntity(models), nil
}

// Create вставляет запись, идентификатор выдаёт последовательность БД.
func (d *DummyRepo) Create(ctx context.Context, dummy *domain.Dummy) (*domain.Dummy, error) {
	db := q(ctx, d.pool)

	model := d.conv.ToModel(dummy)
	err := db.QueryRow(ctx, `INSERT INTO dummies (name) VALUES ($1) RETURNING id;`, model.Name).
		Scan(&model.ID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return d.conv.ToEntity(model), nil
}

func collectDummyModels(rows pgx.Rows) ([]*converter.DummyModel, error) {
	var models []*converter.DummyModel
	for rows.Next() {
		var model converter.DummyModel
		if err := rows.Scan(&model.ID, &model.Name); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return models, nil
}
