package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier покрывает общие методы pgxpool.Pool и pgx.Tx. Репозитории выполняют
// запросы в транзакции из контекста, когда юзкейс её открыл, и напрямую
// через пул, когда её нет.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func q(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}

const uniqueViolationCode = "23505"

// postgresDuplicate сообщает, вызвана ли ошибка нарушением уникального ограничения.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// duplicateError переводит нарушение уникального ограничения в доменную ошибку.
// Для прочих ошибок возвращает nil, решение остаётся за вызывающим.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case "products_slug_key", "categories_slug_key":
		return e.ErrDuplicateSlug
	case "products_sku_key", "product_variants_sku_key":
		return e.ErrDuplicateSKU
	case "brands_name_key":
		return e.ErrDuplicateBrandName
	}

	return nil
}
