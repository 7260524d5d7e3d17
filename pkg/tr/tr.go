package tr

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

const txKey = "tx"

// CtxWithTx кладёт объект транзакции в контекст для передачи репозиториям.
func CtxWithTx(ctx context.Context, tx interface{}) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
