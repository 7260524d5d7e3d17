package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// DummyUseCase реализует простейший CRUD для smoke-проверок стека.
type DummyUseCase struct {
	dummyRepo DummyRepository
	dbPool    transaction.Transactional
	publisher EventPublisher
	logger    logger.Logger
}

func NewDummyUC(
	dummyRepo DummyRepository,
	dbPool transaction.Transactional,
	publisher EventPublisher,
	logger logger.Logger,
) *DummyUseCase {
	return &DummyUseCase{
		dummyRepo: dummyRepo,
		dbPool:    dbPool,
		publisher: publisher,
		logger:    logger,
	}
}

// List возвращает страницу записей.
func (d *DummyUseCase) List(ctx context.Context, limit, offset int) (*ListDummiesRes, error) {
	const op = "DummyUseCase.List"

	dummies, total, err := d.dummyRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]*DummyRes, 0, len(dummies))
	for _, dummy := range dummies {
		items = append(items, NewDummyRes(dummy))
	}

	return &ListDummiesRes{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// GetByID возвращает запись по идентификатору.
func (d *DummyUseCase) GetByID(ctx context.Context, id int64) (*DummyRes, error) {
	const op = "DummyUseCase.GetByID"

	dummy, err := d.dummyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if dummy == nil {
		return nil, e.Wrap(op, e.NewEntityNotFound(e.ErrDummyNotFound, "Dummy", strconv.FormatInt(id, 10)))
	}

	return NewDummyRes(dummy), nil
}

// SearchByName возвращает записи с точным совпадением имени.
func (d *DummyUseCase) SearchByName(ctx context.Context, name string) ([]*DummyRes, error) {
	const op = "DummyUseCase.SearchByName"

	dummies, err := d.dummyRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items := make([]*DummyRes, 0, len(dummies))
	for _, dummy := range dummies {
		items = append(items, NewDummyRes(dummy))
	}

	return items, nil
}

// Create создаёт запись и публикует событие dummy.created.
func (d *DummyUseCase) Create(ctx context.Context, req *CreateDummyReq) (*DummyRes, error) {
	const op = "DummyUseCase.Create"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrNameRequired)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, d.dbPool)
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

	created, err := d.dummyRepo.Create(ctx, domain.NewDummy(strings.TrimSpace(req.Name)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event := NewEvent(EventDummyCreated, strconv.FormatInt(created.ID, 10), map[string]any{
		"id":   created.ID,
		"name": created.Name,
	}, nil)
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Warnf("Failed to publish %s event: %v", event.EventType, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewDummyRes(created), nil
}
