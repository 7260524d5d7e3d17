package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDummyUC() (*DummyUseCase, *fakeDummyRepo, *fakeDB, *fakePublisher) {
	repo := &fakeDummyRepo{}
	db := &fakeDB{}
	publisher := &fakePublisher{}
	return NewDummyUC(repo, db, publisher, testLogger()), repo, db, publisher
}

func TestDummyList(t *testing.T) {
	uc, repo, _, _ := newTestDummyUC()

	repo.listFn = func(_ context.Context, limit, offset int) ([]*domain.Dummy, int64, error) {
		assert.Equal(t, 10, limit)
		assert.Equal(t, 3, offset)
		return []*domain.Dummy{{ID: 4, Name: "fourth"}}, 12, nil
	}

	res, err := uc.List(context.Background(), 10, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(12), res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(4), res.Items[0].ID)
	assert.Equal(t, "fourth", res.Items[0].Name)
}

func TestDummyGetByID(t *testing.T) {
	uc, repo, _, _ := newTestDummyUC()

	repo.getByIDFn = func(_ context.Context, id int64) (*domain.Dummy, error) {
		assert.Equal(t, int64(42), id)
		return &domain.Dummy{ID: 42, Name: "answer"}, nil
	}

	res, err := uc.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ID)
	assert.Equal(t, "answer", res.Name)
}

func TestDummyGetByIDNotFound(t *testing.T) {
	uc, repo, _, _ := newTestDummyUC()

	repo.getByIDFn = func(_ context.Context, _ int64) (*domain.Dummy, error) {
		return nil, nil
	}

	_, err := uc.GetByID(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrDummyNotFound)

	var notFound *e.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "99", notFound.ID)
}

func TestDummySearchByName(t *testing.T) {
	uc, repo, _, _ := newTestDummyUC()

	repo.searchByNameFn = func(_ context.Context, name string) ([]*domain.Dummy, error) {
		assert.Equal(t, "demo", name)
		return []*domain.Dummy{{ID: 1, Name: "demo"}, {ID: 2, Name: "demo"}}, nil
	}

	items, err := uc.SearchByName(context.Background(), "demo")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestDummyCreate(t *testing.T) {
	uc, repo, db, publisher := newTestDummyUC()

	repo.createFn = func(_ context.Context, dummy *domain.Dummy) (*domain.Dummy, error) {
		assert.Equal(t, "demo", dummy.Name)
		dummy.ID = 7
		return dummy, nil
	}
	publisher.publishFn = func(_ context.Context, _ *Event) error {
		// Событие уходит в рамках ещё не закоммиченной транзакции.
		assert.False(t, db.lastTx().committed)
		return nil
	}

	res, err := uc.Create(context.Background(), &CreateDummyReq{Name: " demo "})

	require.NoError(t, err)
	assert.Equal(t, int64(7), res.ID)

	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, EventDummyCreated, event.EventType)
	assert.Equal(t, "7", event.AggregateID)
	assert.Equal(t, int64(7), event.Data["id"])
	assert.Equal(t, "demo", event.Data["name"])
}

func TestDummyCreateNameRequired(t *testing.T) {
	uc, _, db, publisher := newTestDummyUC()

	_, err := uc.Create(context.Background(), &CreateDummyReq{Name: "  "})

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrNameRequired)
	assert.Empty(t, publisher.events)
	assert.Empty(t, db.txs)
}

func TestDummyCreateRepoFailureRollsBack(t *testing.T) {
	uc, repo, db, publisher := newTestDummyUC()

	repo.createFn = func(_ context.Context, _ *domain.Dummy) (*domain.Dummy, error) {
		return nil, errors.New("insert failed")
	}

	_, err := uc.Create(context.Background(), &CreateDummyReq{Name: "demo"})

	require.Error(t, err)
	assert.Empty(t, publisher.events)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDummyCreateSurvivesPublishFailure(t *testing.T) {
	uc, repo, db, publisher := newTestDummyUC()

	repo.createFn = func(_ context.Context, dummy *domain.Dummy) (*domain.Dummy, error) {
		dummy.ID = 7
		return dummy, nil
	}
	publisher.publishFn = func(_ context.Context, _ *Event) error {
		return errors.New("broker unavailable")
	}

	res, err := uc.Create(context.Background(), &CreateDummyReq{Name: "demo"})

	// Недоступность брокера не мешает созданию записи.
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.ID)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
}
