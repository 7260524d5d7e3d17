package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFakeNotConfigured = errors.New("fake method is not configured")

func testLogger() logger.Logger {
	return logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil))
}

type fakeOutboxRepo struct {
	fetchFn   func(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error)
	processed []int64
}

func (f *fakeOutboxRepo) Create(_ context.Context, _ *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	return nil, errFakeNotConfigured
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	if f.fetchFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.fetchFn(ctx, limit)
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	f.processed = append(f.processed, id)
	return nil
}

type fakeWriter struct {
	writeFn func(ctx context.Context, key string, payload []byte) error
	written []string
}

func (f *fakeWriter) WriteRawMessage(ctx context.Context, key string, payload []byte) error {
	f.written = append(f.written, key)
	if f.writeFn == nil {
		return nil
	}
	return f.writeFn(ctx, key, payload)
}

func outboxEvent(id int64, aggregateID string) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          id,
		EventID:     "evt-" + aggregateID,
		EventType:   usecase.EventProductCreated,
		AggregateID: aggregateID,
		Payload:     []byte(`{"sku":"GM-100"}`),
		Status:      usecase.Processing,
	}
}

func newTestWorker(repo *fakeOutboxRepo, writer *fakeWriter) *OutboxWorker {
	return NewOutboxWorker(repo, testLogger(), writer, "")
}

func TestProcessBatchEmpty(t *testing.T) {
	repo := &fakeOutboxRepo{
		fetchFn: func(_ context.Context, _ int) ([]*usecase.OutboxEvent, error) {
			return nil, nil
		},
	}
	writer := &fakeWriter{}
	worker := newTestWorker(repo, writer)

	hasMore, err := worker.processBatch(context.Background())

	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Empty(t, writer.written)
}

func TestProcessBatchDeliversAndMarks(t *testing.T) {
	repo := &fakeOutboxRepo{
		fetchFn: func(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
			assert.Equal(t, 10, limit)
			return []*usecase.OutboxEvent{outboxEvent(1, "a"), outboxEvent(2, "b")}, nil
		},
	}
	writer := &fakeWriter{}
	worker := newTestWorker(repo, writer)

	hasMore, err := worker.processBatch(context.Background())

	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, []string{"a", "b"}, writer.written)
	assert.Equal(t, []int64{1, 2}, repo.processed)
}

func TestProcessBatchSkipsFailedEvent(t *testing.T) {
	repo := &fakeOutboxRepo{
		fetchFn: func(_ context.Context, _ int) ([]*usecase.OutboxEvent, error) {
			return []*usecase.OutboxEvent{outboxEvent(1, "a"), outboxEvent(2, "b")}, nil
		},
	}
	writer := &fakeWriter{
		writeFn: func(_ context.Context, key string, _ []byte) error {
			if key == "a" {
				return errors.New("kafka: connection refused")
			}
			return nil
		},
	}
	worker := newTestWorker(repo, writer)

	hasMore, err := worker.processBatch(context.Background())

	// Неудачное событие остаётся в статусе processing и не блокирует остальные.
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, []int64{2}, repo.processed)
}

func TestProcessBatchFetchError(t *testing.T) {
	repo := &fakeOutboxRepo{
		fetchFn: func(_ context.Context, _ int) ([]*usecase.OutboxEvent, error) {
			return nil, errors.New("db down")
		},
	}
	worker := newTestWorker(repo, &fakeWriter{})

	hasMore, err := worker.processBatch(context.Background())

	require.Error(t, err)
	assert.False(t, hasMore)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "io timeout", err: errors.New("read tcp: i/o timeout"), want: true},
		{name: "broker not available uppercase", err: errors.New("Broker Not Available"), want: true},
		{name: "broken pipe", err: errors.New("write: broken pipe"), want: true},
		{name: "permanent failure", err: errors.New("invalid message size"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}
