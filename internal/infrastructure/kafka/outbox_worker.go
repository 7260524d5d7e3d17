package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	outboxChannel  = "outbox_pending"
	outboxBatch    = 10
	notifyTimeout  = 30 * time.Second
	reconnectPause = 2 * time.Second
	retryPause     = 5 * time.Second
)

// MessageWriter отправляет сырой payload события во внешний брокер.
type MessageWriter interface {
	WriteRawMessage(ctx context.Context, key string, payload []byte) error
}

// OutboxWorker доставляет события из outbox-таблицы в Kafka.
// Остатки выгребаются при старте, дальше воркер просыпается по
// NOTIFY outbox_pending из PostgreSQL.
type OutboxWorker struct {
	repo      usecase.OutboxEventRepository
	logger    logger.Logger
	producer  MessageWriter
	quit      chan struct{}
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo usecase.OutboxEventRepository,
	logger logger.Logger,
	producer MessageWriter,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		quit:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

// Start поднимает две горутины: стартовый дренаж и слушателя уведомлений.
// Обе живут до отмены ctx или вызова Stop.
func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)

	go func() {
		defer w.wg.Done()

		w.logger.Infof("Draining pending outbox events on startup...")
		if err := w.drain(ctx); err != nil {
			w.logger.Warnf("startup batch failed: %v", err)
			return
		}

		<-ctx.Done()
		w.logger.Infof("Worker stopped by context cancellation")
	}()

	go func() {
		defer w.wg.Done()
		w.listen(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	close(w.quit)
	w.wg.Wait()
}

// listen держит выделенное соединение с LISTEN и дренирует outbox
// на каждое уведомление. Потерянное соединение переоткрывается с паузой.
func (w *OutboxWorker) listen(ctx context.Context) {
	conn, err := w.subscribe(ctx)
	if err != nil {
		w.logger.Warnf("Initial connect failed: %v", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(ctx)
			return
		case <-w.quit:
			conn.Close(ctx)
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			// Таймаут ожидания штатный, он лишь даёт проверить quit.
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}

			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			conn.Close(ctx)

			if conn = w.reconnect(ctx); conn == nil {
				return
			}
			continue
		}

		if notif == nil || notif.Channel != outboxChannel {
			continue
		}

		w.logger.Debugf("Received outbox notification, draining outbox events")
		if err := w.drain(ctx); err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
		}
	}
}

// reconnect переподписывается на канал до первого успеха.
// Возвращает nil, когда воркер останавливают.
func (w *OutboxWorker) reconnect(ctx context.Context) *pgx.Conn {
	for {
		time.Sleep(reconnectPause)

		conn, err := w.subscribe(ctx)
		if err == nil {
			return conn
		}
		w.logger.Warnf("Reconnect failed: %v", err)

		select {
		case <-ctx.Done():
			return nil
		case <-w.quit:
			return nil
		case <-time.After(retryPause):
		}
	}
}

func (w *OutboxWorker) subscribe(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return nil, e.Wrap("failed to connect for LISTEN", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
		conn.Close(ctx)
		return nil, e.Wrap("failed to LISTEN", err)
	}

	w.logger.Infof("Subscribed to '%s' channel", outboxChannel)

	return conn, nil
}

// drain выгребает outbox пачками, пока таблица не опустеет.
func (w *OutboxWorker) drain(ctx context.Context) error {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			return err
		}
		if !hasMore {
			return nil
		}
	}
}

// processBatch забирает очередную пачку событий со статусом pending и
// доставляет их по одному. Событие, которое не удалось отправить,
// остаётся в статусе processing и в processed не переводится.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, outboxBatch)
	if err != nil {
		return false, err
	}
	if len(events) == 0 {
		return false, nil
	}

	for _, event := range events {
		if err := w.deliver(ctx, event); err != nil {
			w.logger.Warnf("process event %s failed: %v", event.EventID, err)
			continue
		}

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) deliver(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, event.AggregateID, event.Payload)
	if err == nil {
		return nil
	}

	if isRetryableError(err) {
		return e.Wrap("Temporary Kafka failure, will retry", err)
	}

	return e.Wrap("Permanent Kafka failure", err)
}

// retryableKafkaErrors перечисляет сетевые сбои, после которых доставку
// имеет смысл повторить. Остальные ошибки считаются постоянными.
var retryableKafkaErrors = []string{
	"connection refused",
	"i/o timeout",
	"network is unreachable",
	"broker not available",
	"connection reset",
	"broken pipe",
	"no such host",
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range retryableKafkaErrors {
		if strings.Contains(msg, phrase) {
			return true
		}
	}

	return false
}
