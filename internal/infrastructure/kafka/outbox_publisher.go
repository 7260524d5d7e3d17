package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// OutboxPublisher сохраняет событие в outbox-таблицу вместо прямой записи
// в брокер. Запись попадает в ту же транзакцию, что и изменение данных,
// поэтому событие не публикуется при откате и не теряется при сбое брокера.
// Доставкой в Kafka занимается OutboxWorker.
type OutboxPublisher struct {
	outboxRepo usecase.OutboxEventRepository
}

func NewOutboxPublisher(outboxRepo usecase.OutboxEventRepository) *OutboxPublisher {
	return &OutboxPublisher{outboxRepo: outboxRepo}
}

// Publish сериализует событие и кладёт его в outbox со статусом pending.
func (p *OutboxPublisher) Publish(ctx context.Context, event *usecase.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	_, err = p.outboxRepo.Create(ctx, &usecase.OutboxEvent{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      usecase.Pending,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
