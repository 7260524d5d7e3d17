package console

import (
	"context"
	"encoding/json"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Publisher пишет доменные события в лог. Бэкенд по умолчанию:
// позволяет запускать сервис без брокера сообщений.
type Publisher struct {
	logger logger.Logger
}

func NewPublisher(logger logger.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// Publish сериализует событие и выводит его одной строкой лога.
func (p *Publisher) Publish(_ context.Context, event *usecase.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	p.logger.Infof("EVENT PUBLISHED: %s - %s", event.EventType, payload)

	return nil
}
