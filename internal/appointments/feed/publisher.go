// Package feed carries newly created appointments from the booking writer to
// live subscribers. The producer side publishes one event per insert, keyed
// by appointment date; the notifier side fans consumed events out to
// date-scoped subscriptions.
package feed

import (
	"context"

	"github.com/Tamoora69/abdeen-barber-shop/pkg/kafka"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
)

const (
	EventTypeAppointmentCreated = "appointment.created"
	eventSource                 = "appointments-api"
)

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// Publisher turns created appointments into change-feed messages.
type Publisher struct {
	producer producer
	log      *logger.Logger
}

func NewPublisher(p *kafka.Producer, log *logger.Logger) *Publisher {
	return &Publisher{producer: p, log: log}
}

func (p *Publisher) PublishCreated(ctx context.Context, event model.AppointmentCreated) error {
	msg := kafka.NewMessage().
		WithKey(event.Date).
		WithValue(event).
		WithEventType(EventTypeAppointmentCreated).
		WithSource(eventSource).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}

	p.log.Debug("Published appointment created event",
		"id", event.ID,
		"date", event.Date,
		"time", event.Time,
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
