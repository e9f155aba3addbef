package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Tamoora69/abdeen-barber-shop/pkg/kafka"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
)

const subscriptionBuffer = 16

// Subscription is a date-scoped view of the change feed. Events for other
// dates are never delivered on it.
type Subscription struct {
	ID     string
	Date   string
	Events <-chan model.AppointmentCreated

	ch chan model.AppointmentCreated
}

// Notifier fans consumed change-feed events out to per-date subscriptions.
// Delivery is best effort: a subscriber that stops draining its channel loses
// events rather than blocking the feed.
type Notifier struct {
	log *logger.Logger

	mu   sync.RWMutex
	subs map[string]map[string]*Subscription // date -> subscription id -> sub
}

func NewNotifier(log *logger.Logger) *Notifier {
	return &Notifier{
		log:  log,
		subs: make(map[string]map[string]*Subscription),
	}
}

// HandleMessage is the consumer callback. Messages that are not
// appointment.created events or fail to decode are dropped with a warning.
func (n *Notifier) HandleMessage(ctx context.Context, msg kafka.Message) error {
	if msg.GetEventType() != EventTypeAppointmentCreated {
		return nil
	}

	var event model.AppointmentCreated
	if err := msg.DecodeValue(&event); err != nil {
		n.log.Warn("Failed to decode appointment created event",
			"event_id", msg.GetEventID(),
			"error", err,
		)
		return nil
	}

	n.dispatch(event)
	return nil
}

// SubscribeDate registers interest in inserts on one calendar date.
func (n *Notifier) SubscribeDate(date string) *Subscription {
	ch := make(chan model.AppointmentCreated, subscriptionBuffer)
	sub := &Subscription{
		ID:     uuid.New().String(),
		Date:   date,
		Events: ch,
		ch:     ch,
	}

	n.mu.Lock()
	if n.subs[date] == nil {
		n.subs[date] = make(map[string]*Subscription)
	}
	n.subs[date][sub.ID] = sub
	n.mu.Unlock()

	n.log.Debug("Feed subscription opened", "subscription_id", sub.ID, "date", date)
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// for an already removed subscription.
func (n *Notifier) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	n.mu.Lock()
	byID, ok := n.subs[sub.Date]
	if ok {
		if _, present := byID[sub.ID]; present {
			delete(byID, sub.ID)
			close(sub.ch)
		}
		if len(byID) == 0 {
			delete(n.subs, sub.Date)
		}
	}
	n.mu.Unlock()
}

// Shutdown closes every open subscription.
func (n *Notifier) Shutdown() {
	n.mu.Lock()
	for date, byID := range n.subs {
		for _, sub := range byID {
			close(sub.ch)
		}
		delete(n.subs, date)
	}
	n.mu.Unlock()
}

func (n *Notifier) dispatch(event model.AppointmentCreated) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, sub := range n.subs[event.Date] {
		select {
		case sub.ch <- event:
		default:
			n.log.Warn("Feed subscriber too slow, dropping event",
				"subscription_id", sub.ID,
				"date", event.Date,
				"event_id", event.ID,
			)
		}
	}
}
