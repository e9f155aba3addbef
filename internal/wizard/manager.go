package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/feed"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/validator"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/catalog"
	apperrors "github.com/Tamoora69/abdeen-barber-shop/pkg/errors"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/sanitizer"
)

// AvailabilityResolver yields the open slots for a date.
type AvailabilityResolver interface {
	Availability(ctx context.Context, date string) ([]string, error)
}

// BookingWriter persists a finished draft.
type BookingWriter interface {
	Create(ctx context.Context, appt *model.Appointment) error
}

// Manager owns the wizard sessions and applies step transitions. While a
// session sits on the time-selection or details step it holds a change-feed
// subscription for its date, so slots booked by other customers disappear
// from its available list without polling. Sessions idle past the TTL are
// swept and torn down, so abandoned browsers cannot accumulate subscriptions.
type Manager struct {
	resolver AvailabilityResolver
	writer   BookingWriter
	notifier *feed.Notifier
	store    *Store
	ttl      time.Duration
	log      *logger.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewManager(resolver AvailabilityResolver, writer BookingWriter, notifier *feed.Notifier, sessionTTL time.Duration, log *logger.Logger) *Manager {
	m := &Manager{
		resolver: resolver,
		writer:   writer,
		notifier: notifier,
		store:    NewStore(),
		ttl:      sessionTTL,
		log:      log,
		stopCh:   make(chan struct{}),
	}

	go m.sweep()

	return m
}

// Start opens a new session at the service-selection step.
func (m *Manager) Start() State {
	session := m.store.New()

	session.mu.Lock()
	defer session.mu.Unlock()

	m.log.Debug("Wizard session started", "session_id", session.ID)
	return session.snapshot()
}

// Get returns the current state of a session.
func (m *Manager) Get(id string) (State, error) {
	session, ok := m.store.Get(id)
	if !ok {
		return State{}, apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()
	return session.snapshot(), nil
}

// SelectService records the chosen service and advances to date selection.
func (m *Manager) SelectService(id, serviceID string) (State, error) {
	session, ok := m.store.Get(id)
	if !ok {
		return State{}, apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	if session.step != StepSelectingService {
		return State{}, stepError(StepSelectingService, session.step)
	}
	if !catalog.Exists(serviceID) {
		return State{}, apperrors.InvalidInput("Unknown service: " + serviceID)
	}

	session.draft = session.draft.WithService(serviceID)
	session.step = StepSelectingDate
	return session.snapshot(), nil
}

// SelectDate resolves availability for the chosen date and advances to time
// selection. The availability fetch runs outside the session lock; if another
// SelectDate or Back lands first, the stale result is discarded. A date with
// no open slots leaves the session on the date step.
func (m *Manager) SelectDate(ctx context.Context, id, date string) (State, error) {
	session, ok := m.store.Get(id)
	if !ok {
		return State{}, apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	session.touch()
	if session.step != StepSelectingDate {
		defer session.mu.Unlock()
		return State{}, stepError(StepSelectingDate, session.step)
	}
	if !validator.ValidDate(date) {
		defer session.mu.Unlock()
		return State{}, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	session.epoch++
	epoch := session.epoch
	m.teardownLocked(session)
	session.mu.Unlock()

	available, err := m.resolver.Availability(ctx, date)

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.epoch != epoch {
		// Superseded by a newer selection while we were fetching.
		m.log.Debug("Discarding stale availability result", "session_id", id, "date", date)
		return session.snapshot(), nil
	}
	if err != nil {
		return State{}, err
	}
	if len(available) == 0 {
		m.log.Info("Date fully booked, staying on date selection", "session_id", id, "date", date)
		return session.snapshot(), nil
	}

	session.draft = session.draft.WithDate(date)
	session.available = available
	session.slotTaken = false
	session.step = StepSelectingTime

	sub := m.notifier.SubscribeDate(date)
	session.sub = sub
	go m.pump(session, sub)

	return session.snapshot(), nil
}

// SelectTime records the chosen slot and advances to the details step. The
// slot must still be in the session's available list.
func (m *Manager) SelectTime(id, t string) (State, error) {
	session, ok := m.store.Get(id)
	if !ok {
		return State{}, apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	if session.step != StepSelectingTime {
		return State{}, stepError(StepSelectingTime, session.step)
	}

	offered := false
	for _, slot := range session.available {
		if slot == t {
			offered = true
			break
		}
	}
	if !offered {
		return State{}, apperrors.Conflict("This time is no longer available. Please choose another.")
	}

	session.draft = session.draft.WithTime(t)
	session.slotTaken = false
	session.step = StepEnteringDetails
	return session.snapshot(), nil
}

// Submit hands the completed draft to the booking writer. On success the
// session reaches its terminal step and the feed subscription is released.
// A slot conflict sends the customer back to time selection with the lost
// slot removed; validation failures keep the session on the details step.
func (m *Manager) Submit(ctx context.Context, id, name, phone string) (State, *model.Appointment, error) {
	session, ok := m.store.Get(id)
	if !ok {
		return State{}, nil, apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	if session.step != StepEnteringDetails {
		return State{}, nil, stepError(StepEnteringDetails, session.step)
	}

	appt := &model.Appointment{
		CustomerName:    name,
		CustomerPhone:   phone,
		ServiceID:       session.draft.ServiceID,
		AppointmentDate: session.draft.Date,
		AppointmentTime: session.draft.Time,
	}

	if err := m.writer.Create(ctx, appt); err != nil {
		if appErr, isApp := err.(*apperrors.AppError); isApp && appErr.Code == apperrors.CodeConflict {
			session.removeAvailable(session.draft.Time)
			session.draft = session.draft.ClearTime()
			session.slotTaken = false
			session.step = StepSelectingTime
			m.log.Warn("Slot lost at submit, returning to time selection", "session_id", id)
		}
		return State{}, nil, err
	}

	session.step = StepSubmitted
	session.epoch++
	m.teardownLocked(session)

	m.log.Info("Wizard session submitted",
		"session_id", id,
		"appointment_id", appt.ID,
		"date", appt.AppointmentDate,
		"time", appt.AppointmentTime,
	)
	return session.snapshot(), appt, nil
}

// Back returns to the previous step, clearing everything chosen after it.
// The first and the terminal step have no previous step.
func (m *Manager) Back(id string) (State, error) {
	session, ok := m.store.Get(id)
	if !ok {
		return State{}, apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	switch session.step {
	case StepSelectingService:
		return State{}, apperrors.InvalidInput("Already at the first step")
	case StepSubmitted:
		return State{}, apperrors.InvalidInput("Booking already submitted")
	case StepSelectingDate:
		session.draft = session.draft.ClearService()
		session.step = StepSelectingService
	case StepSelectingTime:
		session.draft = session.draft.ClearDate()
		session.available = nil
		session.epoch++
		m.teardownLocked(session)
		session.step = StepSelectingDate
	case StepEnteringDetails:
		session.draft = session.draft.ClearTime()
		session.slotTaken = false
		session.step = StepSelectingTime
	}

	return session.snapshot(), nil
}

// Abandon drops the session and releases its feed subscription.
func (m *Manager) Abandon(id string) error {
	session, ok := m.store.Remove(id)
	if !ok {
		return apperrors.NotFoundWithID("Wizard session", id)
	}

	session.mu.Lock()
	session.epoch++
	m.teardownLocked(session)
	session.mu.Unlock()

	m.log.Debug("Wizard session abandoned", "session_id", id)
	return nil
}

// Shutdown stops the idle sweeper and releases every live session.
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	for _, session := range m.store.Drain() {
		session.mu.Lock()
		session.epoch++
		m.teardownLocked(session)
		session.mu.Unlock()
	}
}

// sweep drops sessions that have been idle past the TTL, releasing their
// feed subscriptions the same way Abandon does.
func (m *Manager) sweep() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, session := range m.store.Expired(m.ttl) {
				session.mu.Lock()
				session.epoch++
				m.teardownLocked(session)
				session.mu.Unlock()
				m.log.Info("Wizard session expired", "session_id", session.ID)
			}
		case <-m.stopCh:
			return
		}
	}
}

// teardownLocked must be called with session.mu held.
func (m *Manager) teardownLocked(session *Session) {
	if session.sub != nil {
		m.notifier.Unsubscribe(session.sub)
		session.sub = nil
	}
}

// pump applies change-feed events to the session until its subscription is
// closed.
func (m *Manager) pump(session *Session, sub *feed.Subscription) {
	for event := range sub.Events {
		m.apply(session, sub, event)
	}
}

func (m *Manager) apply(session *Session, sub *feed.Subscription, event model.AppointmentCreated) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.sub != sub {
		return
	}

	slot := sanitizer.NormalizeSlotTime(event.Time)
	if !session.removeAvailable(slot) {
		return
	}

	if session.step == StepEnteringDetails && session.draft.Time == slot {
		session.slotTaken = true
		m.log.Warn("Selected slot booked by another customer",
			"session_id", session.ID,
			"date", event.Date,
			"time", slot,
		)
		return
	}

	if session.step == StepSelectingTime && len(session.available) == 0 {
		// The day filled up while the customer was deciding.
		session.draft = session.draft.ClearDate()
		session.epoch++
		m.teardownLocked(session)
		session.step = StepSelectingDate
		m.log.Info("All slots gone, returning session to date selection", "session_id", session.ID)
	}
}
