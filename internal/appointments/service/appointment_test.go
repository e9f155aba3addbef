package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	appointmentserrors "github.com/Tamoora69/abdeen-barber-shop/internal/appointments/errors"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/validator"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/config"
	apperrors "github.com/Tamoora69/abdeen-barber-shop/pkg/errors"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
)

// Mock repository for testing
type mockAppointmentRepository struct {
	mu sync.Mutex

	findTimesFunc func(ctx context.Context, date string) ([]string, error)
	insertFunc    func(ctx context.Context, appt *model.Appointment) error
	deleteFunc    func(ctx context.Context, id string) error
	findAllFunc   func(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error)
	countFunc     func(ctx context.Context) (int64, error)

	inserted []*model.Appointment
}

func (m *mockAppointmentRepository) FindTimesByDate(ctx context.Context, date string) ([]string, error) {
	if m.findTimesFunc != nil {
		return m.findTimesFunc(ctx, date)
	}
	return []string{}, nil
}

func (m *mockAppointmentRepository) Insert(ctx context.Context, appt *model.Appointment) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, appt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted = append(m.inserted, appt)
	return nil
}

func (m *mockAppointmentRepository) DeleteByID(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Appointment{}, nil
}

func (m *mockAppointmentRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockFeedPublisher struct {
	mu        sync.Mutex
	published []model.AppointmentCreated
	err       error
}

func (m *mockFeedPublisher) PublishCreated(ctx context.Context, event model.AppointmentCreated) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

func newTestService(repo *mockAppointmentRepository, feed FeedPublisher) AppointmentService {
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Output:  io.Discard,
		Service: "test",
	})
	cfg := &config.Config{Log: log}
	return NewAppointmentService(repo, feed, validator.NewAppointmentValidator(log), cfg)
}

func validAppointment() *model.Appointment {
	return &model.Appointment{
		CustomerName:    "Ahmed Ali",
		CustomerPhone:   "01234567890",
		ServiceID:       "haircut",
		AppointmentDate: "2026-09-01",
		AppointmentTime: "14:00",
	}
}

func TestAvailability_NoBookings(t *testing.T) {
	repo := &mockAppointmentRepository{}
	svc := newTestService(repo, nil)

	available, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != SlotCount {
		t.Errorf("expected all %d slots available, got %d", SlotCount, len(available))
	}
}

func TestAvailability_SubtractsReservedTimes(t *testing.T) {
	repo := &mockAppointmentRepository{
		findTimesFunc: func(ctx context.Context, date string) ([]string, error) {
			return []string{"14:00:00", "00:00:00"}, nil
		},
	}
	svc := newTestService(repo, nil)

	available, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != SlotCount-2 {
		t.Errorf("expected %d slots, got %d", SlotCount-2, len(available))
	}
	for _, slot := range available {
		if slot == "14:00" || slot == "00:00" {
			t.Errorf("reserved slot %q still listed as available", slot)
		}
	}
	// Remaining slots keep canonical order.
	if available[0] != "11:00" {
		t.Errorf("expected first available slot 11:00, got %q", available[0])
	}
	if available[len(available)-1] != "23:30" {
		t.Errorf("expected last available slot 23:30, got %q", available[len(available)-1])
	}
}

func TestAvailability_FullyBookedDay(t *testing.T) {
	repo := &mockAppointmentRepository{
		findTimesFunc: func(ctx context.Context, date string) ([]string, error) {
			times := make([]string, 0, SlotCount)
			for _, slot := range GenerateSlots() {
				times = append(times, slot+":00")
			}
			return times, nil
		},
	}
	svc := newTestService(repo, nil)

	available, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("fully booked day must not be an error, got: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("expected no available slots, got %d", len(available))
	}
}

func TestAvailability_UnknownTimesIgnored(t *testing.T) {
	// A stored time outside the slot grid must not disturb the remaining set.
	repo := &mockAppointmentRepository{
		findTimesFunc: func(ctx context.Context, date string) ([]string, error) {
			return []string{"09:15:00"}, nil
		},
	}
	svc := newTestService(repo, nil)

	available, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != SlotCount {
		t.Errorf("expected all %d slots, got %d", SlotCount, len(available))
	}
}

func TestAvailability_InvalidDate(t *testing.T) {
	svc := newTestService(&mockAppointmentRepository{}, nil)

	for _, date := range []string{"01-09-2026", "2026-13-45", "2026-02-30"} {
		_, err := svc.Availability(context.Background(), date)
		if err == nil {
			t.Fatalf("expected error for date %q", date)
		}
		if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("date %q: expected code %s, got %s", date, apperrors.CodeInvalidInput, appErr.Code)
		}
	}
}

func TestAvailability_RepositoryError(t *testing.T) {
	repo := &mockAppointmentRepository{
		findTimesFunc: func(ctx context.Context, date string) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.Availability(context.Background(), "2026-09-01")
	if err == nil {
		t.Fatal("expected error when repository fails")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected code %s, got %s", apperrors.CodeInternal, appErr.Code)
	}
}

func TestAvailability_Idempotent(t *testing.T) {
	// With no writes in between, repeated reads must return the same slots
	// and must not touch the store beyond the reserved-times lookup.
	repo := &mockAppointmentRepository{
		findTimesFunc: func(ctx context.Context, date string) ([]string, error) {
			return []string{"11:30:00", "14:00:00"}, nil
		},
		insertFunc: func(ctx context.Context, appt *model.Appointment) error {
			t.Fatal("Availability must not insert")
			return nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			t.Fatal("Availability must not delete")
			return nil
		},
	}
	svc := newTestService(repo, nil)

	first, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := svc.Availability(context.Background(), "2026-09-01")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("reads disagree: %d slots then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d changed between reads: %q then %q", i, first[i], second[i])
		}
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockAppointmentRepository{}
	feed := &mockFeedPublisher{}
	svc := newTestService(repo, feed)

	appt := validAppointment()
	if err := svc.Create(context.Background(), appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.inserted))
	}
	stored := repo.inserted[0]
	if stored.AppointmentTime != "14:00:00" {
		t.Errorf("expected stored time 14:00:00, got %q", stored.AppointmentTime)
	}
	if stored.Status != model.StatusConfirmed {
		t.Errorf("expected status %q, got %q", model.StatusConfirmed, stored.Status)
	}
	if len(feed.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(feed.published))
	}
	if feed.published[0].Date != "2026-09-01" {
		t.Errorf("event date: expected 2026-09-01, got %q", feed.published[0].Date)
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	repo := &mockAppointmentRepository{}
	svc := newTestService(repo, nil)

	appt := validAppointment()
	appt.CustomerName = "  Ahmed   Ali "
	appt.CustomerPhone = "012-3456 7890"
	if err := svc.Create(context.Background(), appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.inserted[0]
	if stored.CustomerName != "Ahmed Ali" {
		t.Errorf("expected normalized name, got %q", stored.CustomerName)
	}
	if stored.CustomerPhone != "01234567890" {
		t.Errorf("expected digit-only phone, got %q", stored.CustomerPhone)
	}
}

func TestCreate_ValidationOrder(t *testing.T) {
	svc := newTestService(&mockAppointmentRepository{}, nil)

	tests := []struct {
		name       string
		mutate     func(*model.Appointment)
		wantReason string
	}{
		{
			name:       "missing name",
			mutate:     func(a *model.Appointment) { a.CustomerName = "   " },
			wantReason: apperrors.ReasonMissingName,
		},
		{
			name:       "invalid phone",
			mutate:     func(a *model.Appointment) { a.CustomerPhone = "0123456789" },
			wantReason: apperrors.ReasonInvalidPhone,
		},
		{
			name:       "wrong phone prefix",
			mutate:     func(a *model.Appointment) { a.CustomerPhone = "11234567890" },
			wantReason: apperrors.ReasonInvalidPhone,
		},
		{
			name:       "missing service",
			mutate:     func(a *model.Appointment) { a.ServiceID = "" },
			wantReason: apperrors.ReasonIncompleteSelection,
		},
		{
			name:       "missing date",
			mutate:     func(a *model.Appointment) { a.AppointmentDate = "" },
			wantReason: apperrors.ReasonIncompleteSelection,
		},
		{
			name:       "missing time",
			mutate:     func(a *model.Appointment) { a.AppointmentTime = "" },
			wantReason: apperrors.ReasonIncompleteSelection,
		},
		{
			name: "missing name reported before invalid phone",
			mutate: func(a *model.Appointment) {
				a.CustomerName = ""
				a.CustomerPhone = "abc"
			},
			wantReason: apperrors.ReasonMissingName,
		},
		{
			name: "invalid phone reported before incomplete selection",
			mutate: func(a *model.Appointment) {
				a.CustomerPhone = "123"
				a.ServiceID = ""
			},
			wantReason: apperrors.ReasonInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := validAppointment()
			tt.mutate(appt)

			err := svc.Create(context.Background(), appt)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Fatalf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
			if reason := appErr.Details["reason"]; reason != tt.wantReason {
				t.Errorf("expected reason %q, got %v", tt.wantReason, reason)
			}
		})
	}
}

func TestCreate_RejectsUnknownService(t *testing.T) {
	svc := newTestService(&mockAppointmentRepository{}, nil)

	appt := validAppointment()
	appt.ServiceID = "massage"
	err := svc.Create(context.Background(), appt)
	if err == nil {
		t.Fatal("expected error for unknown service")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestCreate_RejectsOffGridTime(t *testing.T) {
	svc := newTestService(&mockAppointmentRepository{}, nil)

	appt := validAppointment()
	appt.AppointmentTime = "14:15"
	err := svc.Create(context.Background(), appt)
	if err == nil {
		t.Fatal("expected error for off-grid time")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	repo := &mockAppointmentRepository{
		findTimesFunc: func(ctx context.Context, date string) ([]string, error) {
			return []string{"14:00:00"}, nil
		},
	}
	svc := newTestService(repo, nil)

	err := svc.Create(context.Background(), validAppointment())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("conflicting appointment must not be inserted, got %d inserts", len(repo.inserted))
	}
}

func TestCreate_PersistenceError(t *testing.T) {
	repo := &mockAppointmentRepository{
		insertFunc: func(ctx context.Context, appt *model.Appointment) error {
			return errors.New("write concern error")
		},
	}
	feed := &mockFeedPublisher{}
	svc := newTestService(repo, feed)

	err := svc.Create(context.Background(), validAppointment())
	if err == nil {
		t.Fatal("expected error when insert fails")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected code %s, got %s", apperrors.CodeInternal, appErr.Code)
	}
	if len(feed.published) != 0 {
		t.Errorf("no event must be published on failed insert, got %d", len(feed.published))
	}
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	repo := &mockAppointmentRepository{}
	feed := &mockFeedPublisher{err: errors.New("broker unavailable")}
	svc := newTestService(repo, feed)

	if err := svc.Create(context.Background(), validAppointment()); err != nil {
		t.Fatalf("booking must succeed despite publish failure, got: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Errorf("expected 1 insert, got %d", len(repo.inserted))
	}
}

// Two concurrent requests for the same slot can both pass the availability
// check before either insert lands, and both get stored. There is no lock or
// unique index closing this window; this test documents that behavior.
func TestCreate_ConcurrentSameSlot_BothStored(t *testing.T) {
	var mu sync.Mutex
	var insertedTimes []string

	repo := &mockAppointmentRepository{}
	checked := make(chan struct{})
	proceed := make(chan struct{})

	repo.findTimesFunc = func(ctx context.Context, date string) ([]string, error) {
		mu.Lock()
		times := append([]string(nil), insertedTimes...)
		mu.Unlock()
		checked <- struct{}{}
		<-proceed
		return times, nil
	}
	repo.insertFunc = func(ctx context.Context, appt *model.Appointment) error {
		mu.Lock()
		insertedTimes = append(insertedTimes, appt.AppointmentTime)
		mu.Unlock()
		return nil
	}

	svc := newTestService(repo, nil)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Create(context.Background(), validAppointment())
		}(i)
	}

	// Hold both requests after their availability check so each sees an
	// empty day, then release them together.
	<-checked
	<-checked
	close(proceed)
	wg.Wait()

	for i, err := range results {
		if err != nil {
			t.Errorf("request %d: expected success, got %v", i, err)
		}
	}
	if len(insertedTimes) != 2 {
		t.Fatalf("expected both inserts to land, got %d", len(insertedTimes))
	}
	if insertedTimes[0] != insertedTimes[1] {
		t.Errorf("expected duplicate slot times, got %q and %q", insertedTimes[0], insertedTimes[1])
	}
}

func TestGetAll(t *testing.T) {
	repo := &mockAppointmentRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 42, nil },
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
			return []*model.Appointment{
				{ID: "1"},
				{ID: "2"},
			}, nil
		},
	}
	svc := newTestService(repo, nil)

	appointments, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(appointments) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(appointments))
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		repoErr  error
		wantCode string
	}{
		{"empty id", "", nil, apperrors.CodeInvalidInput},
		{"not found", "64f1ba2c9d3e8a0001234567", appointmentserrors.ErrNotFound, apperrors.CodeNotFound},
		{"malformed id", "not-a-hex-id", appointmentserrors.ErrInvalidID, apperrors.CodeInvalidInput},
		{"store failure", "64f1ba2c9d3e8a0001234567", errors.New("connection reset"), apperrors.CodeInternal},
		{"success", "64f1ba2c9d3e8a0001234567", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAppointmentRepository{
				deleteFunc: func(ctx context.Context, id string) error {
					return tt.repoErr
				},
			}
			svc := newTestService(repo, nil)

			err := svc.Delete(context.Background(), tt.id)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, appErr.Code)
			}
		})
	}
}
