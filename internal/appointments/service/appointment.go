package service

import (
	"context"
	"errors"
	"sync"

	appointmentserrors "github.com/Tamoora69/abdeen-barber-shop/internal/appointments/errors"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/repository"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/validator"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/config"
	apperrors "github.com/Tamoora69/abdeen-barber-shop/pkg/errors"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/sanitizer"
)

// FeedPublisher pushes a created-appointment event onto the change feed.
// Publish failures must never fail the booking itself.
type FeedPublisher interface {
	PublishCreated(ctx context.Context, event model.AppointmentCreated) error
}

type AppointmentService interface {
	Slots() []string
	Availability(ctx context.Context, date string) ([]string, error)
	Create(ctx context.Context, appt *model.Appointment) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error)
	Delete(ctx context.Context, id string) error
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	feed      FeedPublisher
	validator *validator.AppointmentValidator
	cfg       *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	feed FeedPublisher,
	validator *validator.AppointmentValidator,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		feed:      feed,
		validator: validator,
		cfg:       cfg,
	}
}

// Slots returns the canonical slot sequence for any business day.
func (s *appointmentService) Slots() []string {
	return GenerateSlots()
}

// Availability subtracts the booked times on date from the canonical slot
// sequence, preserving slot order. A fully booked day yields an empty slice,
// not an error.
func (s *appointmentService) Availability(ctx context.Context, date string) ([]string, error) {
	if !validator.ValidDate(date) {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	reserved, err := s.reservedTimes(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load booked times", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to check available times", err)
	}

	available := make([]string, 0, SlotCount)
	for _, slot := range GenerateSlots() {
		if _, taken := reserved[slot]; !taken {
			available = append(available, slot)
		}
	}

	s.cfg.Log.Debug("Availability resolved",
		"date", date,
		"reserved", len(reserved),
		"available", len(available),
	)
	return available, nil
}

// Create validates and persists a new appointment, then publishes it to the
// change feed. Availability is re-checked immediately before the insert, but
// there is no lock or transaction around the check-then-write pair: two
// concurrent requests for the same slot can both pass the check and both be
// stored.
func (s *appointmentService) Create(ctx context.Context, appt *model.Appointment) error {
	s.sanitize(appt)

	if !validator.ValidName(appt.CustomerName) {
		return apperrors.Validation("Please enter your name", apperrors.ReasonMissingName)
	}
	if !validator.ValidPhone(appt.CustomerPhone) {
		return apperrors.Validation("Please enter a valid phone number (11 digits starting with 01)", apperrors.ReasonInvalidPhone)
	}
	if appt.ServiceID == "" || appt.AppointmentDate == "" || appt.AppointmentTime == "" {
		return apperrors.Validation("Please complete your service, date and time selection", apperrors.ReasonIncompleteSelection)
	}

	if !IsBookableSlot(appt.AppointmentTime) {
		return apperrors.InvalidInput("Appointment time is not a bookable slot")
	}

	s.applyDefaults(appt)
	if err := s.validator.Validate(appt); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.InvalidInput(err.Error())
	}

	reserved, err := s.reservedTimes(ctx, appt.AppointmentDate)
	if err != nil {
		s.cfg.Log.Error("Failed to re-check slot availability",
			"date", appt.AppointmentDate,
			"time", appt.AppointmentTime,
			"error", err,
		)
		return apperrors.Internal("Failed to check slot availability", err)
	}
	if _, taken := reserved[appt.AppointmentTime]; taken {
		s.cfg.Log.Warn("Slot conflict on booking attempt",
			"date", appt.AppointmentDate,
			"time", appt.AppointmentTime,
		)
		return apperrors.Conflict("Sorry, this time was just booked. Please choose another time.")
	}

	// Stored at seconds granularity.
	appt.AppointmentTime = appt.AppointmentTime + ":00"

	if err := s.repo.Insert(ctx, appt); err != nil {
		s.cfg.Log.Error("Failed to save appointment", "error", err)
		return apperrors.Internal("Failed to save appointment", err)
	}

	s.publishCreated(ctx, appt)

	s.cfg.Log.Info("Appointment created successfully",
		"id", appt.ID,
		"service_id", appt.ServiceID,
		"date", appt.AppointmentDate,
		"time", appt.AppointmentTime,
	)
	return nil
}

func (s *appointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid appointment ID format")
		}
		return apperrors.Internal("Failed to delete appointment", err)
	}

	s.cfg.Log.Info("Appointment deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *appointmentService) sanitize(appt *model.Appointment) {
	appt.CustomerName = sanitizer.NormalizeName(appt.CustomerName)
	appt.CustomerPhone = sanitizer.NormalizePhone(appt.CustomerPhone)
}

func (s *appointmentService) applyDefaults(appt *model.Appointment) {
	if appt.Status == "" {
		appt.Status = model.StatusConfirmed
	}
}

// reservedTimes returns the set of booked HH:MM slot values on date. Stored
// times carry a seconds component that is truncated before comparison.
func (s *appointmentService) reservedTimes(ctx context.Context, date string) (map[string]struct{}, error) {
	times, err := s.repo.FindTimesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	reserved := make(map[string]struct{}, len(times))
	for _, t := range times {
		reserved[sanitizer.NormalizeSlotTime(t)] = struct{}{}
	}
	return reserved, nil
}

func (s *appointmentService) publishCreated(ctx context.Context, appt *model.Appointment) {
	if s.feed == nil {
		return
	}

	event := model.AppointmentCreated{
		ID:        appt.ID,
		ServiceID: appt.ServiceID,
		Date:      appt.AppointmentDate,
		Time:      appt.AppointmentTime,
	}
	if err := s.feed.PublishCreated(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish appointment created event",
			"id", appt.ID,
			"date", appt.AppointmentDate,
			"error", err,
		)
	}
}
