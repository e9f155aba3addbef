package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusPaid      = "paid"
	StatusPending   = "pending"
)

// Appointment is the persisted reservation row. Dates are plain calendar days
// (YYYY-MM-DD, no timezone) and times are stored at seconds granularity
// (HH:MM:SS), matching the booking page's wire format.
type Appointment struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerName    string    `json:"customer_name" bson:"customer_name" validate:"required"`
	CustomerPhone   string    `json:"customer_phone" bson:"customer_phone" validate:"required,egyptian_phone"`
	ServiceID       string    `json:"service_id" bson:"service_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" bson:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" bson:"appointment_time" validate:"required"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=confirmed paid pending"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// AppointmentCreated is the change-feed payload published after a successful
// insert. Subscribers filter on Date and drop Time from their available set.
type AppointmentCreated struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Date      string `json:"appointment_date"`
	Time      string `json:"appointment_time"`
}
