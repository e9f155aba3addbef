// Package wizard drives the step-by-step booking flow: pick a service, pick
// a date, pick a time, enter contact details, submit. Steps advance strictly
// forward; skipping ahead is rejected and going back clears everything chosen
// after the step returned to.
package wizard

import (
	"fmt"

	apperrors "github.com/Tamoora69/abdeen-barber-shop/pkg/errors"
)

type Step int

const (
	StepSelectingService Step = iota
	StepSelectingDate
	StepSelectingTime
	StepEnteringDetails
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSelectingService:
		return "selecting_service"
	case StepSelectingDate:
		return "selecting_date"
	case StepSelectingTime:
		return "selecting_time"
	case StepEnteringDetails:
		return "entering_details"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Draft is the booking under construction. Values accumulate as the customer
// moves forward and are cleared again when they go back. Mutation methods
// return a new value; a Draft held by a caller never changes underneath it.
type Draft struct {
	ServiceID string `json:"service_id,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

func (d Draft) WithService(serviceID string) Draft {
	d.ServiceID = serviceID
	return d
}

func (d Draft) WithDate(date string) Draft {
	// A new date invalidates any previously chosen time.
	d.Date = date
	d.Time = ""
	return d
}

func (d Draft) WithTime(t string) Draft {
	d.Time = t
	return d
}

func (d Draft) ClearService() Draft {
	return Draft{}
}

func (d Draft) ClearDate() Draft {
	d.Date = ""
	d.Time = ""
	return d
}

func (d Draft) ClearTime() Draft {
	d.Time = ""
	return d
}

// stepError rejects an operation attempted from the wrong step.
func stepError(want, got Step) error {
	return apperrors.InvalidInput(fmt.Sprintf("this step requires state %s, session is in %s", want, got))
}
