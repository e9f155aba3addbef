package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Tamoora69/abdeen-barber-shop/pkg/catalog"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/logger"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
)

var (
	// Egyptian mobile numbers: exactly 11 digits after stripping separators,
	// always starting 01. The older page copy also accepted 12 digits; that
	// variant is not honored here.
	phoneRegex = regexp.MustCompile(`^01\d{9}$`)

	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AppointmentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAppointmentValidator(log *logger.Logger) *AppointmentValidator {
	v := validator.New()

	if err := v.RegisterValidation("egyptian_phone", validateEgyptianPhone); err != nil {
		log.Fatal("Failed to register 'egyptian_phone' validator", "error", err)
	}

	return &AppointmentValidator{
		validate: v,
		logger:   log,
	}
}

func validateEgyptianPhone(fl validator.FieldLevel) bool {
	return ValidPhone(fl.Field().String())
}

// ValidPhone checks an already digit-normalized phone string.
func ValidPhone(digits string) bool {
	return phoneRegex.MatchString(digits)
}

// ValidName checks a customer name after whitespace normalization.
func ValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// ValidDate checks the YYYY-MM-DD calendar-date key. The regex pins the
// zero-padded shape; time.Parse rejects dates that do not exist on the
// calendar, like a 13th month or February 30th.
func ValidDate(date string) bool {
	if !dateRegex.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func (v *AppointmentValidator) Validate(appt *model.Appointment) error {
	if err := v.validate.Struct(appt); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !ValidName(appt.CustomerName) {
		return ValidationErrors{
			ValidationError{Field: "CustomerName", Message: "customer_name cannot be empty"},
		}
	}

	if !ValidPhone(appt.CustomerPhone) {
		return ValidationErrors{
			ValidationError{Field: "CustomerPhone", Message: "customer_phone must be 11 digits starting with 01"},
		}
	}

	if !catalog.Exists(appt.ServiceID) {
		return ValidationErrors{
			ValidationError{Field: "ServiceID", Message: fmt.Sprintf("unknown service: %s", appt.ServiceID)},
		}
	}

	return nil
}

func (v *AppointmentValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "egyptian_phone":
			message = fmt.Sprintf("%s must be 11 digits starting with 01", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
