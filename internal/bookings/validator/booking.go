package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"roombook/pkg/logger"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// isoLayouts are tried in order; the first one that parses wins.
var isoLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var fieldLabels = map[string]string{
	"name":         "Name",
	"email":        "Email",
	"checkInDate":  "Check-in date",
	"checkOutDate": "Check-out date",
	"roomNumber":   "Room number",
}

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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return lowerFirst(fld.Name)
		}
		return name
	})

	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		log.Fatal("Failed to register 'isodate' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// ParseISODate accepts a calendar date (2025-01-12) or an RFC 3339 timestamp
// and returns it in UTC.
func ParseISODate(value string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", value)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseISODate(fl.Field().String())
	return err == nil
}

func (v *BookingValidator) ValidateCreate(req *model.CreateBookingRequest) (*model.CreateInput, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	dates, err := v.validateWithRange(req, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	return &model.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Range: dates,
	}, nil
}

func (v *BookingValidator) ValidateModify(req *model.ModifyBookingRequest) (*model.ModifyInput, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	dates, err := v.validateWithRange(req, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	return &model.ModifyInput{
		Email: req.Email,
		Range: dates,
	}, nil
}

func (v *BookingValidator) ValidateCancel(req *model.CancelBookingRequest) (*model.CancelInput, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := v.validateStruct(req); err != nil {
		return nil, err
	}

	return &model.CancelInput{
		Email:      req.Email,
		RoomNumber: req.RoomNumber,
	}, nil
}

func (v *BookingValidator) ValidateEmail(email string) (string, error) {
	lookup := &model.EmailLookup{Email: sanitizer.NormalizeEmail(email)}
	if err := v.validateStruct(lookup); err != nil {
		return "", err
	}
	return lookup.Email, nil
}

func (v *BookingValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			translated := v.translateValidationErrors(validationErrs)
			v.logger.Debug("Request validation failed", "error", translated)
			return translated
		}
		return err
	}
	return nil
}

// validateWithRange runs the struct tags and the date order check together,
// so a request with several problems reports all of them at once.
func (v *BookingValidator) validateWithRange(s any, checkIn, checkOut string) (model.DateRange, error) {
	var problems ValidationErrors
	if err := v.validateStruct(s); err != nil && !errors.As(err, &problems) {
		return model.DateRange{}, err
	}

	in, inErr := ParseISODate(checkIn)
	out, outErr := ParseISODate(checkOut)
	if inErr != nil || outErr != nil {
		// The isodate tag has already reported the unparsable date.
		if len(problems) == 0 {
			field, label := "checkInDate", "Check-in date"
			if inErr == nil {
				field, label = "checkOutDate", "Check-out date"
			}
			problems = append(problems, ValidationError{Field: field, Message: label + " must be a valid ISO8601 date"})
		}
		return model.DateRange{}, problems
	}

	dates := model.NewDateRange(in, out)
	if !dates.Valid() {
		problems = append(problems, ValidationError{
			Field:   "checkOutDate",
			Message: "Check-out date must be after check-in date",
		})
	}
	if len(problems) > 0 {
		return model.DateRange{}, problems
	}
	return dates, nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		label, ok := fieldLabels[err.Field()]
		if !ok {
			label = err.Field()
		}
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", label)
		case "email":
			message = fmt.Sprintf("%s must be valid", label)
		case "isodate":
			message = fmt.Sprintf("%s must be a valid ISO8601 date", label)
		case "min":
			message = fmt.Sprintf("%s must be a valid integer of at least %s", label, err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
