package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validators "github.com/go-playground/validator/v10"
)

// isoDateLayout is the only calendar date format the API accepts
const isoDateLayout = "2006-01-02"

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("isodate", isoDate)
	return &validator{
		validator: v,
	}
}

// ValidateStruct func - returns nil or an error whose message lists each
// failing field in a human-readable form
func (v *validator) ValidateStruct(inf interface{}) error {
	err := v.validator.Struct(inf)
	if err == nil {
		return nil
	}
	var fieldErrs validators.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return errors.New(strings.Join(Messages(fieldErrs), "; "))
}

// Messages renders each field error as one sentence
func Messages(errs validators.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", field))
		case "isodate":
			out = append(out, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "gte", "min":
			out = append(out, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}

// isoDate accepts an empty value or a real YYYY-MM-DD calendar date
func isoDate(fl validators.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(isoDateLayout, value)
	return err == nil
}
