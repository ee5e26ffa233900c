package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	currencyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)
	merchantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)
)

type Validator struct {
	Validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// New returns a validator that reports fields by their JSON names and knows
// the PayPay specific "currency" and "merchantid" tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const maxSplits = 2
		name := strings.SplitN(fld.Tag.Get("json"), ",", maxSplits)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
		return currencyPattern.MatchString(fl.Field().String())
	})

	mustRegister(v, "merchantid", func(fl validator.FieldLevel) bool {
		return merchantIDPattern.MatchString(fl.Field().String())
	})

	return &Validator{Validator: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
}

func (v *Validator) Validate(i any) error {
	if err := v.Validator.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.formatValidationErrors(validationErrs)
		}

		return err
	}

	return nil
}

func (v *Validator) formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrs := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := fieldPath(err)

		validationErrs = append(validationErrs, ValidationError{
			Field:   field,
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: v.generateErrorMessage(field, err),
		})
	}

	return validationErrs
}

// fieldPath drops the root struct name, so nested fields read "amount.currency".
func fieldPath(err validator.FieldError) string {
	namespace := err.Namespace()
	if _, rest, ok := strings.Cut(namespace, "."); ok && rest != "" {
		return rest
	}

	if field := err.Field(); field != "" {
		return field
	}

	return err.StructField()
}

func (v *Validator) generateErrorMessage(field string, err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "missing request param " + field
	case "currency":
		return field + " must be an ISO 4217 currency code"
	case "merchantid":
		return field + " must be 1-64 characters of letters, digits, '_' or '-'"
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, err.Param())
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}
