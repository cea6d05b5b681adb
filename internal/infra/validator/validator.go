// Package validator adapts go-playground/validator to the domain validation error.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"userapi/internal/domain/entity"
	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/domain/service"
	"userapi/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Per-field rules for partial updates, mirroring the UserCreate struct tags.
const (
	nameRules  = "required,notblank,min=2,max=80"
	emailRules = "required,email"
	ageRules   = "gte=0"
)

// Validator validates request structs and user inputs.
type Validator struct {
	validate *playground.Validate
}

var _ service.UserValidator = (*Validator)(nil)

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}

		return name
	})
	_ = v.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// NewUserValidator exposes the validator through the domain interface.
func NewUserValidator(v *Validator) service.UserValidator {
	return v
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.toDomainError(v.validate.Struct(i))
}

// ValidateCreate checks a creation payload.
func (v *Validator) ValidateCreate(input *entity.UserCreate) error {
	if input == nil {
		return domainerrors.NewValidationError(map[string]string{"body": "request body is required"})
	}

	return v.toDomainError(v.validate.Struct(input))
}

// ValidateUpdate checks only the fields present in a partial update.
func (v *Validator) ValidateUpdate(input *entity.UserUpdate) error {
	if input == nil {
		return nil
	}

	fields := make(map[string]string)
	checkField(fields, "name", input.Name, func(val string) error { return v.validate.Var(val, nameRules) })
	checkField(fields, "email", input.Email, func(val string) error { return v.validate.Var(val, emailRules) })
	checkField(fields, "age", input.Age, func(val int) error { return v.validate.Var(val, ageRules) })
	checkField(fields, "is_active", input.IsActive, func(bool) error { return nil })

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}

	return nil
}

func checkField[T any](fields map[string]string, name string, field entity.Field[T], check func(T) error) {
	if !field.Set {
		return
	}
	if field.Null {
		fields[name] = "must not be null"

		return
	}

	err := check(field.Value)
	if err == nil {
		return
	}

	var validationErrs playground.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fields[name] = describe(validationErrs[0])

		return
	}
	fields[name] = err.Error()
}

func (v *Validator) toDomainError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validate")
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		fields[fe.Field()] = describe(fe)
	}

	return domainerrors.NewValidationError(fields)
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
