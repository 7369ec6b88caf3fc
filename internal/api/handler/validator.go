package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// tagPriority orders rule failures when several fields fail at once: a
// missing field is reported before a short password, which is reported
// before a malformed email.
var tagPriority = map[string]int{
	"required":      0,
	"min_length":    1,
	"email_pattern": 2,
}

// ValidationError is the single most relevant rule failure of a request.
type ValidationError struct {
	Field string
	Tag   string
	Param string
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "min_length":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field, e.Param)
	case "email_pattern":
		return e.Field + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed validation (%s)", e.Field, e.Tag)
	}
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("email_pattern", func(fl validator.FieldLevel) bool {
		return domain.ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("min_length", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return domain.PasswordLength(fl.Field().String()) >= n
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. It returns a
// *ValidationError describing the highest-priority failure.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	best := ve[0]
	for _, fe := range ve[1:] {
		if rank(fe.Tag()) < rank(best.Tag()) {
			best = fe
		}
	}
	return &ValidationError{
		Field: strings.ToLower(best.Field()),
		Tag:   best.Tag(),
		Param: best.Param(),
	}
}

func rank(tag string) int {
	if p, ok := tagPriority[tag]; ok {
		return p
	}
	return len(tagPriority)
}
