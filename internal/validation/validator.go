// Package validation registers the combo-specific binding tags on gin's validator and turns
// validator errors into readable messages.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"comboshare/internal/notation"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	registerOnce sync.Once
	registerErr  error
)

// PlayStyles lists the accepted control schemes.
var PlayStyles = []string{"MODERN", "CLASSIC"}

func isPlayStyle(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, ps := range PlayStyles {
		if v == ps {
			return true
		}
	}
	return false
}

// isNotation requires at least one token and no token longer than 64 bytes.
func isNotation(fl validator.FieldLevel) bool {
	tokens := notation.Tokenize(fl.Field().String())
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if len(tok) > 64 {
			return false
		}
	}
	return true
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"playstyle": isPlayStyle,
		"notation":  isNotation,
		"notblank":  isNotBlank,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterBindings installs the custom tags on gin's default validator. Call once at startup
// before routes are served; later calls are no-ops.
func RegisterBindings() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerErr = register(v)
	})
	return registerErr
}

// Get returns a standalone validator with the custom tags registered.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := register(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

var messages = map[string]string{
	"required":  "%s is required",
	"email":     "%s must be a valid email address",
	"playstyle": "%s must be MODERN or CLASSIC",
	"notation":  "%s must contain combo notation",
	"notblank":  "%s must not be blank",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

// Message flattens a binding error into one line. Non-validation errors (bad JSON) pass through.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, translate(fe))
	}
	return strings.Join(out, "; ")
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[fe.Tag()]; ok {
		msg := fmt.Sprintf(tmpl, field, fe.Param())
		if fe.Kind().String() == "string" && (fe.Tag() == "min" || fe.Tag() == "max") {
			msg += " characters"
		}
		return msg
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
