package subscriptions

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/samber/lo"
)

// FormErrors maps a field to its validation messages.
type FormErrors struct {
	Fields map[string][]string
}

func (e *FormErrors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *FormErrors) Empty() bool {
	return len(e.Fields) == 0
}

func (e *FormErrors) Error() string {
	fields := lo.Keys(e.Fields)
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(e.Fields[field], ", ")))
	}

	return "invalid subscription: " + strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateWindow, domain.Subscription{})
	return v
}

func validateWindow(sl validator.StructLevel) {
	sub := sl.Current().Interface().(domain.Subscription)
	if sub.BeginsAt.IsZero() {
		return
	}

	if err := sub.Validate(); err != nil {
		sl.ReportError(sub.EndsAt, "EndsAt", "EndsAt", "gtfield", "BeginsAt")
	}
}

// addValidationErrors copies validator failures into e, other errors are returned.
func (e *FormErrors) addValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, fe := range verrs {
		e.Add(fieldName(fe.StructNamespace()), validationMessage(fe))
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gtfield":
		return "must be after " + toSnake(fe.Param())
	default:
		return "is invalid"
	}
}

// fieldName turns "Subscription.BillAddress.Zipcode" into "bill_address.zipcode".
func fieldName(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}

	return toSnake(namespace)
}

func toSnake(s string) string {
	var b strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && unicode.IsLower(runes[i-1]) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
