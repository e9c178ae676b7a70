// Package form turns raw submitted values into validated input records or a
// set of per-field error messages. Handlers re-render the page with those
// messages; nothing here touches HTTP beyond url.Values.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/travelxplore/site/internal/domain"
)

// NonField is the Errors key for problems that belong to no single field.
const NonField = "__all__"

// Errors maps a field name to its error messages.
type Errors map[string][]string

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// AddError appends the user-facing message for err to field.
func (e Errors) AddError(field string, err error) {
	e.Add(field, Message(err))
}

// Valid reports whether no errors were recorded.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Form is what page templates render: current values plus their errors.
type Form struct {
	Values url.Values
	Errors Errors
}

// New builds a Form. A nil errs renders as a clean form.
func New(values url.Values, errs Errors) *Form {
	if values == nil {
		values = url.Values{}
	}
	if errs == nil {
		errs = Errors{}
	}
	return &Form{Values: values, Errors: errs}
}

func (f *Form) Value(field string) string { return f.Values.Get(field) }

func (f *Form) FieldErrors(field string) []string { return f.Errors[field] }

func (f *Form) NonFieldErrors() []string { return f.Errors[NonField] }

// Checked reports whether a checkbox field is on.
func (f *Form) Checked(field string) bool { return truthy(f.Values.Get(field)) }

// Message returns the user-facing text for a domain error.
func Message(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "This username is already taken."
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "This email is already registered."
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password."
	}
	return err.Error()
}

// ConflictField returns the registration field a storage conflict belongs to.
func ConflictField(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "username", true
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "email", true
	}
	return "", false
}

var usernameRE = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("form")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRE.MatchString(fl.Field().String())
	})
	return v
}

// check runs struct-tag validation and converts failures to Errors.
func check(s any) Errors {
	errs := Errors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		errs.Add(NonField, err.Error())
		return errs
	}
	for _, fe := range ves {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "http_url", "url":
		return "Enter a valid URL."
	case "max":
		n := utf8.RuneCountInString(fmt.Sprint(fe.Value()))
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), n)
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}

// value returns the trimmed value of field.
func value(v url.Values, field string) string {
	return strings.TrimSpace(v.Get(field))
}

// truthy interprets an HTML checkbox submission.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
