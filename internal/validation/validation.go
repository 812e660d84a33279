// Package validation wraps a shared go-playground validator with the
// taskboard enum and date rules, and converts its failures into
// apperr.ValidationError field maps.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/monocle-dev/taskboard/internal/apperr"
	"github.com/monocle-dev/taskboard/internal/models"
)

const DateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("isodate", validateDate)
	_ = validate.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("project_status", func(fl validator.FieldLevel) bool {
		return models.ProjectStatus(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("task_priority", func(fl validator.FieldLevel) bool {
		return models.TaskPriority(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("member_role", func(fl validator.FieldLevel) bool {
		return models.MemberRole(fl.Field().String()).Valid()
	})
}

// Struct validates v and returns nil or an *apperr.ValidationError keyed by
// the json field names.
func Struct(v any) *apperr.ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verr := apperr.NewValidationError()

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}

	return verr
}

// DecodeError turns a JSON value of the wrong type into a field error on the
// offending key, worded from the validate tag of the target field. It returns
// nil for syntax errors and anything else that is not tied to one field.
func DecodeError(err error, v any) *apperr.ValidationError {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" {
		return nil
	}

	verr := apperr.NewValidationError()
	verr.Add(ute.Field, typeMessage(ute.Field, fieldTag(v, ute.Field), ute.Type))

	return verr
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and truncates it to
// a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}

	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "required_without":
		return fmt.Sprintf("The %s field is required when %s is not present.", field, strings.ToLower(fe.Param()))
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "uuid", "uuid4", "id":
		return fmt.Sprintf("The %s field must be a valid UUID.", field)
	case "isodate":
		return fmt.Sprintf("The %s field must be a valid date.", field)
	case "project_status", "task_status", "task_priority", "member_role":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// fieldTag returns the validate tag of the struct field decoded from the json
// key name, or "" when v has no such field.
func fieldTag(v any, name string) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if strings.SplitN(f.Tag.Get("json"), ",", 2)[0] == name {
			return f.Tag.Get("validate")
		}
	}
	return ""
}

func typeMessage(key, tag string, target reflect.Type) string {
	field := strings.ReplaceAll(key, "_", " ")

	for _, rule := range strings.Split(tag, ",") {
		switch rule {
		case "isodate":
			return fmt.Sprintf("The %s field must be a valid date.", field)
		case "id", "uuid":
			return fmt.Sprintf("The %s field must be a valid UUID.", field)
		case "email":
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		case "project_status", "task_status", "task_priority", "member_role":
			return fmt.Sprintf("The selected %s is invalid.", field)
		}
	}

	if target != nil {
		switch target.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s field must be a string.", field)
		case reflect.Bool:
			return fmt.Sprintf("The %s field must be true or false.", field)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
	}

	return fmt.Sprintf("The %s field is invalid.", field)
}
