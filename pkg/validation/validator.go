package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/edu-platform/pkg/apperror"
)

// aliases are the domain enums and shorthands accepted in `validate` / `binding` tags.
var aliases = map[string]string{
	"pwd":                "min=8",
	"phone":              "e164",
	"course_level":       "oneof=beginner intermediate advanced",
	"project_level":      "oneof=beginner intermediate expert",
	"project_status":     "oneof=planning ongoing completed",
	"opportunity_type":   "oneof=job internship project",
	"application_status": "oneof=pending reviewed accepted rejected",
}

var validate = configure(validator.New())

func configure(v *validator.Validate) *validator.Validate {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for alias, tags := range aliases {
		v.RegisterAlias(alias, tags)
	}
	return v
}

// Init configures the validator used by Gin's binding the same way as Struct.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// Struct validates s against its `validate` tags. Failures come back as an
// apperror Validation error whose details are keyed by JSON field name.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return apperror.Validation("validation failed").WithDetails(ToDetails(verrs))
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		if ute != nil && ute.Field != "" {
			return map[string]string{ute.Field: "must be a " + ute.Type.String()}
		}
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// fieldPath drops the root struct name: "CreateCourseInput.content[0].title" -> "content[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "required_with":
		return "is required when " + param + " is present"
	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164", "phone":
		return "must be a valid phone number"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		if kind == reflect.Slice {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gtefield":
		return "must be greater than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "unique":
		return "must contain unique items"

	case "pwd":
		return "min length 8"
	case "course_level", "project_level", "project_status", "opportunity_type", "application_status":
		return "must be one of: " + strings.Join(strings.Fields(strings.TrimPrefix(aliases[tag], "oneof=")), ", ")

	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
