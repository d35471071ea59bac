package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/enfluent/autograde/models"
)

var jsonFieldNames sync.Once

// UseJSONFieldNames makes validation errors report the JSON name of a field
// instead of the Go struct field name. gin's validator is process-wide, so the
// tag-name func is registered only on the first call.
func UseJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// fieldErrors converts a binding failure into the 422 error list.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]models.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, models.FieldError{
				Loc:  location(fe.Namespace()),
				Msg:  validationMessage(fe),
				Type: "value_error." + fe.Tag(),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []models.FieldError{{
			Loc:  loc,
			Msg:  fmt.Sprintf("value is not a valid %s (got %s)", typeName(typeErr.Type), typeErr.Value),
			Type: "type_error",
		}}
	}

	if errors.Is(err, io.EOF) {
		return []models.FieldError{{Loc: []string{"body"}, Msg: "field required", Type: "value_error.missing"}}
	}

	return []models.FieldError{{
		Loc:  []string{"body"},
		Msg:  "invalid JSON body: " + err.Error(),
		Type: "value_error.jsondecode",
	}}
}

// location turns "GradingRequest.answers[0].data" into ["body", "answers[0]", "data"].
func location(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 {
		parts[0] = "body"
	}
	return parts
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("ensure this value has at least %s items", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int64, reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}
