package shared

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process wide validator. Field errors are keyed by the
// json tag so they line up with form field names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs struct validation and converts failures into a ValidationError.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if _, exists := fields[key]; exists {
			continue
		}
		fields[key] = fieldMessage(fe)
	}
	return NewValidationError(fields)
}

// HumanizeField turns a field key such as "country_id" into "Country".
func HumanizeField(key string) string {
	key = strings.TrimSuffix(key, "_id")
	key = strings.ReplaceAll(key, "_", " ")
	return cases.Title(language.English).String(key)
}

func fieldMessage(fe validator.FieldError) string {
	label := HumanizeField(fe.Field())
	switch fe.Tag() {
	case "required", "required_with", "gt":
		if fe.Tag() == "gt" && fe.Param() != "0" {
			return label + " must be greater than " + fe.Param()
		}
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return label + " must be at least " + fe.Param() + " characters"
		}
		return label + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return label + " must be at most " + fe.Param() + " characters"
		}
		return label + " must be at most " + fe.Param()
	case "len":
		return label + " must be exactly " + fe.Param() + " characters"
	case "gte":
		return label + " must be at least " + fe.Param()
	case "lte":
		return label + " must be at most " + fe.Param()
	case "email":
		return "Invalid email address"
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield":
		return label + " does not match"
	default:
		return label + " is invalid"
	}
}
