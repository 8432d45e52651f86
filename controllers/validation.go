package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"learntrack/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateCompletions checks every element of the batch and collects field
// errors keyed "[index].field", so the caller can see which element failed.
func validateCompletions(completions []models.CompletedLessonRequest) map[string]string {
	fieldErrors := make(map[string]string)
	for i, completion := range completions {
		err := validate.Struct(completion)
		if err == nil {
			continue
		}

		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			fieldErrors[fmt.Sprintf("[%d]", i)] = err.Error()
			continue
		}
		for _, fieldError := range validationErrors {
			key := fmt.Sprintf("[%d].%s", i, fieldError.Field())
			fieldErrors[key] = validationMessage(fieldError)
		}
	}
	return fieldErrors
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed on the %q rule", fieldError.Tag())
	}
}
