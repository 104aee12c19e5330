package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerValidations adds the custom validators for mutually exclusive fields and key files,
// and reports fields by their flag name from the label tag.
func registerValidations(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} is mutually exclusive",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	if err := validator.RegisterValidationAndTranslation(
		"readable",
		validateReadable,
		"{0} must name a readable file",
	); err != nil {
		return fmt.Errorf("registering readable validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive returns false if both the field and the one named by the parameter are set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !other.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && other.Kind() == reflect.String {
		return field.String() == "" || other.String() == ""
	}

	return true
}

// validateReadable checks that the field names a regular file that can be opened.
func validateReadable(fl validator.FieldLevel) bool {
	file, err := os.Open(fl.Field().String())
	if err != nil {
		return false
	}
	defer file.Close()

	info, err := file.Stat()

	return err == nil && info.Mode().IsRegular()
}
