package binder

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// notBlankValidator rejects strings made up only of whitespace. Pair it with
// omitnil on optional pointer fields so that an absent value is still allowed
// while a present one has to carry content.
func notBlankValidator(fl validator.FieldLevel) bool {
	field := fl.Field()
	for field.Kind() == reflect.Ptr || field.Kind() == reflect.Interface {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
