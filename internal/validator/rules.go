package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phoneRegexp accepts international numbers with an optional leading plus,
// 6 to 15 digits, ignoring common separators.
var phoneRegexp = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{5,18}$`)

func registerCustomRules(v *validator.Validate) error {
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
}
