// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Display colors are '#' plus exactly six hex digits; the three-digit CSS
// shorthand is not accepted.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("category_kind", validateCategoryKind)
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("event_state", validateEventState)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateEventState(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "planning", "active", "finished":
		return true
	}
	return false
}
