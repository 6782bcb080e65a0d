// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"minhasfinancas/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("event_kind", validateEventKind)
		_ = v.RegisterValidation("bank_id", validateBankID)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateEventKind(fl validator.FieldLevel) bool {
	switch models.EventKind(fl.Field().String()) {
	case models.EventKindReceita, models.EventKindDespesa:
		return true
	}
	return false
}

func validateBankID(fl validator.FieldLevel) bool {
	return models.FindBank(fl.Field().String()) != nil
}
