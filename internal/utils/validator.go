package utils

import (
	"Potluck-Backend/pkg/potluck"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("dish_category", func(fl validator.FieldLevel) bool {
		return potluck.IsKnownCategory(fl.Field().String())
	})
}
