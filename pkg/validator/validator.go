package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fsfcare/care-api/internal/model"
)

// RegisterCustomValidators installs domain validation tags on gin's binding
// engine. Must be called once before the router is built.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("role", validRole)
}

// validRole accepts only assignable role names.
func validRole(fl validator.FieldLevel) bool {
	return model.ValidRole(fl.Field().String())
}
