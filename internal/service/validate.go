package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

// NewValidator builds the shared validator with the portal's custom
// rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("portal_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Known()
	})
	_ = v.RegisterValidation("portal_shift", func(fl validator.FieldLevel) bool {
		switch models.Shift(fl.Field().String()) {
		case models.ShiftMorning, models.ShiftNight:
			return true
		default:
			return false
		}
	})
	_ = v.RegisterValidation("portal_date", func(fl validator.FieldLevel) bool {
		return !models.ParseDate(fl.Field().String()).IsZero()
	})
	return v
}

func validationError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
}
