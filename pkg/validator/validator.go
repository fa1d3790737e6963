package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with domain validations registered
func New() *CustomValidator {
	v := validator.New()

	// meetingtype: value must be one of the known meeting type enums
	_ = v.RegisterValidation("meetingtype", func(fl validator.FieldLevel) bool {
		return entities.MeetingType(fl.Field().String()).IsValid()
	})

	// markertype: value must be one of the known marker type enums
	_ = v.RegisterValidation("markertype", func(fl validator.FieldLevel) bool {
		return entities.MarkerType(fl.Field().String()).IsValid()
	})

	// meetingstatus: value must be a known pipeline state
	_ = v.RegisterValidation("meetingstatus", func(fl validator.FieldLevel) bool {
		return entities.MeetingStatus(fl.Field().String()).IsValid()
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
