package validator

import (
	"github.com/go-playground/validator/v10"

	"insurancelk_backend/internal/models"
)

var months = map[string]bool{
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
}

// registerDomainRules wires the domain-specific validation tags.
func registerDomainRules(v *validator.Validate) error {
	if err := v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		m := models.PaymentMethod(fl.Field().String())
		return m == models.PaymentMethodBankSlip || m == models.PaymentMethodOnline
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("target_audience", func(fl validator.FieldLevel) bool {
		return models.ValidTargetAudience(models.TargetAudience(fl.Field().String()))
	}); err != nil {
		return err
	}

	return v.RegisterValidation("payment_month", func(fl validator.FieldLevel) bool {
		return months[fl.Field().String()]
	})
}
