package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentForm struct {
	PaymentMonth  string  `json:"paymentMonth" validate:"required,payment_month"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,payment_method"`
	Target        string  `json:"target" validate:"omitempty,target_audience"`
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	v := New()
	err := v.Validate(&paymentForm{
		PaymentMonth:  "January",
		Amount:        4500,
		PaymentMethod: "BANK_SLIP",
		Target:        "PREMIUM",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&paymentForm{
		PaymentMonth:  "Januar",
		Amount:        -5,
		PaymentMethod: "CASH",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "paymentMonth")
	assert.Contains(t, vErr.Errors, "amount")
	assert.Contains(t, vErr.Errors, "paymentMethod")
	assert.Equal(t, "Must be BANK_SLIP or ONLINE_PAYMENT", vErr.Errors["paymentMethod"])
}

func TestValidate_TargetAudienceRule(t *testing.T) {
	v := New()

	err := v.Validate(&paymentForm{
		PaymentMonth:  "June",
		Amount:        100,
		PaymentMethod: "ONLINE_PAYMENT",
		Target:        "VIP",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "target")
}
