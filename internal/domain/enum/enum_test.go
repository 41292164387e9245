package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodLabel(t *testing.T) {
	tests := []struct {
		method PaymentMethod
		want   string
	}{
		{PaymentMethodCash, "Cash"},
		{PaymentMethodMpesa, "M-Pesa"},
		{PaymentMethodBankTransfer, "Bank Transfer"},
		{PaymentMethodCheque, "Cheque"},
		{PaymentMethodCard, "Card"},
		{PaymentMethodOther, "Other"},
		{PaymentMethod("barter"), "barter"},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.Label())
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	assert.Equal(t, PaymentMethodMpesa, ParsePaymentMethod("M-Pesa"))
	assert.Equal(t, PaymentMethodCash, ParsePaymentMethod(" CASH "))
	assert.Equal(t, PaymentMethodBankTransfer, ParsePaymentMethod("Bank Transfer"))
	assert.False(t, ParsePaymentMethod("barter").IsValid())
}

func TestPaymentMethodUnmarshalNormalizes(t *testing.T) {
	var body struct {
		Method PaymentMethod `json:"method"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"method":"Bank Transfer"}`), &body))
	assert.Equal(t, PaymentMethodBankTransfer, body.Method)
}

func TestSubscriptionStatusScan(t *testing.T) {
	var s SubscriptionStatus
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, SubscriptionStatusTrial, s)
	require.NoError(t, s.Scan([]byte("active")))
	assert.Equal(t, SubscriptionStatusActive, s)
	assert.False(t, SubscriptionStatus("paused").IsValid())
}
