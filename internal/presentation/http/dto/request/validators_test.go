package request

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, req any) []apperror.FieldError {
	t.Helper()
	require.NoError(t, RegisterValidators())
	err := binding.Validator.ValidateStruct(req)
	if err == nil {
		return nil
	}
	fields := FieldErrors(err)
	require.NotNil(t, fields, "expected validation errors, got %v", err)
	return fields
}

func fieldNames(fields []apperror.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestCreatePaymentRequest(t *testing.T) {
	valid := CreatePaymentRequest{StudentID: uuid.New(), Method: "M-Pesa", PaymentDate: "2025-01-15"}
	assert.Empty(t, validate(t, &valid))

	fields := validate(t, &CreatePaymentRequest{Method: "barter", PaymentDate: "15/01/2025"})
	assert.ElementsMatch(t, []string{"student_id", "payment_method", "payment_date"}, fieldNames(fields))
	for _, f := range fields {
		switch f.Field {
		case "student_id":
			assert.Equal(t, "is required", f.Message)
		case "payment_method":
			assert.Contains(t, f.Message, "mpesa")
		case "payment_date":
			assert.Equal(t, "must be a date in YYYY-MM-DD format", f.Message)
		}
	}
}

func TestOpenReceiptSessionRequest(t *testing.T) {
	for _, size := range []string{"", "A7", "a6", " A5 ", "A4"} {
		req := OpenReceiptSessionRequest{PaymentID: uuid.New(), Size: size}
		assert.Empty(t, validate(t, &req), "size %q", size)
	}

	fields := validate(t, &OpenReceiptSessionRequest{PaymentID: uuid.New(), Mode: "class", Size: "Letter"})
	assert.ElementsMatch(t, []string{"mode", "size"}, fieldNames(fields))
}

func TestRegisterRequest(t *testing.T) {
	req := RegisterRequest{
		FirstName:       "Grace",
		LastName:        "Wanjiku",
		Email:           "grace@example.com",
		Password:        "secret123",
		PasswordConfirm: "secret124",
		SchoolName:      "Sunrise Academy",
	}
	fields := validate(t, &req)
	require.Len(t, fields, 1)
	assert.Equal(t, "password_confirm", fields[0].Field)
	assert.Equal(t, "must match password", fields[0].Message)
}

func TestUpdateSettingsRequest(t *testing.T) {
	currency, size := "kes1", "B5"
	fields := validate(t, &UpdateSettingsRequest{Currency: &currency, ReceiptSize: &size})
	assert.ElementsMatch(t, []string{"currency", "receipt_size"}, fieldNames(fields))
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("unexpected EOF")))
	assert.Nil(t, FieldErrors(nil))
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "student_id", toSnake("StudentID"))
	assert.Equal(t, "payment_date", toSnake("PaymentDate"))
	assert.Equal(t, "receipt_size", toSnake("receipt_size"))
}
