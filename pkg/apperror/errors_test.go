package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("opening session: %w", NewNotFoundError("Payment"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Payment not found", appErr.Message)

	plain := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.False(t, IsAppError(errors.New("boom")))
	assert.True(t, IsAppError(ErrPayerNotRemovable))
}

func TestSubscriptionEndedIsPaymentRequired(t *testing.T) {
	assert.Equal(t, http.StatusPaymentRequired, ErrSubscriptionEnded.Code)
}
