package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// PaymentMethod is the code stored with a payment
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMpesa        PaymentMethod = "mpesa"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOther        PaymentMethod = "other"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash:         "Cash",
	PaymentMethodMpesa:        "M-Pesa",
	PaymentMethodBankTransfer: "Bank Transfer",
	PaymentMethodCheque:       "Cheque",
	PaymentMethodCard:         "Card",
	PaymentMethodOther:        "Other",
}

// PaymentMethods lists every known code in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodMpesa,
		PaymentMethodBankTransfer,
		PaymentMethodCheque,
		PaymentMethodCard,
		PaymentMethodOther,
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label returns the display label printed on receipts. Unknown codes are
// shown as-is.
func (m PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}

// IsValid reports whether m is a known code
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// ParsePaymentMethod normalizes user input ("M-Pesa", " CASH ") to a code
func ParsePaymentMethod(s string) PaymentMethod {
	code := strings.ToLower(strings.TrimSpace(s))
	code = strings.NewReplacer("-", "", " ", "_").Replace(code)
	return PaymentMethod(code)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = ParsePaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
