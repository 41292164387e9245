package enum

import "encoding/json"

// ReceiptMode selects between a single-student and a combined family receipt
type ReceiptMode string

const (
	ReceiptModeIndividual ReceiptMode = "individual"
	ReceiptModeFamily     ReceiptMode = "family"
)

func (m ReceiptMode) String() string {
	return string(m)
}

func (m ReceiptMode) IsValid() bool {
	return m == ReceiptModeIndividual || m == ReceiptModeFamily
}

func (m *ReceiptMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = ReceiptMode(str)
	return nil
}
