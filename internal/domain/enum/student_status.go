package enum

// StudentStatus marks whether a student is currently enrolled
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

func (s StudentStatus) IsValid() bool {
	return s == StudentStatusActive || s == StudentStatusInactive
}
