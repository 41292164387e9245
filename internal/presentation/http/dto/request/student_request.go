package request

import "github.com/google/uuid"

// CreateStudentRequest represents a student creation request
type CreateStudentRequest struct {
	FirstName       string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName        string     `json:"last_name" binding:"required,min=1,max=100"`
	AdmissionNumber *string    `json:"admission_number" binding:"omitempty,max=50"`
	ClassID         *uuid.UUID `json:"class_id"`
	GuardianName    string     `json:"guardian_name" binding:"omitempty,max=255"`
	GuardianPhone   string     `json:"guardian_phone" binding:"omitempty,max=50"`
	Status          string     `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateStudentRequest represents a student update request
type UpdateStudentRequest struct {
	FirstName       *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName        *string    `json:"last_name" binding:"omitempty,min=1,max=100"`
	AdmissionNumber *string    `json:"admission_number" binding:"omitempty,max=50"`
	ClassID         *uuid.UUID `json:"class_id"`
	GuardianName    *string    `json:"guardian_name" binding:"omitempty,max=255"`
	GuardianPhone   *string    `json:"guardian_phone" binding:"omitempty,max=50"`
	Status          *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// StudentFilterRequest represents student list query parameters
type StudentFilterRequest struct {
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
	Status  string `form:"status" binding:"omitempty,oneof=active inactive"`
}
