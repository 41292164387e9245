package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/pagination"
)

// StudentService handles student records
type StudentService struct {
	studentRepo repository.StudentRepository
	classRepo   repository.ClassRepository
	balances    *BalanceService
}

// NewStudentService creates a new student service
func NewStudentService(
	studentRepo repository.StudentRepository,
	classRepo repository.ClassRepository,
	balances *BalanceService,
) *StudentService {
	return &StudentService{studentRepo: studentRepo, classRepo: classRepo, balances: balances}
}

// CreateStudentInput represents the create student input
type CreateStudentInput struct {
	FirstName       string
	LastName        string
	AdmissionNumber *string
	ClassID         *uuid.UUID
	GuardianName    string
	GuardianPhone   string
	Status          enum.StudentStatus
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(ctx context.Context, input *CreateStudentInput) (*entity.Student, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrTenantRequired
	}

	admission := cleanOptional(input.AdmissionNumber)
	if err := s.ensureUniqueAdmission(ctx, admission, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.ensureClass(ctx, input.ClassID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enum.StudentStatusActive
	}
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("status must be active or inactive")
	}

	student := &entity.Student{
		TenantID:        tenantID,
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		AdmissionNumber: admission,
		ClassID:         input.ClassID,
		GuardianName:    strings.TrimSpace(input.GuardianName),
		GuardianPhone:   strings.TrimSpace(input.GuardianPhone),
		Status:          status,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return s.GetStudent(ctx, student.ID)
}

// GetStudent retrieves a student with its class
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return student, nil
}

// ListStudents lists students, optionally filtered by class and status
func (s *StudentService) ListStudents(ctx context.Context, filter repository.StudentFilter, params *pagination.Params) (*pagination.Result[entity.Student], error) {
	students, total, err := s.studentRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(students, params, total), nil
}

// UpdateStudentInput represents the update student input
type UpdateStudentInput struct {
	ID              uuid.UUID
	FirstName       *string
	LastName        *string
	AdmissionNumber *string
	ClassID         *uuid.UUID
	GuardianName    *string
	GuardianPhone   *string
	Status          *enum.StudentStatus
}

// UpdateStudent updates a student
func (s *StudentService) UpdateStudent(ctx context.Context, input *UpdateStudentInput) (*entity.Student, error) {
	student, err := s.GetStudent(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		student.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		student.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.AdmissionNumber != nil {
		admission := cleanOptional(input.AdmissionNumber)
		if err := s.ensureUniqueAdmission(ctx, admission, student.ID); err != nil {
			return nil, err
		}
		student.AdmissionNumber = admission
	}
	if input.ClassID != nil {
		if err := s.ensureClass(ctx, input.ClassID); err != nil {
			return nil, err
		}
		student.ClassID = input.ClassID
		student.Class = nil
	}
	if input.GuardianName != nil {
		student.GuardianName = strings.TrimSpace(*input.GuardianName)
	}
	if input.GuardianPhone != nil {
		student.GuardianPhone = strings.TrimSpace(*input.GuardianPhone)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("status must be active or inactive")
		}
		student.Status = *input.Status
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.GetStudent(ctx, student.ID)
}

// DeleteStudent deletes a student
func (s *StudentService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStudent(ctx, id); err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, id)
}

// GetStudentBalance returns the class fee, amount paid and balance
func (s *StudentService) GetStudentBalance(ctx context.Context, id uuid.UUID) (*StudentBalance, error) {
	return s.balances.GetStudentBalance(ctx, id)
}

func (s *StudentService) ensureUniqueAdmission(ctx context.Context, admission *string, excludeID uuid.UUID) error {
	if admission == nil {
		return nil
	}
	exists, err := s.studentRepo.AdmissionNumberExists(ctx, *admission, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflictError("Admission number already in use")
	}
	return nil
}

func (s *StudentService) ensureClass(ctx context.Context, classID *uuid.UUID) error {
	if classID == nil {
		return nil
	}
	class, err := s.classRepo.GetByID(ctx, *classID)
	if err != nil {
		return err
	}
	if class == nil {
		return apperror.NewNotFoundError("Class")
	}
	return nil
}

// cleanOptional trims s and maps blank to nil
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
