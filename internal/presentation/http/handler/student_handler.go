package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
)

// StudentHandler handles student-related HTTP requests
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// List handles listing students, optionally by class or status
func (h *StudentHandler) List(c *gin.Context) {
	var filter request.StudentFilterRequest
	if !bindQuery(c, &filter) {
		return
	}
	params, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.studentService.ListStudents(c.Request.Context(), repository.StudentFilter{
		ClassID: parseOptionalUUID(filter.ClassID),
		Status:  filter.Status,
	}, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Students retrieved successfully", result)
}

// Create handles enrolling a student
func (h *StudentHandler) Create(c *gin.Context) {
	var req request.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), &service.CreateStudentInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		AdmissionNumber: req.AdmissionNumber,
		ClassID:         req.ClassID,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
		Status:          enum.StudentStatus(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Student created successfully", student)
}

// Get handles getting a single student
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student retrieved successfully", student)
}

// Update handles updating a student
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateStudentInput{
		ID:              id,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		AdmissionNumber: req.AdmissionNumber,
		ClassID:         req.ClassID,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
	}
	if req.Status != nil {
		status := enum.StudentStatus(*req.Status)
		input.Status = &status
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student updated successfully", student)
}

// Delete handles deleting a student
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student deleted successfully", nil)
}

// Balance returns the student's class fee, total paid and balance
func (h *StudentHandler) Balance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	balance, err := h.studentService.GetStudentBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student balance retrieved successfully", balance)
}
