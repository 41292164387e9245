package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tenantCtx() context.Context {
	return infraRepo.WithTenant(context.Background(), uuid.New())
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperror.GetAppError(err).Code
}

func TestSchoolService_UpdateProfileCreatesAndUpdates(t *testing.T) {
	repo := &fakeSchoolRepo{}
	svc := NewSchoolService(repo)
	ctx := tenantCtx()

	_, err := svc.GetProfile(ctx)
	assert.Equal(t, 404, appCode(t, err))

	name, phone := "  Sunrise Academy ", "0712000111"
	profile, err := svc.UpdateProfile(ctx, &UpdateProfileInput{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Academy", profile.Name)
	tenantID, _ := infraRepo.GetTenantID(ctx)
	assert.Equal(t, tenantID, profile.TenantID)

	motto := "Excellence"
	profile, err = svc.UpdateProfile(ctx, &UpdateProfileInput{Motto: &motto})
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Academy", profile.Name)
	assert.Equal(t, "Excellence", profile.Motto)

	blank := " "
	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{Name: &blank})
	assert.Equal(t, 400, appCode(t, err))
}

func TestClassService(t *testing.T) {
	classes := newFakeClassRepo()
	svc := NewClassService(classes)
	ctx := tenantCtx()

	class, err := svc.CreateClass(ctx, &CreateClassInput{Name: " Grade 1 ", Level: 1, MonthlyFee: dec(1000)})
	require.NoError(t, err)
	assert.Equal(t, "Grade 1", class.Name)
	assert.True(t, dec(12000).Equal(class.TotalFee()))

	_, err = svc.CreateClass(ctx, &CreateClassInput{Name: "Grade 1"})
	assert.Equal(t, 409, appCode(t, err))

	_, err = svc.CreateClass(ctx, &CreateClassInput{Name: "Grade 2", MonthlyFee: dec(-1)})
	assert.Equal(t, 400, appCode(t, err))

	annual := dec(10000)
	updated, err := svc.UpdateClass(ctx, &UpdateClassInput{ID: class.ID, AnnualFee: &annual})
	require.NoError(t, err)
	assert.True(t, dec(10000).Equal(updated.TotalFee()))

	list, err := svc.ListClasses(ctx, pagination.Default())
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	classes.students[class.ID] = 2
	assert.Equal(t, 409, appCode(t, svc.DeleteClass(ctx, class.ID)))

	classes.students[class.ID] = 0
	require.NoError(t, svc.DeleteClass(ctx, class.ID))
	_, err = svc.GetClass(ctx, class.ID)
	assert.Equal(t, 404, appCode(t, err))

	_, err = svc.CreateClass(context.Background(), &CreateClassInput{Name: "Grade 3"})
	assert.ErrorIs(t, err, apperror.ErrTenantRequired)
}

func TestStudentService(t *testing.T) {
	classes := newFakeClassRepo()
	students := newFakeStudentRepo(classes)
	payments := newFakePaymentRepo(students)
	svc := NewStudentService(students, classes, NewBalanceService(students, classes, payments))
	ctx := tenantCtx()

	grade := &entity.Class{Name: "Grade 4", AnnualFee: dec(18000)}
	require.NoError(t, classes.Create(ctx, grade))

	student, err := svc.CreateStudent(ctx, &CreateStudentInput{
		FirstName: "Jane", LastName: "Doe", AdmissionNumber: strPtr(" ADM-9 "),
		ClassID: &grade.ID, GuardianPhone: "0712 345 678",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADM-9", *student.AdmissionNumber)
	assert.Equal(t, enum.StudentStatusActive, student.Status)
	assert.Equal(t, "Grade 4", student.ClassName())
	assert.Equal(t, "254712345678", student.GuardianKey)

	_, err = svc.CreateStudent(ctx, &CreateStudentInput{FirstName: "Dup", AdmissionNumber: strPtr("ADM-9")})
	assert.Equal(t, 409, appCode(t, err))

	missing := uuid.New()
	_, err = svc.CreateStudent(ctx, &CreateStudentInput{FirstName: "Lost", ClassID: &missing})
	assert.Equal(t, 404, appCode(t, err))

	blank := ""
	updated, err := svc.UpdateStudent(ctx, &UpdateStudentInput{ID: student.ID, AdmissionNumber: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.AdmissionNumber)

	require.NoError(t, payments.Create(ctx, &entity.Payment{StudentID: student.ID, Amount: dec(20000), PaymentDate: time.Now()}))
	balance, err := svc.GetStudentBalance(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, dec(18000).Equal(balance.ClassFee))
	assert.True(t, dec(-2000).Equal(balance.Balance), "overpayment is not clamped")

	list, err := svc.ListStudents(ctx, repository.StudentFilter{ClassID: &grade.ID}, pagination.Default())
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, svc.DeleteStudent(ctx, student.ID))
	assert.Equal(t, 404, appCode(t, svc.DeleteStudent(ctx, student.ID)))
}

func TestBalanceService_NoClass(t *testing.T) {
	classes := newFakeClassRepo()
	students := newFakeStudentRepo(classes)
	payments := newFakePaymentRepo(students)
	svc := NewBalanceService(students, classes, payments)
	ctx := tenantCtx()

	student := &entity.Student{FirstName: "Solo"}
	require.NoError(t, students.Create(ctx, student))

	balance, err := svc.GetStudentBalance(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())

	payments.sumErr[student.ID] = errBoom
	_, err = svc.GetStudentBalance(ctx, student.ID)
	assert.ErrorIs(t, err, errBoom)

	_, err = svc.GetStudentBalance(ctx, uuid.New())
	assert.Equal(t, 404, appCode(t, err))
}

func TestPaymentService(t *testing.T) {
	classes := newFakeClassRepo()
	students := newFakeStudentRepo(classes)
	payments := newFakePaymentRepo(students)
	svc := NewPaymentService(payments, students, zap.NewNop())
	today := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }
	ctx := tenantCtx()

	student := &entity.Student{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, students.Create(ctx, student))
	recorder := uuid.New()

	payment, err := svc.CreatePayment(ctx, &CreatePaymentInput{
		StudentID: student.ID, Amount: decimal.RequireFromString("1500.456"),
		Method: enum.PaymentMethodCash, Reference: " R1 ", RecordedBy: recorder,
	})
	require.NoError(t, err)
	assert.Equal(t, "1500.46", payment.Amount.StringFixed(2))
	assert.Equal(t, today, payment.PaymentDate)
	assert.Equal(t, "R1", payment.Reference)
	require.NotNil(t, payment.RecordedBy)
	assert.Equal(t, recorder, *payment.RecordedBy)
	assert.Equal(t, "Jane Doe", payment.Student.FullName())

	tests := []struct {
		name  string
		input CreatePaymentInput
		code  int
	}{
		{name: "zero amount", input: CreatePaymentInput{StudentID: student.ID, Amount: decimal.Zero, Method: enum.PaymentMethodCash}, code: 400},
		{name: "negative amount", input: CreatePaymentInput{StudentID: student.ID, Amount: dec(-5), Method: enum.PaymentMethodCash}, code: 400},
		{name: "bad method", input: CreatePaymentInput{StudentID: student.ID, Amount: dec(5), Method: "barter"}, code: 400},
		{name: "unknown student", input: CreatePaymentInput{StudentID: uuid.New(), Amount: dec(5), Method: enum.PaymentMethodCash}, code: 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePayment(ctx, &tt.input)
			assert.Equal(t, tt.code, appCode(t, err))
		})
	}

	got, err := svc.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	list, err := svc.ListPayments(ctx, repository.PaymentFilter{StudentID: &student.ID}, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)

	require.NoError(t, svc.DeletePayment(ctx, payment.ID))
	_, err = svc.GetPayment(ctx, payment.ID)
	assert.Equal(t, 404, appCode(t, err))
}
