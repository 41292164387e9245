package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

type fakeClassRepo struct {
	mu      sync.Mutex
	classes map[uuid.UUID]*entity.Class
	// students counts students per class for CountStudents
	students map[uuid.UUID]int64
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{}, students: map[uuid.UUID]int64{}}
}

func (r *fakeClassRepo) Create(_ context.Context, c *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.classes[c.ID] = &cp
	return nil
}

func (r *fakeClassRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClassRepo) Update(ctx context.Context, c *entity.Class) error {
	return r.Create(ctx, c)
}

func (r *fakeClassRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, id)
	return nil
}

func (r *fakeClassRepo) List(_ context.Context, _ *pagination.Params) ([]entity.Class, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, int64(len(out)), nil
}

func (r *fakeClassRepo) NameExists(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.classes {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClassRepo) CountStudents(_ context.Context, classID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.students[classID], nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[uuid.UUID]*entity.Student
	classes  *fakeClassRepo
	// guardianErr makes ListByGuardianKey fail
	guardianErr error
}

func newFakeStudentRepo(classes *fakeClassRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: map[uuid.UUID]*entity.Student{}, classes: classes}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.BeforeSave(nil)
	cp := *s
	cp.Class = nil
	r.students[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	r.mu.Lock()
	s, ok := r.students[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.withClass(ctx, *s), nil
}

func (r *fakeStudentRepo) withClass(ctx context.Context, s entity.Student) *entity.Student {
	if s.ClassID != nil && r.classes != nil {
		s.Class, _ = r.classes.GetByID(ctx, *s.ClassID)
	}
	return &s
}

func (r *fakeStudentRepo) Update(ctx context.Context, s *entity.Student) error {
	return r.Create(ctx, s)
}

func (r *fakeStudentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) List(ctx context.Context, filter repository.StudentFilter, _ *pagination.Params) ([]entity.Student, int64, error) {
	r.mu.Lock()
	var matched []entity.Student
	for _, s := range r.students {
		if filter.ClassID != nil && (s.ClassID == nil || *s.ClassID != *filter.ClassID) {
			continue
		}
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		matched = append(matched, *s)
	}
	r.mu.Unlock()
	out := make([]entity.Student, 0, len(matched))
	for _, s := range matched {
		out = append(out, *r.withClass(ctx, s))
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudentRepo) ListByGuardianKey(ctx context.Context, key string) ([]entity.Student, error) {
	if r.guardianErr != nil {
		return nil, r.guardianErr
	}
	r.mu.Lock()
	var matched []entity.Student
	for _, s := range r.students {
		if s.GuardianKey == key {
			matched = append(matched, *s)
		}
	}
	r.mu.Unlock()
	sort.Slice(matched, func(i, j int) bool { return matched[i].FirstName < matched[j].FirstName })
	out := make([]entity.Student, 0, len(matched))
	for _, s := range matched {
		out = append(out, *r.withClass(ctx, s))
	}
	return out, nil
}

func (r *fakeStudentRepo) AdmissionNumberExists(_ context.Context, adm string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.AdmissionNumber != nil && *s.AdmissionNumber == adm && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.Payment
	students *fakeStudentRepo
	// sumErr makes SumByStudent fail for the listed students
	sumErr map[uuid.UUID]error
}

func newFakePaymentRepo(students *fakeStudentRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID]*entity.Payment{}, students: students, sumErr: map[uuid.UUID]error{}}
}

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	cp.Student = nil
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.mu.Lock()
	p, ok := r.payments[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	cp := *p
	if r.students != nil {
		cp.Student, _ = r.students.GetByID(ctx, cp.StudentID)
	}
	return &cp, nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) List(ctx context.Context, filter repository.PaymentFilter, _ *pagination.Params) ([]entity.Payment, int64, error) {
	all, err := r.ListAll(ctx, filter)
	return all, int64(len(all)), err
}

func (r *fakePaymentRepo) ListAll(ctx context.Context, filter repository.PaymentFilter) ([]entity.Payment, error) {
	r.mu.Lock()
	var out []entity.Payment
	for _, p := range r.payments {
		if filter.StudentID != nil && p.StudentID != *filter.StudentID {
			continue
		}
		if filter.Method != "" && string(p.Method) != filter.Method {
			continue
		}
		out = append(out, *p)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	for i := range out {
		if r.students != nil {
			out[i].Student, _ = r.students.GetByID(ctx, out[i].StudentID)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByStudent(_ context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.sumErr[studentID]; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range r.payments {
		if p.StudentID == studentID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

type fakeSchoolRepo struct {
	mu      sync.Mutex
	profile *entity.SchoolProfile
	err     error
}

func (r *fakeSchoolRepo) Get(context.Context) (*entity.SchoolProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.profile == nil {
		return nil, nil
	}
	cp := *r.profile
	return &cp, nil
}

func (r *fakeSchoolRepo) Save(_ context.Context, p *entity.SchoolProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.profile = &cp
	return nil
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*entity.Tenant
	members map[uuid.UUID]map[uuid.UUID]enum.MemberRole
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		tenants: map[uuid.UUID]*entity.Tenant{},
		members: map[uuid.UUID]map[uuid.UUID]enum.MemberRole{},
	}
}

func (r *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	return r.Create(ctx, t)
}

func (r *fakeTenantRepo) GetUserTenants(_ context.Context, userID uuid.UUID) ([]entity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Tenant
	for tenantID, members := range r.members {
		if _, ok := members[userID]; ok {
			out = append(out, *r.tenants[tenantID])
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) AddMember(_ context.Context, m *entity.TenantMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[m.TenantID] == nil {
		r.members[m.TenantID] = map[uuid.UUID]enum.MemberRole{}
	}
	r.members[m.TenantID][m.UserID] = m.Role
	return nil
}

func (r *fakeTenantRepo) IsMember(_ context.Context, tenantID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[tenantID][userID]
	return ok, nil
}

func (r *fakeTenantRepo) GetMembership(_ context.Context, tenantID, userID uuid.UUID) (*entity.TenantMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.members[tenantID][userID]
	if !ok {
		return nil, nil
	}
	return &entity.TenantMembership{TenantID: tenantID, UserID: userID, Role: role}, nil
}

func (r *fakeTenantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	t, err := r.GetBySlug(ctx, slug)
	return t != nil, err
}

func (r *fakeTenantRepo) ListAll(_ context.Context, _ *pagination.Params) ([]entity.Tenant, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTenantRepo) CountByStatus(context.Context) (map[enum.SubscriptionStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[enum.SubscriptionStatus]int64{}
	for _, t := range r.tenants {
		out[t.SubscriptionStatus]++
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	roles *fakeRoleRepo
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}, roles: roles}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	cp := *u
	if ok && len(cp.Roles) == 0 {
		cp.Roles = existing.Roles
	}
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) AssignRole(_ context.Context, userID uuid.UUID, roleID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errBoom
	}
	for _, role := range r.roles.roles {
		if role.ID == roleID {
			u.Roles = append(u.Roles, role)
		}
	}
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeRoleRepo struct {
	roles []entity.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: []entity.Role{
		{ID: 1, Name: enum.RoleSuperAdmin},
		{ID: 2, Name: enum.RoleAdmin, Permissions: []entity.Permission{{ID: 1, Name: "manage-students"}}},
		{ID: 3, Name: enum.RoleBursar},
		{ID: 4, Name: enum.RoleUser},
	}}
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			cp := role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) List(context.Context) ([]entity.Role, error) {
	return r.roles, nil
}

type fakeAnalyticsRepo struct {
	total     func(from, to time.Time) (decimal.Decimal, int64)
	daily     []repository.DailyCollectionResult
	methods   []repository.MethodCollectionResult
	students  map[string]int64
	balances  []repository.StudentBalanceResult
	failTotal bool
}

func (r *fakeAnalyticsRepo) TotalCollected(_ context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	if r.failTotal {
		return decimal.Zero, 0, errBoom
	}
	if r.total == nil {
		return decimal.Zero, 0, nil
	}
	sum, n := r.total(from, to)
	return sum, n, nil
}

func (r *fakeAnalyticsRepo) DailyCollections(context.Context, int) ([]repository.DailyCollectionResult, error) {
	return r.daily, nil
}

func (r *fakeAnalyticsRepo) CollectionsByMethod(context.Context) ([]repository.MethodCollectionResult, error) {
	return r.methods, nil
}

func (r *fakeAnalyticsRepo) CountStudents(_ context.Context, status string) (int64, error) {
	return r.students[status], nil
}

func (r *fakeAnalyticsRepo) StudentBalances(context.Context) ([]repository.StudentBalanceResult, error) {
	return r.balances, nil
}

var (
	_ repository.ClassRepository         = (*fakeClassRepo)(nil)
	_ repository.StudentRepository       = (*fakeStudentRepo)(nil)
	_ repository.PaymentRepository       = (*fakePaymentRepo)(nil)
	_ repository.SchoolProfileRepository = (*fakeSchoolRepo)(nil)
	_ repository.TenantRepository        = (*fakeTenantRepo)(nil)
	_ repository.UserRepository          = (*fakeUserRepo)(nil)
	_ repository.RoleRepository          = (*fakeRoleRepo)(nil)
	_ repository.AnalyticsRepository     = (*fakeAnalyticsRepo)(nil)
)
