package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/application/service"
	"github.com/sangkips/shulefees-api/internal/config"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/internal/infrastructure/session"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		panic(err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func call(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// inSchool stands in for the auth and tenant middleware
func inSchool(tenantID, userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set("user_id", userID)
		}
		c.Set("tenant_id", tenantID)
		c.Request = c.Request.WithContext(infraRepo.WithTenant(c.Request.Context(), tenantID))
		c.Next()
	}
}

type memClassRepo struct {
	mu       sync.Mutex
	classes  map[uuid.UUID]entity.Class
	students map[uuid.UUID]int64
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{classes: map[uuid.UUID]entity.Class{}, students: map[uuid.UUID]int64{}}
}

func (r *memClassRepo) Create(_ context.Context, class *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	r.classes[class.ID] = *class
	return nil
}

func (r *memClassRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[id]
	if !ok {
		return nil, nil
	}
	return &class, nil
}

func (r *memClassRepo) Update(_ context.Context, class *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[class.ID] = *class
	return nil
}

func (r *memClassRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, id)
	return nil
}

func (r *memClassRepo) List(_ context.Context, params *pagination.Params) ([]entity.Class, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Class, 0, len(r.classes))
	for _, class := range r.classes {
		out = append(out, class)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	total := int64(len(out))
	start := min(params.Offset(), len(out))
	end := min(start+params.PerPage, len(out))
	return out[start:end], total, nil
}

func (r *memClassRepo) NameExists(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, class := range r.classes {
		if id != excludeID && strings.EqualFold(class.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memClassRepo) CountStudents(_ context.Context, classID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.students[classID], nil
}

func TestClassHandler_CRUD(t *testing.T) {
	repo := newMemClassRepo()
	h := NewClassHandler(service.NewClassService(repo))
	r := gin.New()
	r.Use(inSchool(uuid.New(), uuid.New()))
	r.GET("/classes", h.List)
	r.POST("/classes", h.Create)
	r.GET("/classes/:id", h.Get)
	r.PUT("/classes/:id", h.Update)
	r.DELETE("/classes/:id", h.Delete)

	w := call(r, http.MethodPost, "/classes", `{"name":" Grade 4 ","level":4,"monthly_fee":"2000","annual_fee":"20000"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.Class
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, "Grade 4", created.Name)
	assert.Equal(t, "20000", created.TotalFee().String())

	w = call(r, http.MethodPost, "/classes", `{"name":"grade 4","level":4}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/classes", `{"name":"Grade 5","monthly_fee":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/classes", `{"level":30}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w)
	fields := map[string]string{}
	for _, e := range env.Errors {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be at most 20", fields["level"])

	w = call(r, http.MethodPost, "/classes", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPut, "/classes/"+created.ID.String(), `{"annual_fee":"0","monthly_fee":"2500"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated entity.Class
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
	assert.Equal(t, "30000", updated.TotalFee().String())

	w = call(r, http.MethodGet, "/classes?per_page=500", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page pagination.Result[entity.Class]
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 100, page.Pagination.PerPage)

	repo.students[created.ID] = 3
	w = call(r, http.MethodDelete, "/classes/"+created.ID.String(), "")
	assert.Equal(t, http.StatusConflict, w.Code)

	repo.students[created.ID] = 0
	w = call(r, http.MethodDelete, "/classes/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/classes/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodGet, "/classes/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func newReceiptRouter(userID uuid.UUID) *gin.Engine {
	sessions := session.NewStore(30*time.Minute, service.ReceiptSession.Clone)
	receipts := service.NewReceiptService(nil, nil, nil, nil, nil, nil, sessions, config.ReceiptConfig{}, zap.NewNop())
	h := NewReceiptHandler(receipts)

	r := gin.New()
	r.Use(inSchool(uuid.New(), userID))
	r.GET("/receipts/sizes", h.Sizes)
	r.POST("/receipts/sessions", h.Open)
	r.GET("/receipts/sessions/:id", h.Get)
	r.PATCH("/receipts/sessions/:id", h.Update)
	r.POST("/receipts/sessions/:id/students/:student_id/toggle", h.ToggleStudent)
	r.DELETE("/receipts/sessions/:id", h.Close)
	return r
}

func TestReceiptHandler_Sizes(t *testing.T) {
	w := call(newReceiptRouter(uuid.New()), http.MethodGet, "/receipts/sizes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sizes []entity.PageSpec
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sizes))
	assert.Len(t, sizes, 4)
}

func TestReceiptHandler_RequestErrors(t *testing.T) {
	r := newReceiptRouter(uuid.New())
	missing := uuid.New().String()

	w := call(r, http.MethodPost, "/receipts/sessions", `{"payment_id":"`+uuid.New().String()+`","size":"Letter","mode":"class"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var names []string
	for _, e := range decode(t, w).Errors {
		names = append(names, e.Field)
	}
	assert.ElementsMatch(t, []string{"size", "mode"}, names)

	w = call(r, http.MethodPost, "/receipts/sessions", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = call(r, http.MethodGet, "/receipts/sessions/"+missing, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodPatch, "/receipts/sessions/"+missing, `{"notes":"Term 1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodPost, "/receipts/sessions/"+missing+"/students/nope/toggle", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodGet, "/receipts/sessions/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiptHandler_OpenRequiresUser(t *testing.T) {
	w := call(newReceiptRouter(uuid.Nil), http.MethodPost, "/receipts/sessions", `{"payment_id":"`+uuid.New().String()+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
