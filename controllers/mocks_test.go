package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/models"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authedRouter builds a bare engine with the caller identity pre-set, the
// way AuthMiddleware would after validating a token.
func authedRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

// ---- mock services (func-field style) ----

type mockAuthService struct {
	registerFunc     func(ctx context.Context, name *string, email, password string) (*models.User, error)
	authenticateFunc func(ctx context.Context, email, password string) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name *string, email, password string) (*models.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, name, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

type mockUserService struct {
	getFunc            func(ctx context.Context, id uint) (*models.User, error)
	updateFunc         func(ctx context.Context, id uint, update services.UserUpdate) (*models.User, error)
	changePasswordFunc func(ctx context.Context, id uint, currentPassword, newPassword string) error
	deleteFunc         func(ctx context.Context, id uint, password string) error
}

func (m *mockUserService) Get(ctx context.Context, id uint) (*models.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Update(ctx context.Context, id uint, update services.UserUpdate) (*models.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, update)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, id, currentPassword, newPassword)
	}
	return errors.New("not implemented")
}

func (m *mockUserService) Delete(ctx context.Context, id uint, password string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, password)
	}
	return errors.New("not implemented")
}

type mockWorkoutService struct {
	listFunc   func(ctx context.Context, userID uint, filter services.WorkoutFilter) ([]models.Workout, error)
	createFunc func(ctx context.Context, userID uint, input services.WorkoutInput) (*models.Workout, error)
	getFunc    func(ctx context.Context, userID, id uint) (*models.Workout, error)
	updateFunc func(ctx context.Context, userID, id uint, input services.WorkoutInput) (*models.Workout, error)
	deleteFunc func(ctx context.Context, userID, id uint) error
	copyFunc   func(ctx context.Context, userID, id uint) (*models.Workout, error)
	statsFunc  func(ctx context.Context, userID uint, from, to *time.Time) (*services.WorkoutStats, error)
}

func (m *mockWorkoutService) List(ctx context.Context, userID uint, filter services.WorkoutFilter) ([]models.Workout, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWorkoutService) Create(ctx context.Context, userID uint, input services.WorkoutInput) (*models.Workout, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWorkoutService) Get(ctx context.Context, userID, id uint) (*models.Workout, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWorkoutService) Update(ctx context.Context, userID, id uint, input services.WorkoutInput) (*models.Workout, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, id, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWorkoutService) Delete(ctx context.Context, userID, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, id)
	}
	return errors.New("not implemented")
}

func (m *mockWorkoutService) Copy(ctx context.Context, userID, id uint) (*models.Workout, error) {
	if m.copyFunc != nil {
		return m.copyFunc(ctx, userID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWorkoutService) Stats(ctx context.Context, userID uint, from, to *time.Time) (*services.WorkoutStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, userID, from, to)
	}
	return nil, errors.New("not implemented")
}

type mockWeightService struct {
	listFunc   func(ctx context.Context, userID uint, from, to *time.Time) ([]models.WeightEntry, error)
	createFunc func(ctx context.Context, userID uint, input services.WeightInput) (*models.WeightEntry, error)
	updateFunc func(ctx context.Context, userID, id uint, update services.WeightUpdate) (*models.WeightEntry, error)
	deleteFunc func(ctx context.Context, userID, id uint) error
	statsFunc  func(ctx context.Context, userID uint, from, to *time.Time) (*services.WeightStats, error)
}

func (m *mockWeightService) List(ctx context.Context, userID uint, from, to *time.Time) ([]models.WeightEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, from, to)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWeightService) Create(ctx context.Context, userID uint, input services.WeightInput) (*models.WeightEntry, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWeightService) Update(ctx context.Context, userID, id uint, update services.WeightUpdate) (*models.WeightEntry, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, id, update)
	}
	return nil, errors.New("not implemented")
}

func (m *mockWeightService) Delete(ctx context.Context, userID, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, id)
	}
	return errors.New("not implemented")
}

func (m *mockWeightService) Stats(ctx context.Context, userID uint, from, to *time.Time) (*services.WeightStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, userID, from, to)
	}
	return nil, errors.New("not implemented")
}
