package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/models"
	"github.com/solipsisticstratosphere/Fit-Track/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(userID uint, svc services.UserService) *gin.Engine {
	r := authedRouter(userID)
	ctl := NewUserController(svc)
	r.GET("/users/:id", ctl.Get)
	r.PATCH("/users/:id", ctl.Update)
	r.PUT("/users/:id/password", ctl.ChangePassword)
	r.DELETE("/users/:id", ctl.Delete)
	return r
}

func TestGetUserForbiddenForOtherAccount(t *testing.T) {
	r := userRouter(1, &mockUserService{})

	w := doJSON(t, r, http.MethodGet, "/users/2", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", decodeBody(t, w)["error"])
}

func TestGetUserReturnsPublicShape(t *testing.T) {
	svc := &mockUserService{
		getFunc: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Email: "sam@example.com", Name: strPtr("Sam"), Password: "$2a$10$hash"}, nil
		},
	}
	r := userRouter(1, svc)

	w := doJSON(t, r, http.MethodGet, "/users/1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sam@example.com", body["email"])
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestUpdateUserOnlyTouchesSetFields(t *testing.T) {
	var captured services.UserUpdate
	svc := &mockUserService{
		updateFunc: func(ctx context.Context, id uint, update services.UserUpdate) (*models.User, error) {
			captured = update
			return &models.User{ID: id, Email: "sam@example.com", Name: update.Name}, nil
		},
	}
	r := userRouter(1, svc)

	w := doJSON(t, r, http.MethodPatch, "/users/1", gin.H{"name": "New Name"})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured.Name)
	assert.Equal(t, "New Name", *captured.Name)
	assert.Nil(t, captured.ImageURL)
	assert.Nil(t, captured.ImagePublicID)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc := &mockUserService{
		changePasswordFunc: func(ctx context.Context, id uint, currentPassword, newPassword string) error {
			return services.ErrIncorrectPassword
		},
	}
	r := userRouter(1, svc)

	w := doJSON(t, r, http.MethodPut, "/users/1/password", gin.H{
		"currentPassword": "wrong",
		"newPassword":     "longenough",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Current password is incorrect", decodeBody(t, w)["error"])
}

func TestChangePasswordTooShort(t *testing.T) {
	r := userRouter(1, &mockUserService{})

	w := doJSON(t, r, http.MethodPut, "/users/1/password", gin.H{
		"currentPassword": "current-password",
		"newPassword":     "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "New password must be at least 8 characters long", decodeBody(t, w)["error"])
}

func TestDeleteAccountWrongPassword(t *testing.T) {
	svc := &mockUserService{
		deleteFunc: func(ctx context.Context, id uint, password string) error {
			return services.ErrIncorrectPassword
		},
	}
	r := userRouter(1, svc)

	w := doJSON(t, r, http.MethodDelete, "/users/1", gin.H{"password": "wrong"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Incorrect password", decodeBody(t, w)["error"])
}

func TestDeleteAccountSuccess(t *testing.T) {
	var deletedID uint
	svc := &mockUserService{
		deleteFunc: func(ctx context.Context, id uint, password string) error {
			deletedID = id
			return nil
		},
	}
	r := userRouter(1, svc)

	w := doJSON(t, r, http.MethodDelete, "/users/1", gin.H{"password": "correct-password"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), deletedID)
	assert.Equal(t, true, decodeBody(t, w)["success"])
}
