package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

type UserController struct {
	users services.UserService
}

func NewUserController(users services.UserService) *UserController {
	return &UserController{users: users}
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type DeleteAccountInput struct {
	Password string `json:"password"`
}

// requireSelf enforces that user routes only operate on the caller's own
// account. A mismatched id is always 403, so the caller learns nothing
// about other accounts.
func (ctl *UserController) requireSelf(c *gin.Context) (uint, bool) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "User")
		return 0, false
	}
	if id != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return 0, false
	}
	return id, true
}

func (ctl *UserController) Get(c *gin.Context) {
	id, ok := ctl.requireSelf(c)
	if !ok {
		return
	}

	user, err := ctl.users.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (ctl *UserController) Update(c *gin.Context) {
	id, ok := ctl.requireSelf(c)
	if !ok {
		return
	}

	var update services.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if update.Name != nil && len(*update.Name) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name format"})
		return
	}

	user, err := ctl.users.Update(c.Request.Context(), id, update)
	if err != nil {
		serviceError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (ctl *UserController) ChangePassword(c *gin.Context) {
	id, ok := ctl.requireSelf(c)
	if !ok {
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.CurrentPassword == "" || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password and new password are required"})
		return
	}
	if len(input.NewPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters long"})
		return
	}

	err := ctl.users.ChangePassword(c.Request.Context(), id, input.CurrentPassword, input.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrIncorrectPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}
		serviceError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes the account after re-verifying the password, cascading to
// everything the user owns.
func (ctl *UserController) Delete(c *gin.Context) {
	id, ok := ctl.requireSelf(c)
	if !ok {
		return
	}

	var input DeleteAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	if err := ctl.users.Delete(c.Request.Context(), id, input.Password); err != nil {
		if errors.Is(err, services.ErrIncorrectPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect password"})
			return
		}
		serviceError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
