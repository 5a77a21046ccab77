package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/models"
	"github.com/solipsisticstratosphere/Fit-Track/services"
	"github.com/solipsisticstratosphere/Fit-Track/utils"
)

type AuthController struct {
	auth  services.AuthService
	users services.UserService
}

func NewAuthController(auth services.AuthService, users services.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

type RegisterInput struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		return
	}

	user, err := ctl.auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		log.Printf("register error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := ctl.auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := issueToken(user)
	if err != nil {
		log.Printf("token error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Public()})
}

// Refresh reissues the session token from the current user record so that
// profile edits (name, image) are reflected in the claims.
func (ctl *AuthController) Refresh(c *gin.Context) {
	user, err := ctl.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		serviceError(c, err, "User")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		log.Printf("token error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Public()})
}

func issueToken(user *models.User) (string, error) {
	name, imageURL := "", ""
	if user.Name != nil {
		name = *user.Name
	}
	if user.ImageURL != nil {
		imageURL = *user.ImageURL
	}
	return utils.GenerateToken(user.ID, name, imageURL)
}
