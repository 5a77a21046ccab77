package services

import (
	"context"
	"errors"
	"log"

	"github.com/solipsisticstratosphere/Fit-Track/models"
	"github.com/solipsisticstratosphere/Fit-Track/utils"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, name *string, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db}
}

func (s *authService) Register(ctx context.Context, name *string, email, password string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Name:     name,
		Password: hashed,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// a concurrent register can slip past the pre-check and trip the
		// unique index on email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate collapses every failure branch into ErrInvalidCredentials so
// the response cannot be used to enumerate accounts. The real reason is
// logged server-side only.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login failed: no user for email %q", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" {
		log.Printf("login failed: user %d has no password set", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		log.Printf("login failed: password mismatch for user %d", user.ID)
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
