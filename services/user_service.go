package services

import (
	"context"
	"errors"
	"log"

	"github.com/solipsisticstratosphere/Fit-Track/models"
	"github.com/solipsisticstratosphere/Fit-Track/utils"
	"gorm.io/gorm"
)

// UserUpdate carries only explicitly-set fields; a nil pointer leaves the
// stored value untouched.
type UserUpdate struct {
	Name          *string `json:"name"`
	ImageURL      *string `json:"imageUrl"`
	ImagePublicID *string `json:"imagePublicId"`
}

type UserService interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, update UserUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error
	Delete(ctx context.Context, id uint, password string) error
}

type userService struct {
	db     *gorm.DB
	images ImageStore
}

func NewUserService(db *gorm.DB, images ImageStore) UserService {
	return &userService{db: db, images: images}
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) Update(ctx context.Context, id uint, update UserUpdate) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.ImagePublicID != nil {
		fields["image_public_id"] = *update.ImagePublicID

		// Replaced profile images are removed from storage best-effort;
		// a failed delete must not fail the profile update.
		if user.ImagePublicID != nil && *user.ImagePublicID != *update.ImagePublicID {
			if err := s.images.Delete(ctx, *user.ImagePublicID); err != nil {
				log.Printf("failed to delete previous profile image %q: %v", *user.ImagePublicID, err)
			}
		}
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *userService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.Password) {
		return ErrIncorrectPassword
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(user).Update("password", hashed).Error
}

// Delete removes the account and everything it owns in one transaction,
// children before parents, so concurrent readers never observe a deleted
// user with orphaned rows.
func (s *userService) Delete(ctx context.Context, id uint, password string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return ErrIncorrectPassword
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		workoutIDs := tx.Model(&models.Workout{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("workout_id IN (?)", workoutIDs).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Workout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.WeightEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
