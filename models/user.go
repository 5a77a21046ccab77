package models

import "time"

type User struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Name          *string   `json:"name"`
	Password      string    `gorm:"not null" json:"-"`
	ImageURL      *string   `json:"imageUrl"`
	ImagePublicID *string   `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PublicUser is the response shape for user payloads. The password hash
// never crosses this boundary.
type PublicUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}
