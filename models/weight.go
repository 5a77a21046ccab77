package models

import "time"

type WeightEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Weight    float64   `gorm:"not null" json:"weight"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
