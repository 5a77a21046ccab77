package models

import "time"

// Optional nutrition fields are pointers so an unrecorded value is stored
// as NULL, not zero. Aggregations rely on that distinction.
type Meal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Name      string    `gorm:"not null" json:"name"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Calories  *int      `json:"calories"`
	Protein   *float64  `json:"protein"`
	Carbs     *float64  `json:"carbs"`
	Fat       *float64  `json:"fat"`
	Notes     *string   `json:"notes"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
