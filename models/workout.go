package models

import "time"

type Workout struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	Name      string     `gorm:"not null" json:"name"`
	Date      time.Time  `gorm:"index;not null" json:"date"`
	Duration  *int       `json:"duration"` // minutes
	Notes     *string    `json:"notes"`
	Exercises []Exercise `gorm:"constraint:OnDelete:CASCADE" json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Exercise rows are only reachable through their parent workout.
type Exercise struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	WorkoutID uint      `gorm:"index;not null" json:"workoutId"`
	Name      string    `gorm:"not null" json:"name"`
	Sets      int       `gorm:"not null" json:"sets"`
	Reps      int       `gorm:"not null" json:"reps"`
	Weight    *float64  `json:"weight"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
