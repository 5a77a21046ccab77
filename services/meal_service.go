package services

import (
	"context"
	"errors"
	"time"

	"github.com/solipsisticstratosphere/Fit-Track/models"
	"gorm.io/gorm"
)

type MealFilter struct {
	Date  *time.Time // whole-day window
	From  *time.Time
	To    *time.Time
	Limit int
}

type MealInput struct {
	Name     string
	Date     time.Time
	Calories *int
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Notes    *string
	ImageURL *string
}

// NutritionTotals sums one day's macros. Meals with an unrecorded field
// contribute 0 to that sum but still count toward Count.
type NutritionTotals struct {
	Date     string  `json:"date"`
	Count    int     `json:"count"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MealService interface {
	List(ctx context.Context, userID uint, filter MealFilter) ([]models.Meal, error)
	Create(ctx context.Context, userID uint, input MealInput) (*models.Meal, error)
	Get(ctx context.Context, userID, id uint) (*models.Meal, error)
	Update(ctx context.Context, userID, id uint, input MealInput) (*models.Meal, error)
	Delete(ctx context.Context, userID, id uint) error
	DailyTotals(ctx context.Context, userID uint, day time.Time) (*NutritionTotals, error)
}

type mealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) MealService {
	return &mealService{db: db}
}

func (s *mealService) List(ctx context.Context, userID uint, filter MealFilter) ([]models.Meal, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Date != nil {
		start, end := dayWindow(*filter.Date)
		q = q.Where("date >= ? AND date <= ?", start, end)
	} else {
		if filter.From != nil {
			q = q.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("date <= ?", *filter.To)
		}
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var meals []models.Meal
	if err := q.Order("date DESC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (s *mealService) Create(ctx context.Context, userID uint, input MealInput) (*models.Meal, error) {
	meal := models.Meal{
		UserID:   userID,
		Name:     input.Name,
		Date:     input.Date,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Notes:    input.Notes,
		ImageURL: input.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *mealService) Get(ctx context.Context, userID, id uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).First(&meal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}
	return &meal, nil
}

func (s *mealService) Update(ctx context.Context, userID, id uint, input MealInput) (*models.Meal, error) {
	meal, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// The image is kept unless the caller uploaded a replacement, and a
	// zero date keeps the stored one.
	imageURL := meal.ImageURL
	if input.ImageURL != nil {
		imageURL = input.ImageURL
	}
	date := input.Date
	if date.IsZero() {
		date = meal.Date
	}

	err = s.db.WithContext(ctx).Model(meal).Updates(map[string]interface{}{
		"name":      input.Name,
		"date":      date,
		"calories":  input.Calories,
		"protein":   input.Protein,
		"carbs":     input.Carbs,
		"fat":       input.Fat,
		"notes":     input.Notes,
		"image_url": imageURL,
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *mealService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Meal{}, id).Error
}

func (s *mealService) DailyTotals(ctx context.Context, userID uint, day time.Time) (*NutritionTotals, error) {
	meals, err := s.List(ctx, userID, MealFilter{Date: &day})
	if err != nil {
		return nil, err
	}
	totals := SumNutrition(meals)
	totals.Date = day.Format("2006-01-02")
	return &totals, nil
}

// SumNutrition reduces a meal list to macro totals, treating unrecorded
// fields as 0 without dropping the meal from the count.
func SumNutrition(meals []models.Meal) NutritionTotals {
	totals := NutritionTotals{Count: len(meals)}
	for _, m := range meals {
		if m.Calories != nil {
			totals.Calories += *m.Calories
		}
		if m.Protein != nil {
			totals.Protein += *m.Protein
		}
		if m.Carbs != nil {
			totals.Carbs += *m.Carbs
		}
		if m.Fat != nil {
			totals.Fat += *m.Fat
		}
	}
	return totals
}

func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
