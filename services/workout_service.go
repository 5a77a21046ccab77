package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/solipsisticstratosphere/Fit-Track/models"
	"gorm.io/gorm"
)

type WorkoutFilter struct {
	From  *time.Time
	To    *time.Time
	Name  string // case-insensitive substring match
	Limit int
}

type ExerciseInput struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight"`
	Notes  *string  `json:"notes"`
}

type WorkoutInput struct {
	Name      string
	Date      time.Time
	Duration  *int
	Notes     *string
	Exercises []ExerciseInput
}

type ExerciseStat struct {
	Name      string   `json:"name"`
	AvgWeight *float64 `json:"avgWeight"`
	MaxWeight *float64 `json:"maxWeight"`
	AvgReps   float64  `json:"avgReps"`
}

type WorkoutStats struct {
	Count         int            `json:"count"`
	AvgDuration   int            `json:"avgDuration"`
	ExerciseStats []ExerciseStat `json:"exerciseStats"`
}

type WorkoutService interface {
	List(ctx context.Context, userID uint, filter WorkoutFilter) ([]models.Workout, error)
	Create(ctx context.Context, userID uint, input WorkoutInput) (*models.Workout, error)
	Get(ctx context.Context, userID, id uint) (*models.Workout, error)
	Update(ctx context.Context, userID, id uint, input WorkoutInput) (*models.Workout, error)
	Delete(ctx context.Context, userID, id uint) error
	Copy(ctx context.Context, userID, id uint) (*models.Workout, error)
	Stats(ctx context.Context, userID uint, from, to *time.Time) (*WorkoutStats, error)
}

type workoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) WorkoutService {
	return &workoutService{db: db}
}

func (s *workoutService) List(ctx context.Context, userID uint, filter WorkoutFilter) ([]models.Workout, error) {
	q := s.db.WithContext(ctx).Preload("Exercises").Where("user_id = ?", userID)
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var workouts []models.Workout
	if err := q.Order("date DESC").Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *workoutService) Create(ctx context.Context, userID uint, input WorkoutInput) (*models.Workout, error) {
	workout := models.Workout{
		UserID:   userID,
		Name:     input.Name,
		Date:     input.Date,
		Duration: input.Duration,
		Notes:    input.Notes,
	}
	for _, ex := range input.Exercises {
		workout.Exercises = append(workout.Exercises, models.Exercise{
			Name:   ex.Name,
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: ex.Weight,
			Notes:  ex.Notes,
		})
	}
	if err := s.db.WithContext(ctx).Create(&workout).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// Get enforces the ownership guard: a missing row is ErrNotFound, a row
// owned by someone else is ErrForbidden. Existence is checked first so an
// owner mismatch never masquerades as a missing resource.
func (s *workoutService) Get(ctx context.Context, userID, id uint) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.WithContext(ctx).Preload("Exercises").First(&workout, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrForbidden
	}
	return &workout, nil
}

// Update reconciles the submitted exercise set against the persisted one
// inside a single transaction: persisted exercises absent from the
// submission are deleted, matching ids are updated in place, unknown ids
// become new rows. A failure rolls everything back.
func (s *workoutService) Update(ctx context.Context, userID, id uint, input WorkoutInput) (*models.Workout, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates, inserts, deleteIDs := reconcileExercises(existing.Exercises, input.Exercises)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Workout{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":     input.Name,
			"date":     input.Date,
			"duration": input.Duration,
			"notes":    input.Notes,
		}).Error; err != nil {
			return err
		}

		if len(deleteIDs) > 0 {
			if err := tx.Where("id IN ?", deleteIDs).Delete(&models.Exercise{}).Error; err != nil {
				return err
			}
		}
		for i := range updates {
			ex := updates[i]
			if err := tx.Model(&models.Exercise{}).Where("id = ?", ex.ID).Updates(map[string]interface{}{
				"name":   ex.Name,
				"sets":   ex.Sets,
				"reps":   ex.Reps,
				"weight": ex.Weight,
				"notes":  ex.Notes,
			}).Error; err != nil {
				return err
			}
		}
		for i := range inserts {
			inserts[i].WorkoutID = id
			if err := tx.Create(&inserts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

func (s *workoutService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", id).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workout{}, id).Error
	})
}

// Copy clones a workout and its exercises under fresh ids, suffixing the
// name with " (Copy)" and stamping today's date.
func (s *workoutService) Copy(ctx context.Context, userID, id uint) (*models.Workout, error) {
	original, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	clone := models.Workout{
		UserID:   userID,
		Name:     original.Name + " (Copy)",
		Date:     time.Now(),
		Duration: original.Duration,
		Notes:    original.Notes,
	}
	for _, ex := range original.Exercises {
		clone.Exercises = append(clone.Exercises, models.Exercise{
			Name:   ex.Name,
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: ex.Weight,
			Notes:  ex.Notes,
		})
	}
	if err := s.db.WithContext(ctx).Create(&clone).Error; err != nil {
		return nil, err
	}
	return &clone, nil
}

func (s *workoutService) Stats(ctx context.Context, userID uint, from, to *time.Time) (*WorkoutStats, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var workouts []models.Workout
	if err := q.Find(&workouts).Error; err != nil {
		return nil, err
	}

	eq := s.db.WithContext(ctx).
		Table("exercises").
		Select("exercises.name, AVG(exercises.weight) AS avg_weight, MAX(exercises.weight) AS max_weight, AVG(exercises.reps) AS avg_reps").
		Joins("JOIN workouts ON workouts.id = exercises.workout_id").
		Where("workouts.user_id = ?", userID)
	if from != nil {
		eq = eq.Where("workouts.date >= ?", *from)
	}
	if to != nil {
		eq = eq.Where("workouts.date <= ?", *to)
	}

	exerciseStats := []ExerciseStat{}
	if err := eq.Group("exercises.name").
		Order("max_weight DESC").
		Limit(5).
		Scan(&exerciseStats).Error; err != nil {
		return nil, err
	}

	return &WorkoutStats{
		Count:         len(workouts),
		AvgDuration:   averageDuration(workouts),
		ExerciseStats: exerciseStats,
	}, nil
}

// averageDuration averages only workouts with a recorded duration; NULLs
// are excluded from both the sum and the count.
func averageDuration(workouts []models.Workout) int {
	sum, n := 0, 0
	for _, w := range workouts {
		if w.Duration != nil {
			sum += *w.Duration
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

func reconcileExercises(existing []models.Exercise, submitted []ExerciseInput) (updates, inserts []models.Exercise, deleteIDs []uint) {
	known := make(map[uint]bool, len(existing))
	for _, ex := range existing {
		known[ex.ID] = true
	}
	submittedIDs := make(map[uint]bool, len(submitted))

	for _, in := range submitted {
		ex := models.Exercise{
			ID:     in.ID,
			Name:   in.Name,
			Sets:   in.Sets,
			Reps:   in.Reps,
			Weight: in.Weight,
			Notes:  in.Notes,
		}
		if in.ID != 0 && known[in.ID] {
			submittedIDs[in.ID] = true
			updates = append(updates, ex)
		} else {
			ex.ID = 0 // unrecognized ids become new rows
			inserts = append(inserts, ex)
		}
	}

	for _, ex := range existing {
		if !submittedIDs[ex.ID] {
			deleteIDs = append(deleteIDs, ex.ID)
		}
	}
	return updates, inserts, deleteIDs
}
