package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/models"
	"github.com/solipsisticstratosphere/Fit-Track/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutRouter(userID uint, svc services.WorkoutService) *gin.Engine {
	r := authedRouter(userID)
	ctl := NewWorkoutController(svc)
	r.GET("/workouts", ctl.List)
	r.POST("/workouts", ctl.Create)
	r.GET("/workouts/stats", ctl.Stats)
	r.GET("/workouts/:id", ctl.Get)
	r.PATCH("/workouts/:id", ctl.Update)
	r.DELETE("/workouts/:id", ctl.Delete)
	r.POST("/workouts/:id/copy", ctl.Copy)
	return r
}

func TestGetWorkoutNotFound(t *testing.T) {
	svc := &mockWorkoutService{
		getFunc: func(ctx context.Context, userID, id uint) (*models.Workout, error) {
			return nil, services.ErrNotFound
		},
	}
	r := workoutRouter(1, svc)

	w := doJSON(t, r, http.MethodGet, "/workouts/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Workout not found", decodeBody(t, w)["error"])
}

func TestGetWorkoutForbiddenForOtherOwner(t *testing.T) {
	svc := &mockWorkoutService{
		getFunc: func(ctx context.Context, userID, id uint) (*models.Workout, error) {
			return nil, services.ErrForbidden
		},
	}
	r := workoutRouter(2, svc)

	w := doJSON(t, r, http.MethodGet, "/workouts/5", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You don't have permission to access this workout", decodeBody(t, w)["error"])
}

func TestGetWorkoutNonNumericID(t *testing.T) {
	r := workoutRouter(1, &mockWorkoutService{})

	w := doJSON(t, r, http.MethodGet, "/workouts/abc", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateWorkoutRequiresNameAndDate(t *testing.T) {
	r := workoutRouter(1, &mockWorkoutService{})

	w := doJSON(t, r, http.MethodPost, "/workouts", gin.H{"name": "Leg day"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name and date are required", decodeBody(t, w)["error"])
}

func TestCreateWorkoutPassesExercisesThrough(t *testing.T) {
	var captured services.WorkoutInput
	svc := &mockWorkoutService{
		createFunc: func(ctx context.Context, userID uint, input services.WorkoutInput) (*models.Workout, error) {
			captured = input
			return &models.Workout{ID: 10, UserID: userID, Name: input.Name, Date: input.Date}, nil
		},
	}
	r := workoutRouter(1, svc)

	w := doJSON(t, r, http.MethodPost, "/workouts", gin.H{
		"name": "Leg day",
		"date": "2025-03-01",
		"exercises": []gin.H{
			{"name": "Squat", "sets": 3, "reps": 5, "weight": 100},
			{"name": "Lunge", "sets": 3, "reps": 10},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, captured.Exercises, 2)
	assert.Equal(t, "Squat", captured.Exercises[0].Name)
	require.NotNil(t, captured.Exercises[0].Weight)
	assert.Equal(t, 100.0, *captured.Exercises[0].Weight)
	assert.Nil(t, captured.Exercises[1].Weight)
}

func TestCreateWorkoutRejectsNonPositiveSets(t *testing.T) {
	r := workoutRouter(1, &mockWorkoutService{})

	w := doJSON(t, r, http.MethodPost, "/workouts", gin.H{
		"name": "Leg day",
		"date": "2025-03-01",
		"exercises": []gin.H{
			{"name": "Squat", "sets": 0, "reps": 5},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Exercise sets and reps must be at least 1", decodeBody(t, w)["error"])
}

func TestCreateWorkoutRejectsNegativeReps(t *testing.T) {
	r := workoutRouter(1, &mockWorkoutService{})

	w := doJSON(t, r, http.MethodPost, "/workouts", gin.H{
		"name": "Leg day",
		"date": "2025-03-01",
		"exercises": []gin.H{
			{"name": "Squat", "sets": 3, "reps": -1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateWorkoutReturnsReconciledResult(t *testing.T) {
	svc := &mockWorkoutService{
		updateFunc: func(ctx context.Context, userID, id uint, input services.WorkoutInput) (*models.Workout, error) {
			return &models.Workout{ID: id, UserID: userID, Name: input.Name, Exercises: []models.Exercise{
				{ID: 1, Name: "Squat"},
				{ID: 7, Name: "Deadlift"},
			}}, nil
		},
	}
	r := workoutRouter(1, svc)

	w := doJSON(t, r, http.MethodPatch, "/workouts/5", gin.H{
		"name": "Leg day",
		"date": "2025-03-01",
		"exercises": []gin.H{
			{"id": 1, "name": "Squat", "sets": 5, "reps": 5},
			{"name": "Deadlift", "sets": 1, "reps": 5},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	workout := body["workout"].(map[string]interface{})
	exercises := workout["exercises"].([]interface{})
	assert.Len(t, exercises, 2)
}

func TestCopyWorkout(t *testing.T) {
	svc := &mockWorkoutService{
		copyFunc: func(ctx context.Context, userID, id uint) (*models.Workout, error) {
			return &models.Workout{ID: 20, UserID: userID, Name: "Leg day (Copy)", Date: time.Now()}, nil
		},
	}
	r := workoutRouter(1, svc)

	w := doJSON(t, r, http.MethodPost, "/workouts/5/copy", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Leg day (Copy)", body["name"])
	assert.Equal(t, float64(20), body["id"])
}

func TestWorkoutStatsBadDate(t *testing.T) {
	r := workoutRouter(1, &mockWorkoutService{})

	w := doJSON(t, r, http.MethodGet, "/workouts/stats?from=banana", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkoutStats(t *testing.T) {
	maxW := 120.0
	svc := &mockWorkoutService{
		statsFunc: func(ctx context.Context, userID uint, from, to *time.Time) (*services.WorkoutStats, error) {
			return &services.WorkoutStats{
				Count:       4,
				AvgDuration: 45,
				ExerciseStats: []services.ExerciseStat{
					{Name: "Squat", MaxWeight: &maxW, AvgReps: 5},
				},
			}, nil
		},
	}
	r := workoutRouter(1, svc)

	w := doJSON(t, r, http.MethodGet, "/workouts/stats?from=2025-03-01&to=2025-03-31", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(4), body["count"])
	assert.Equal(t, float64(45), body["avgDuration"])
	stats := body["exerciseStats"].([]interface{})
	require.Len(t, stats, 1)
}

func TestListWorkoutsParsesFilter(t *testing.T) {
	var captured services.WorkoutFilter
	svc := &mockWorkoutService{
		listFunc: func(ctx context.Context, userID uint, filter services.WorkoutFilter) ([]models.Workout, error) {
			captured = filter
			return []models.Workout{}, nil
		},
	}
	r := workoutRouter(1, svc)

	w := doJSON(t, r, http.MethodGet, "/workouts?from=2025-03-01&name=leg&limit=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured.From)
	assert.Nil(t, captured.To)
	assert.Equal(t, "leg", captured.Name)
	assert.Equal(t, 10, captured.Limit)
}
