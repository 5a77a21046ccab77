package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

type WorkoutController struct {
	workouts services.WorkoutService
}

func NewWorkoutController(workouts services.WorkoutService) *WorkoutController {
	return &WorkoutController{workouts: workouts}
}

type WorkoutRequest struct {
	Name      string                   `json:"name"`
	Date      string                   `json:"date"`
	Duration  *int                     `json:"duration"`
	Notes     *string                  `json:"notes"`
	Exercises []services.ExerciseInput `json:"exercises"`
}

func (ctl *WorkoutController) List(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	filter := services.WorkoutFilter{
		From:  from,
		To:    to,
		Name:  c.Query("name"),
		Limit: limit,
	}

	workouts, err := ctl.workouts.List(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func (ctl *WorkoutController) Create(c *gin.Context) {
	input, ok := bindWorkout(c)
	if !ok {
		return
	}

	workout, err := ctl.workouts.Create(c.Request.Context(), currentUserID(c), *input)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (ctl *WorkoutController) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}

	workout, err := ctl.workouts.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

func (ctl *WorkoutController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}

	input, ok := bindWorkout(c)
	if !ok {
		return
	}

	workout, err := ctl.workouts.Update(c.Request.Context(), currentUserID(c), id, *input)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workout": workout})
}

func (ctl *WorkoutController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}

	if err := ctl.workouts.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ctl *WorkoutController) Copy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}

	workout, err := ctl.workouts.Copy(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (ctl *WorkoutController) Stats(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	stats, err := ctl.workouts.Stats(c.Request.Context(), currentUserID(c), from, to)
	if err != nil {
		serviceError(c, err, "Workout")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func bindWorkout(c *gin.Context) (*services.WorkoutInput, bool) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}

	if req.Name == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and date are required"})
		return nil, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return nil, false
	}

	for _, ex := range req.Exercises {
		if ex.Sets < 1 || ex.Reps < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Exercise sets and reps must be at least 1"})
			return nil, false
		}
	}

	return &services.WorkoutInput{
		Name:      req.Name,
		Date:      date,
		Duration:  req.Duration,
		Notes:     req.Notes,
		Exercises: req.Exercises,
	}, true
}
