package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

type WeightController struct {
	weights services.WeightService
}

func NewWeightController(weights services.WeightService) *WeightController {
	return &WeightController{weights: weights}
}

type WeightCreateInput struct {
	Weight *float64 `json:"weight"`
	Date   *string  `json:"date"`
	Notes  *string  `json:"notes"`
}

type WeightUpdateInput struct {
	Weight *float64        `json:"weight"`
	Date   *string         `json:"date"`
	Notes  json.RawMessage `json:"notes"` // raw so an explicit null can clear the field
}

func (ctl *WeightController) List(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	entries, err := ctl.weights.List(c.Request.Context(), currentUserID(c), from, to)
	if err != nil {
		serviceError(c, err, "Weight entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": entries})
}

func (ctl *WeightController) Create(c *gin.Context) {
	var input WeightCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Weight == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Weight is required"})
		return
	}

	date := time.Now()
	if input.Date != nil {
		parsed, err := parseDate(*input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
		date = parsed
	}

	entry, err := ctl.weights.Create(c.Request.Context(), currentUserID(c), services.WeightInput{
		Weight: *input.Weight,
		Date:   date,
		Notes:  input.Notes,
	})
	if err != nil {
		serviceError(c, err, "Weight entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (ctl *WeightController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Weight entry")
		return
	}

	var input WeightUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := services.WeightUpdate{
		Weight: input.Weight,
	}
	if input.Date != nil {
		parsed, err := parseDate(*input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
		update.Date = &parsed
	}
	if len(input.Notes) > 0 {
		update.SetNotes = true
		if err := json.Unmarshal(input.Notes, &update.Notes); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	entry, err := ctl.weights.Update(c.Request.Context(), currentUserID(c), id, update)
	if err != nil {
		serviceError(c, err, "Weight entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (ctl *WeightController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Weight entry")
		return
	}

	if err := ctl.weights.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		serviceError(c, err, "Weight entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *WeightController) Stats(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	stats, err := ctl.weights.Stats(c.Request.Context(), currentUserID(c), from, to)
	if err != nil {
		serviceError(c, err, "Weight entry")
		return
	}
	c.JSON(http.StatusOK, stats)
}
