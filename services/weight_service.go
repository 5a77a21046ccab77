package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/solipsisticstratosphere/Fit-Track/models"
	"gorm.io/gorm"
)

type WeightInput struct {
	Weight float64
	Date   time.Time
	Notes  *string
}

// WeightUpdate carries only the fields the caller explicitly set. SetNotes
// distinguishes "leave notes alone" from "clear them": when it is true, a
// nil Notes nulls out the stored value.
type WeightUpdate struct {
	Weight   *float64
	Date     *time.Time
	Notes    *string
	SetNotes bool
}

type WeightStats struct {
	Current float64 `json:"current"`
	Change  float64 `json:"change"`
	Average float64 `json:"average"`
	Trend   string  `json:"trend"` // "decreasing" | "increasing" | "stable"
}

type WeightService interface {
	List(ctx context.Context, userID uint, from, to *time.Time) ([]models.WeightEntry, error)
	Create(ctx context.Context, userID uint, input WeightInput) (*models.WeightEntry, error)
	Update(ctx context.Context, userID, id uint, update WeightUpdate) (*models.WeightEntry, error)
	Delete(ctx context.Context, userID, id uint) error
	Stats(ctx context.Context, userID uint, from, to *time.Time) (*WeightStats, error)
}

type weightService struct {
	db *gorm.DB
}

func NewWeightService(db *gorm.DB) WeightService {
	return &weightService{db: db}
}

// List is chronological (ASC), unlike the other resources: the entries feed
// the weight chart and the trend computation directly.
func (s *weightService) List(ctx context.Context, userID uint, from, to *time.Time) ([]models.WeightEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var entries []models.WeightEntry
	if err := q.Order("date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *weightService) Create(ctx context.Context, userID uint, input WeightInput) (*models.WeightEntry, error) {
	entry := models.WeightEntry{
		UserID: userID,
		Weight: input.Weight,
		Date:   input.Date,
		Notes:  input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *weightService) get(ctx context.Context, userID, id uint) (*models.WeightEntry, error) {
	var entry models.WeightEntry
	err := s.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}
	return &entry, nil
}

func (s *weightService) Update(ctx context.Context, userID, id uint, update WeightUpdate) (*models.WeightEntry, error) {
	entry, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Weight != nil {
		fields["weight"] = *update.Weight
	}
	if update.Date != nil {
		fields["date"] = *update.Date
	}
	if update.SetNotes {
		if update.Notes != nil {
			fields["notes"] = *update.Notes
		} else {
			fields["notes"] = nil
		}
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(entry).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.get(ctx, userID, id)
}

func (s *weightService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.get(ctx, userID, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.WeightEntry{}, id).Error
}

func (s *weightService) Stats(ctx context.Context, userID uint, from, to *time.Time) (*WeightStats, error) {
	entries, err := s.List(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	stats := ComputeWeightTrend(entries)
	return &stats, nil
}

// ComputeWeightTrend expects entries sorted chronologically. Change is
// latest minus earliest in the window; fewer than two entries is always
// "stable" with zero change.
func ComputeWeightTrend(entries []models.WeightEntry) WeightStats {
	if len(entries) == 0 {
		return WeightStats{Trend: "stable"}
	}

	latest := entries[len(entries)-1].Weight
	change := latest - entries[0].Weight

	sum := 0.0
	for _, e := range entries {
		sum += e.Weight
	}
	average := math.Round(sum/float64(len(entries))*10) / 10

	trend := "stable"
	switch {
	case change < 0:
		trend = "decreasing"
	case change > 0:
		trend = "increasing"
	}

	return WeightStats{
		Current: latest,
		Change:  change,
		Average: average,
		Trend:   trend,
	}
}
