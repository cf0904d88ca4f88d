package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rodeztrading/Dashboard/internal/custody"
	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
)

// custodyService resolves the custody calendar: the fixed rotation
// overlaid with the user's per-day overrides.
type custodyService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewCustodyService creates a new CustodyServicer.
func NewCustodyService(db *gorm.DB, loc *time.Location) CustodyServicer {
	return &custodyService{db: db, loc: loc}
}

// GetMonth resolves every day of the given "YYYY-MM" month.
func (s *custodyService) GetMonth(userID uint, month string) ([]CustodyDay, error) {
	start, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return nil, apperrors.ErrInvalidMonthKey
	}
	end := start.AddDate(0, 1, 0)

	var overrides []models.CustodyOverride
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?",
		userID, custody.DayKey(start, s.loc), custody.DayKey(end, s.loc)).
		Find(&overrides).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byDate := make(map[string]models.CustodyOverride, len(overrides))
	for _, o := range overrides {
		byDate[o.Date] = o
	}

	var days []CustodyDay
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := custody.DayKey(d, s.loc)
		day := CustodyDay{Date: key, Responsible: custody.Responsible(d, s.loc)}
		if o, ok := byDate[key]; ok {
			day.Responsible = o.Responsible
			day.IsOverride = true
			day.OriginalResponsible = o.OriginalResponsible
		}
		days = append(days, day)
	}
	return days, nil
}

// GetDay resolves a single "YYYY-MM-DD" day.
func (s *custodyService) GetDay(userID uint, date string) (*CustodyDay, error) {
	computed, err := custody.ResponsibleForKey(date)
	if err != nil {
		return nil, apperrors.ErrInvalidDateKey
	}

	day := &CustodyDay{Date: date, Responsible: computed}
	var override models.CustodyOverride
	err = s.db.Where("user_id = ? AND date = ?", userID, date).First(&override).Error
	switch {
	case err == nil:
		day.Responsible = override.Responsible
		day.IsOverride = true
		day.OriginalResponsible = override.OriginalResponsible
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return day, nil
}

// ToggleDay flips the responsible party for a day. The first toggle
// records the computed baseline; later toggles flip in place and keep
// the original baseline untouched.
func (s *custodyService) ToggleDay(userID uint, date string) (*CustodyDay, error) {
	computed, err := custody.ResponsibleForKey(date)
	if err != nil {
		return nil, apperrors.ErrInvalidDateKey
	}

	var override models.CustodyOverride
	err = s.db.Where("user_id = ? AND date = ?", userID, date).First(&override).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		override = models.CustodyOverride{
			UserID:              userID,
			Date:                date,
			Responsible:         custody.Flip(computed),
			OriginalResponsible: computed,
		}
		if err := s.db.Create(&override).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		override.Responsible = custody.Flip(override.Responsible)
		if err := s.db.Model(&override).Update("responsible", override.Responsible).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &CustodyDay{
		Date:                date,
		Responsible:         override.Responsible,
		IsOverride:          true,
		OriginalResponsible: override.OriginalResponsible,
	}, nil
}

// DeleteOverride reverts a day to the computed rotation.
func (s *custodyService) DeleteOverride(userID uint, date string) error {
	if _, err := custody.ResponsibleForKey(date); err != nil {
		return apperrors.ErrInvalidDateKey
	}

	result := s.db.Unscoped().Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.CustodyOverride{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOverrideNotFound
	}
	return nil
}
