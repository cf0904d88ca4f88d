package services

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
	"github.com/Rodeztrading/Dashboard/internal/pagination"
	"github.com/Rodeztrading/Dashboard/internal/storage"
	"github.com/Rodeztrading/Dashboard/internal/timeline"
	"github.com/Rodeztrading/Dashboard/internal/uuid"
)

// tradeService handles the binary-options trading journal. The image
// store is optional; without one screenshots stay inline as base64.
type tradeService struct {
	db    *gorm.DB
	store storage.ImageStore
	loc   *time.Location
}

// NewTradeService creates a new TradeServicer. store may be nil.
func NewTradeService(db *gorm.DB, store storage.ImageStore, loc *time.Location) TradeServicer {
	return &tradeService{db: db, store: store, loc: loc}
}

// CreateTrade journals a trade. When an image store is configured the
// entry screenshot is uploaded under a time-ordered object key and only
// its URI is persisted.
func (s *tradeService) CreateTrade(ctx context.Context, userID uint, input TradeInput) (*models.Trade, error) {
	switch input.Action {
	case models.TradeActionCall, models.TradeActionPut:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "action must be CALL or PUT")
	}
	switch input.Outcome {
	case models.TradeOutcomeWin, models.TradeOutcomeLoss:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "outcome must be WIN or LOSS")
	}
	if input.AmountInvested <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount invested must be greater than zero")
	}
	if input.Payout < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payout cannot be negative")
	}

	trade := &models.Trade{
		UserID:         userID,
		ImageData:      input.ImageData,
		ImageMimeType:  input.ImageMimeType,
		ResultImage:    input.ResultImage,
		ResultMimeType: input.ResultMimeType,
		Action:         input.Action,
		Outcome:        input.Outcome,
		AmountInvested: input.AmountInvested,
		Payout:         input.Payout,
	}

	if s.store != nil && input.ImageData != "" {
		data, err := base64.StdEncoding.DecodeString(input.ImageData)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "image data is not valid base64")
		}
		uri, err := s.store.Upload(ctx, "trades/"+uuid.New(), input.ImageMimeType, data)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		trade.ImageURL = uri
		trade.ImageData = ""
	}

	if err := s.db.Create(trade).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return trade, nil
}

// GetUserTrades returns the user's trades, newest first.
func (s *tradeService) GetUserTrades(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	page.Defaults()

	query := s.db.Model(&models.Trade{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var trades []models.Trade
	if err := query.Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(trades, page.Page, page.PageSize, total)
	return &response, nil
}

// DeleteTrade removes a trade and its stored screenshot, if any.
func (s *tradeService) DeleteTrade(ctx context.Context, userID, tradeID uint) error {
	var trade models.Trade
	if err := s.db.Where("id = ? AND user_id = ?", tradeID, userID).First(&trade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTradeNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&trade).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if s.store != nil && trade.ImageURL != "" {
		if err := s.store.Delete(ctx, trade.ImageURL); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// GetTradeTimeline builds the daily trading calendar around today.
func (s *tradeService) GetTradeTimeline(userID uint, daysBack, daysForward int) ([]timeline.TradingDay, error) {
	now := time.Now().In(s.loc)
	from := now.AddDate(0, 0, -(daysBack + 1))
	to := now.AddDate(0, 0, daysForward+1)

	var trades []models.Trade
	if err := s.db.Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
		Order("created_at ASC").
		Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return timeline.Trades(trades, daysBack, daysForward, now, s.loc), nil
}
