package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
	"github.com/Rodeztrading/Dashboard/internal/pagination"
	"github.com/Rodeztrading/Dashboard/internal/services"
)

// TradeHandler handles trading-journal requests.
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CreateTradeRequest represents the request payload for journaling a trade.
// Screenshots are base64-encoded.
type CreateTradeRequest struct {
	ImageData      string              `json:"image_data"`
	ImageMimeType  string              `json:"image_mime_type" binding:"max=100"`
	ResultImage    string              `json:"result_image"`
	ResultMimeType string              `json:"result_mime_type" binding:"max=100"`
	Action         models.TradeAction  `json:"action" binding:"required,trade_action"`
	Outcome        models.TradeOutcome `json:"outcome" binding:"required,trade_outcome"`
	AmountInvested float64             `json:"amount_invested" binding:"required,gt=0"`
	Payout         float64             `json:"payout" binding:"gte=0"`
}

// CreateTrade journals a new trade
// @Summary     Journal a trade
// @Description Record a binary-option trade with its screenshots
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTradeRequest true "Trade details"
// @Success     201 {object} models.Trade "Trade created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trades [post]
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), userID, services.TradeInput{
		ImageData:      req.ImageData,
		ImageMimeType:  req.ImageMimeType,
		ResultImage:    req.ResultImage,
		ResultMimeType: req.ResultMimeType,
		Action:         req.Action,
		Outcome:        req.Outcome,
		AmountInvested: req.AmountInvested,
		Payout:         req.Payout,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trade": trade})
}

// GetTrades lists the user's trades
// @Summary     List trades
// @Description Get the user's journaled trades, newest first
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Trade] "Trades"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trades [get]
func (h *TradeHandler) GetTrades(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	trades, err := h.tradeService.GetUserTrades(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trades)
}

// DeleteTrade removes a trade
// @Summary     Delete a trade
// @Description Delete a journaled trade and its stored screenshot
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Trade ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tradeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tradeService.DeleteTrade(c.Request.Context(), userID, tradeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTradeTimeline returns the daily trading calendar
// @Summary     Trading timeline
// @Description Get per-day trade statistics around today
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       days_back query int false "Days before today (default 30)"
// @Param       days_forward query int false "Days after today (default 5)"
// @Success     200 {array} timeline.TradingDay "Timeline"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trades/timeline [get]
func (h *TradeHandler) GetTradeTimeline(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	daysBack, daysForward, err := parseWindow(c, 30, 5)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days, err := h.tradeService.GetTradeTimeline(userID, daysBack, daysForward)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": days})
}
