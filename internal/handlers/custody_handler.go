package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rodeztrading/Dashboard/internal/services"
)

// CustodyHandler serves the custody calendar.
type CustodyHandler struct {
	custodyService services.CustodyServicer
}

// NewCustodyHandler creates a new CustodyHandler.
func NewCustodyHandler(custodyService services.CustodyServicer) *CustodyHandler {
	return &CustodyHandler{custodyService: custodyService}
}

// GetMonth resolves a month of the custody calendar
// @Summary     Custody month view
// @Description Get the resolved custody schedule for a month, overrides applied
// @Tags        custody
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Target month (YYYY-MM, defaults to the current month)"
// @Success     200 {array} services.CustodyDay "Resolved days"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /custody [get]
func (h *CustodyHandler) GetMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days, err := h.custodyService.GetMonth(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetDay resolves a single custody day
// @Summary     Custody day view
// @Description Get the responsible party for one day
// @Tags        custody
// @Produce     json
// @Security    BearerAuth
// @Param       date path string true "Day (YYYY-MM-DD)"
// @Success     200 {object} services.CustodyDay "Resolved day"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /custody/{date} [get]
func (h *CustodyHandler) GetDay(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	day, err := h.custodyService.GetDay(userID, c.Param("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day})
}

// ToggleDay flips the responsible party for a day
// @Summary     Toggle a custody day
// @Description Flip the responsible party for one day, recording the rotation baseline
// @Tags        custody
// @Produce     json
// @Security    BearerAuth
// @Param       date path string true "Day (YYYY-MM-DD)"
// @Success     200 {object} services.CustodyDay "Resolved day after toggling"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /custody/{date}/toggle [post]
func (h *CustodyHandler) ToggleDay(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	day, err := h.custodyService.ToggleDay(userID, c.Param("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day})
}

// DeleteOverride reverts a day to the rotation
// @Summary     Delete a custody override
// @Description Remove the override for one day, reverting it to the computed rotation
// @Tags        custody
// @Produce     json
// @Security    BearerAuth
// @Param       date path string true "Day (YYYY-MM-DD)"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No override for this day"
// @Router      /custody/{date} [delete]
func (h *CustodyHandler) DeleteOverride(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.custodyService.DeleteOverride(userID, c.Param("date")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
