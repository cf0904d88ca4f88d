package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rodeztrading/Dashboard/internal/services"
)

// BudgetHandler serves the monthly financial summary.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetSummary computes the monthly financial summary
// @Summary     Monthly financial summary
// @Description Get the 50/25/15/10 bucket allocation and monthly totals for a month
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Target month (YYYY-MM, defaults to the current month)"
// @Success     200 {object} allocation.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Malformed transaction history"
// @Router      /budget/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
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

	summary, err := h.budgetService.GetFinancialSummary(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
