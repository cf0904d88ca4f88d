package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
	"github.com/Rodeztrading/Dashboard/internal/pagination"
	"github.com/Rodeztrading/Dashboard/internal/services"
)

// TransactionHandler handles transaction-related requests. Date keys
// are parsed in loc, the same location the services bucket by.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	loc                *time.Location
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, loc *time.Location) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, loc: loc}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Dates use the YYYY-MM-DD calendar format.
type CreateTransactionRequest struct {
	AccountID          uint                   `json:"account_id" binding:"required"`
	ToAccountID        *uint                  `json:"to_account_id"`
	Type               models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount             float64                `json:"amount" binding:"required,gt=0"`
	Description        string                 `json:"description" binding:"max=500"`
	Date               string                 `json:"date" binding:"omitempty,date_key"`
	CategoryID         *uint                  `json:"category_id"`
	SubcategoryID      *uint                  `json:"subcategory_id"`
	CategoryName       string                 `json:"category_name" binding:"max=100"`
	IsPending          bool                   `json:"is_pending"`
	DueDate            string                 `json:"due_date" binding:"omitempty,date_key"`
	Bucket             models.BudgetBucket    `json:"bucket" binding:"omitempty,budget_bucket"`
	InvestmentName     string                 `json:"investment_name" binding:"max=100"`
	IsInvestmentReturn bool                   `json:"is_investment_return"`
}

// TransactionFilterRequest holds the optional list filters.
type TransactionFilterRequest struct {
	FromDate   string `form:"from_date" binding:"omitempty,date_key"`
	ToDate     string `form:"to_date" binding:"omitempty,date_key"`
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	CategoryID *uint  `form:"category_id"`
	AccountID  *uint  `form:"account_id"`
	Bucket     string `form:"bucket" binding:"omitempty,budget_bucket"`
}

func parseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, loc)
}

// CreateTransaction records a new transaction
// @Summary     Create a transaction
// @Description Record an income, expense or transfer and apply its balance effect
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.TransactionInput{
		AccountID:          req.AccountID,
		ToAccountID:        req.ToAccountID,
		Type:               req.Type,
		Amount:             req.Amount,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		SubcategoryID:      req.SubcategoryID,
		CategoryName:       req.CategoryName,
		IsPending:          req.IsPending,
		Bucket:             req.Bucket,
		InvestmentName:     req.InvestmentName,
		IsInvestmentReturn: req.IsInvestmentReturn,
	}
	if req.Date != "" {
		date, err := parseDateKey(req.Date, h.loc)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
		input.Date = date
	}
	if req.DueDate != "" {
		due, err := parseDateKey(req.DueDate, h.loc)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid due_date"))
			return
		}
		input.DueDate = &due
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists the user's transactions
// @Summary     List transactions
// @Description Get a filtered, paginated list of the user's transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Param       from_date query string false "Start date (YYYY-MM-DD)"
// @Param       to_date query string false "End date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type"
// @Param       category_id query int false "Category ID"
// @Param       account_id query int false "Account ID"
// @Param       bucket query string false "Budget bucket"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
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

	var req TransactionFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
	}
	if req.FromDate != "" {
		from, _ := parseDateKey(req.FromDate, h.loc)
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, _ := parseDateKey(req.ToDate, h.loc)
		end := to.AddDate(0, 0, 1)
		filter.ToDate = &end
	}
	if req.Type != "" {
		t := models.TransactionType(req.Type)
		filter.Type = &t
	}
	if req.Bucket != "" {
		b := models.BudgetBucket(req.Bucket)
		filter.Bucket = &b
	}

	transactions, err := h.transactionService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransaction retrieves a single transaction
// @Summary     Get a transaction
// @Description Get one of the user's transactions by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction and reverse its balance effect
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PayBill settles a pending bill
// @Summary     Pay a bill
// @Description Mark a pending bill as paid and apply its balance effect
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Paid bill"
// @Failure     400 {object} ErrorResponse "Not a pending bill"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already paid"
// @Router      /transactions/{id}/pay [post]
func (h *TransactionHandler) PayBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.PayBill(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// GetPendingBills lists unpaid bills
// @Summary     List pending bills
// @Description Get the user's unpaid bills ordered by due date
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Transaction "Pending bills"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/bills [get]
func (h *TransactionHandler) GetPendingBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bills, err := h.transactionService.GetPendingBills(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetCashflowTimeline returns the daily cashflow calendar
// @Summary     Cashflow timeline
// @Description Get per-day income and expense totals around today
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       days_back query int false "Days before today (default 30)"
// @Param       days_forward query int false "Days after today (default 5)"
// @Success     200 {array} timeline.CashflowDay "Timeline"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/timeline [get]
func (h *TransactionHandler) GetCashflowTimeline(c *gin.Context) {
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

	days, err := h.transactionService.GetCashflowTimeline(userID, daysBack, daysForward)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": days})
}
