package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Rodeztrading/Dashboard/internal/errors"
	"github.com/Rodeztrading/Dashboard/internal/models"
	"github.com/Rodeztrading/Dashboard/internal/pagination"
	"github.com/Rodeztrading/Dashboard/internal/services"
	"github.com/Rodeztrading/Dashboard/internal/timeline"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn   func(userID uint, input services.TransactionInput) (*models.Transaction, error)
	getUserTransactionsFn func(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn  func(userID, transactionID uint) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID uint) error
	payBillFn             func(userID, transactionID uint) (*models.Transaction, error)
	getPendingBillsFn     func(userID uint) ([]models.Transaction, error)
	getCashflowTimelineFn func(userID uint, daysBack, daysForward int) ([]timeline.CashflowDay, error)
}

func (m *mockTransactionService) CreateTransaction(userID uint, input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

func (m *mockTransactionService) PayBill(userID, transactionID uint) (*models.Transaction, error) {
	if m.payBillFn != nil {
		return m.payBillFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetPendingBills(userID uint) ([]models.Transaction, error) {
	if m.getPendingBillsFn != nil {
		return m.getPendingBillsFn(userID)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetCashflowTimeline(userID uint, daysBack, daysForward int) ([]timeline.CashflowDay, error) {
	if m.getCashflowTimelineFn != nil {
		return m.getCashflowTimelineFn(userID, daysBack, daysForward)
	}
	return []timeline.CashflowDay{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetTransactions)
	auth.GET("/transactions/bills", handler.GetPendingBills)
	auth.GET("/transactions/timeline", handler.GetCashflowTimeline)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	auth.POST("/transactions/:id/pay", handler.PayBill)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(userID uint, input services.TransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					Base:      models.Base{ID: 1},
					UserID:    userID,
					AccountID: input.AccountID,
					Type:      input.Type,
					Amount:    input.Amount,
					Bucket:    input.Bucket,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, time.UTC))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"type":"expense","amount":120.5,"bucket":"stability","date":"2024-06-10"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["amount"].(float64) != 120.5 {
			t.Errorf("expected amount 120.5, got %v", tx["amount"])
		}
		if tx["bucket"] != "stability" {
			t.Errorf("expected bucket stability, got %v", tx["bucket"])
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, time.UTC))

		rec := doRequest(r, "POST", "/transactions", `{"account_id":1,"type":"donation","amount":10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad bucket", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, time.UTC))

		rec := doRequest(r, "POST", "/transactions", `{"account_id":1,"type":"expense","amount":10,"bucket":"luxury"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, time.UTC))

		rec := doRequest(r, "POST", "/transactions", `{"account_id":1,"type":"expense","amount":10,"date":"10/06/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("parses the date in the configured location", func(t *testing.T) {
		bogota := time.FixedZone("America/Bogota", -5*3600)
		var got time.Time
		svc := &mockTransactionService{
			createTransactionFn: func(_ uint, input services.TransactionInput) (*models.Transaction, error) {
				got = input.Date
				return &models.Transaction{Base: models.Base{ID: 1}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, bogota))

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":1,"type":"income","amount":10,"date":"2024-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		want := time.Date(2024, time.March, 1, 0, 0, 0, 0, bogota)
		if !got.Equal(want) {
			t.Errorf("expected local midnight %v, got %v", want, got)
		}
		// Midnight in Bogota is still March 1 there, not February 29 UTC.
		if got.In(bogota).Day() != 1 {
			t.Errorf("expected day 1 in location, got %d", got.In(bogota).Day())
		}
	})
}

func TestTransactionHandler_PayBill(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			payBillFn: func(_, transactionID uint) (*models.Transaction, error) {
				return &models.Transaction{
					Base:      models.Base{ID: transactionID},
					IsPending: true,
					IsPaid:    true,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, time.UTC))

		rec := doRequest(r, "POST", "/transactions/5/pay", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["is_paid"] != true {
			t.Error("expected is_paid true")
		}
	})

	t.Run("returns 409 when already paid", func(t *testing.T) {
		svc := &mockTransactionService{
			payBillFn: func(_, _ uint) (*models.Transaction, error) {
				return nil, apperrors.ErrBillAlreadyPaid
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, time.UTC))

		rec := doRequest(r, "POST", "/transactions/5/pay", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BILL_ALREADY_PAID")
	})
}

func TestTransactionHandler_GetCashflowTimeline(t *testing.T) {
	t.Run("passes window parameters", func(t *testing.T) {
		var gotBack, gotForward int
		svc := &mockTransactionService{
			getCashflowTimelineFn: func(_ uint, daysBack, daysForward int) ([]timeline.CashflowDay, error) {
				gotBack, gotForward = daysBack, daysForward
				return []timeline.CashflowDay{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, time.UTC))

		rec := doRequest(r, "GET", "/transactions/timeline?days_back=10&days_forward=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotBack != 10 || gotForward != 3 {
			t.Errorf("expected window 10/3, got %d/%d", gotBack, gotForward)
		}
	})

	t.Run("returns 400 on bad window", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, time.UTC))

		rec := doRequest(r, "GET", "/transactions/timeline?days_back=-4", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, time.UTC))

		rec := doRequest(r, "DELETE", "/transactions/3", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteTransactionFn: func(_, _ uint) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, time.UTC))

		rec := doRequest(r, "DELETE", "/transactions/3", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
