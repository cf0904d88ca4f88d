package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestPendingBillFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "bills@example.com", "password123")
	account := app.createAccount(t, token, "Bancolombia", 1000)

	due := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	body := fmt.Sprintf(`{"account_id":%d,"type":"expense","amount":150,"bucket":"essential","description":"Internet","is_pending":true,"due_date":%q}`, account, due)

	var billID uint

	t.Run("pending bill does not touch the balance", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create bill failed: %d %s", rec.Code, rec.Body.String())
		}
		bill := parseJSON(t, rec)["transaction"].(map[string]interface{})
		billID = uint(bill["id"].(float64))

		if got := app.accountBalance(t, token, account); got != 1000 {
			t.Errorf("expected balance unchanged at 1000, got %g", got)
		}
	})

	t.Run("bill appears in pending list", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions/bills", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("list bills failed: %d %s", rec.Code, rec.Body.String())
		}
		bills := parseJSON(t, rec)["bills"].([]interface{})
		if len(bills) != 1 {
			t.Fatalf("expected 1 pending bill, got %d", len(bills))
		}
	})

	t.Run("paying the bill applies the expense", func(t *testing.T) {
		rec := app.request("POST", fmt.Sprintf("/api/v1/transactions/%d/pay", billID), "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("pay bill failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.accountBalance(t, token, account); got != 850 {
			t.Errorf("expected balance 850 after payment, got %g", got)
		}
	})

	t.Run("paying twice is rejected", func(t *testing.T) {
		rec := app.request("POST", fmt.Sprintf("/api/v1/transactions/%d/pay", billID), "", token)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("only expenses can be pending", func(t *testing.T) {
		other := app.createAccount(t, token, "Ahorros", 0)
		transfer := fmt.Sprintf(`{"account_id":%d,"to_account_id":%d,"type":"transfer","amount":50,"is_pending":true}`, account, other)
		rec := app.request("POST", "/api/v1/transactions", transfer, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for pending transfer, got %d: %s", rec.Code, rec.Body.String())
		}

		income := fmt.Sprintf(`{"account_id":%d,"type":"income","amount":50,"is_pending":true}`, account)
		rec = app.request("POST", "/api/v1/transactions", income, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for pending income, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("paid bill leaves the pending list", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions/bills", "", token)
		bills := parseJSON(t, rec)["bills"].([]interface{})
		if len(bills) != 0 {
			t.Errorf("expected empty pending list, got %d", len(bills))
		}
	})
}

func TestStabilityReplenishmentFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "stability@example.com", "password123")
	account := app.createAccount(t, token, "Fondo", 2000)

	body := fmt.Sprintf(`{"account_id":%d,"type":"expense","amount":400,"bucket":"stability","description":"Llanta pinchada"}`, account)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create stability expense failed: %d %s", rec.Code, rec.Body.String())
	}

	if got := app.accountBalance(t, token, account); got != 1600 {
		t.Errorf("expected balance 1600, got %g", got)
	}

	rec = app.request("GET", "/api/v1/transactions/bills", "", token)
	bills := parseJSON(t, rec)["bills"].([]interface{})
	if len(bills) != 1 {
		t.Fatalf("expected 1 replenishment bill, got %d", len(bills))
	}
	repl := bills[0].(map[string]interface{})
	if !strings.HasPrefix(repl["description"].(string), "Reponer: ") {
		t.Errorf("unexpected replenishment description: %v", repl["description"])
	}
	if repl["amount"].(float64) != 400 {
		t.Errorf("expected replenishment amount 400, got %v", repl["amount"])
	}
	if repl["category_name"] != "Deuda a Fondo de Estabilidad" {
		t.Errorf("unexpected replenishment category: %v", repl["category_name"])
	}
}
