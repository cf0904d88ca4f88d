package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// createAccount creates an account over the API and returns its ID.
func (app *testApp) createAccount(t *testing.T, token, name string, initialBalance float64) uint {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":"bank","initial_balance":%g}`, name, initialBalance)
	rec := app.request("POST", "/api/v1/accounts", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	account := result["account"].(map[string]interface{})
	return uint(account["id"].(float64))
}

// accountBalance reads an account's current balance over the API.
func (app *testApp) accountBalance(t *testing.T, token string, id uint) float64 {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/api/v1/accounts/%d", id), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get account failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["account"].(map[string]interface{})["balance"].(float64)
}

func TestAccountAndTransactionFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "money@example.com", "password123")

	var checking, savings uint

	t.Run("create accounts", func(t *testing.T) {
		checking = app.createAccount(t, token, "Bancolombia", 1000)
		savings = app.createAccount(t, token, "Ahorros", 0)

		if got := app.accountBalance(t, token, checking); got != 1000 {
			t.Errorf("expected balance 1000, got %g", got)
		}
	})

	t.Run("initial balance leaves no transaction behind", func(t *testing.T) {
		rec := app.request("GET", fmt.Sprintf("/api/v1/transactions?account_id=%d", checking), "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("list transactions failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 0 {
			t.Fatalf("expected empty history for a fresh account, got %d rows", len(data))
		}
	})

	t.Run("income raises balance", func(t *testing.T) {
		body := fmt.Sprintf(`{"account_id":%d,"type":"income","amount":500,"description":"Salario"}`, checking)
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create income failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.accountBalance(t, token, checking); got != 1500 {
			t.Errorf("expected balance 1500, got %g", got)
		}
	})

	t.Run("expense lowers balance", func(t *testing.T) {
		body := fmt.Sprintf(`{"account_id":%d,"type":"expense","amount":200,"bucket":"essential","description":"Mercado"}`, checking)
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.accountBalance(t, token, checking); got != 1300 {
			t.Errorf("expected balance 1300, got %g", got)
		}
	})

	t.Run("transfer moves funds between accounts", func(t *testing.T) {
		body := fmt.Sprintf(`{"account_id":%d,"to_account_id":%d,"type":"transfer","amount":300}`, checking, savings)
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create transfer failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.accountBalance(t, token, checking); got != 1000 {
			t.Errorf("expected source balance 1000, got %g", got)
		}
		if got := app.accountBalance(t, token, savings); got != 300 {
			t.Errorf("expected target balance 300, got %g", got)
		}
	})

	t.Run("deleting a transaction reverses its effect", func(t *testing.T) {
		body := fmt.Sprintf(`{"account_id":%d,"type":"expense","amount":100,"bucket":"rewards"}`, checking)
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
		}
		created := parseJSON(t, rec)["transaction"].(map[string]interface{})
		id := uint(created["id"].(float64))

		rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%d", id), "", token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
		}
		if got := app.accountBalance(t, token, checking); got != 1000 {
			t.Errorf("expected balance restored to 1000, got %g", got)
		}
	})

	t.Run("account with history cannot be deleted", func(t *testing.T) {
		rec := app.request("DELETE", fmt.Sprintf("/api/v1/accounts/%d", checking), "", token)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("accounts are invisible to other users", func(t *testing.T) {
		otherToken, _, _ := app.registerUser(t, "other@example.com", "password123")
		rec := app.request("GET", fmt.Sprintf("/api/v1/accounts/%d", checking), "", otherToken)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
