package integration

import (
	"net/http"
	"testing"
)

func TestCustodyFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "custody@example.com", "password123")

	t.Run("month follows the four-day rotation", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/custody?month=2024-01", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("get month failed: %d %s", rec.Code, rec.Body.String())
		}
		days := parseJSON(t, rec)["days"].([]interface{})
		if len(days) != 31 {
			t.Fatalf("expected 31 days, got %d", len(days))
		}

		byDate := make(map[string]map[string]interface{}, len(days))
		for _, d := range days {
			day := d.(map[string]interface{})
			byDate[day["date"].(string)] = day
		}
		for date, want := range map[string]string{
			"2024-01-03": "DAD",
			"2024-01-04": "DAD",
			"2024-01-05": "MOM",
			"2024-01-06": "MOM",
			"2024-01-07": "DAD",
		} {
			if got := byDate[date]["responsible"]; got != want {
				t.Errorf("%s: expected %s, got %v", date, want, got)
			}
		}
	})

	t.Run("toggle flips a day and marks the override", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/custody/2024-01-03/toggle", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle failed: %d %s", rec.Code, rec.Body.String())
		}
		day := parseJSON(t, rec)["day"].(map[string]interface{})
		if day["responsible"] != "MOM" {
			t.Errorf("expected MOM after toggle, got %v", day["responsible"])
		}
		if day["is_override"] != true {
			t.Error("expected is_override true")
		}
		if day["original_responsible"] != "DAD" {
			t.Errorf("expected baseline DAD, got %v", day["original_responsible"])
		}
	})

	t.Run("delete override reverts to the rotation", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/custody/2024-01-03", "", token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete override failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/custody/2024-01-03", "", token)
		day := parseJSON(t, rec)["day"].(map[string]interface{})
		if day["responsible"] != "DAD" || day["is_override"] != false {
			t.Errorf("expected computed DAD with no override, got %v", day)
		}
	})

	t.Run("deleting a missing override is a 404", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/custody/2024-01-03", "", token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("overrides are per user", func(t *testing.T) {
		otherToken, _, _ := app.registerUser(t, "custody2@example.com", "password123")
		rec := app.request("POST", "/api/v1/custody/2024-01-04/toggle", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/custody/2024-01-04", "", otherToken)
		day := parseJSON(t, rec)["day"].(map[string]interface{})
		if day["responsible"] != "DAD" || day["is_override"] != false {
			t.Errorf("expected the other user to see the computed day, got %v", day)
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/custody/03-01-2024", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}
