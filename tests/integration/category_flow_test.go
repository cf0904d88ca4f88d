package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCategorySeedingFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "categories@example.com", "password123")

	var facturas map[string]interface{}

	t.Run("first read seeds the default set", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("get categories failed: %d %s", rec.Code, rec.Body.String())
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 5 {
			t.Fatalf("expected 5 seeded categories, got %d", len(categories))
		}
		for _, c := range categories {
			cat := c.(map[string]interface{})
			if cat["name"] == "Facturas" {
				facturas = cat
			}
		}
		if facturas == nil {
			t.Fatal("expected Facturas among the seeded categories")
		}
		if subs := facturas["subcategories"].([]interface{}); len(subs) == 0 {
			t.Error("expected Facturas to come with subcategories")
		}
	})

	t.Run("creating a new top-level category is rejected", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/categories",
			`{"name":"Mascotas","type":"expense"}`, token)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("subcategory lifecycle", func(t *testing.T) {
		catID := uint(facturas["id"].(float64))
		rec := app.request("POST", fmt.Sprintf("/api/v1/categories/%d/subcategories", catID),
			`{"name":"Gimnasio"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add subcategory failed: %d %s", rec.Code, rec.Body.String())
		}
		sub := parseJSON(t, rec)["subcategory"].(map[string]interface{})
		subID := uint(sub["id"].(float64))

		rec = app.request("DELETE", fmt.Sprintf("/api/v1/categories/%d/subcategories/%d", catID, subID), "", token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("remove subcategory failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("DELETE", fmt.Sprintf("/api/v1/categories/%d/subcategories/%d", catID, subID), "", token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 on double remove, got %d", rec.Code)
		}
	})

	t.Run("rename keeps the set closed", func(t *testing.T) {
		catID := uint(facturas["id"].(float64))
		rec := app.request("PUT", fmt.Sprintf("/api/v1/categories/%d", catID),
			`{"name":"Cuentas","color":"#AA0000"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("update category failed: %d %s", rec.Code, rec.Body.String())
		}
		cat := parseJSON(t, rec)["category"].(map[string]interface{})
		if cat["name"] != "Cuentas" {
			t.Errorf("expected renamed category, got %v", cat["name"])
		}

		rec = app.request("GET", "/api/v1/categories", "", token)
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 5 {
			t.Errorf("expected the set to stay at 5, got %d", len(categories))
		}
	})
}
