//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type cartView struct {
	Rows []struct {
		ID       int     `json:"id"`
		Quantity int     `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
	} `json:"rows"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

func TestSystem_E2E_CartSurvivesReload(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	c := newShopper(t)

	var catalog struct {
		Cards []map[string]any `json:"cards"`
	}
	doJSON(t, c, http.MethodGet, baseURL+"/api/products", &catalog, 200)
	if len(catalog.Cards) < 2 {
		t.Fatalf("expected seeded products, got %d", len(catalog.Cards))
	}

	var v cartView
	doJSON(t, c, http.MethodPost, baseURL+"/api/cart/items/1", &v, 200)
	doJSON(t, c, http.MethodPost, baseURL+"/api/cart/items/1/increment", &v, 200)
	doJSON(t, c, http.MethodPost, baseURL+"/api/cart/items/2", &v, 200)
	if v.Count != 3 || len(v.Rows) != 2 {
		t.Fatalf("unexpected cart after adds: %+v", v)
	}

	doJSON(t, c, http.MethodPost, baseURL+"/api/cart/items/999", nil, 404)

	want := fmt.Sprintf("%.2f", v.Total)

	if os.Getenv("E2E_RESTART_STOREFRONT") == "1" {
		restartStorefrontContainer(t, ctx)
		waitReady(t, ctx, baseURL+"/readyz")
	}

	doJSON(t, c, http.MethodGet, baseURL+"/api/cart", &v, 200)
	if got := fmt.Sprintf("%.2f", v.Total); got != want || v.Count != 3 {
		t.Fatalf("cart changed across reload: total=%s count=%d want total=%s count=3", got, v.Count, want)
	}

	doJSON(t, c, http.MethodDelete, baseURL+"/api/cart/items/1", &v, 200)
	doJSON(t, c, http.MethodDelete, baseURL+"/api/cart/items/1", &v, 200)
	if v.Count != 1 {
		t.Fatalf("count=%d want=1", v.Count)
	}

	other := newShopper(t)
	doJSON(t, other, http.MethodGet, baseURL+"/api/cart", &v, 200)
	if v.Count != 0 {
		t.Fatalf("fresh profile sees count=%d", v.Count)
	}
}

func newShopper(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Timeout: 5 * time.Second, Jar: jar}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, client *http.Client, method, url string, out any, want int) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
