package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/dataset"
	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/web"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	store, err := dataset.LoadDefault()
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}

	site := config.SiteConfig{
		Name:        "Startup Perks",
		ShortName:   "Perks",
		Description: "Free credits for startups.",
		BaseURL:     "https://perks.example.com",
		GitHubURL:   "https://github.com/smartdev09/startup-perks",
	}

	pages, err := web.NewHandlers(store, site)
	if err != nil {
		t.Fatalf("failed to build page handlers: %v", err)
	}

	return NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 8080}, store, pages, "test-instance")
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func dataMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	m, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T", resp.Data)
	}
	return m
}

func TestHealth(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := dataMap(t, rec)
	if data["status"] != "healthy" {
		t.Errorf("status = %v", data["status"])
	}
	if data["instance_id"] != "test-instance" {
		t.Errorf("instance_id = %v", data["instance_id"])
	}
}

func TestListPerks(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/perks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}

	data := dataMap(t, rec)
	perks := data["perks"].([]any)
	if len(perks) == 0 {
		t.Fatal("expected perks")
	}
	if int(data["total"].(float64)) != len(perks) {
		t.Errorf("total = %v, len = %d", data["total"], len(perks))
	}
}

func TestListPerks_Filters(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name  string
		path  string
		check func(t *testing.T, perks []any)
	}{
		{
			name: "search",
			path: "/api/v1/perks?q=cloudflare",
			check: func(t *testing.T, perks []any) {
				if len(perks) != 1 {
					t.Fatalf("expected 1 perk, got %d", len(perks))
				}
				perk := perks[0].(map[string]any)
				if perk["id"] != "cloudflare-for-startups" {
					t.Errorf("id = %v", perk["id"])
				}
			},
		},
		{
			name: "category",
			path: "/api/v1/perks?categories=ai",
			check: func(t *testing.T, perks []any) {
				if len(perks) == 0 {
					t.Fatal("expected ai perks")
				}
				for _, p := range perks {
					if cat := p.(map[string]any)["category"]; cat != "ai" {
						t.Errorf("category = %v", cat)
					}
				}
			},
		},
		{
			name: "featured",
			path: "/api/v1/perks?featured=true",
			check: func(t *testing.T, perks []any) {
				if len(perks) == 0 {
					t.Fatal("expected featured perks")
				}
				for _, p := range perks {
					if p.(map[string]any)["featured"] != true {
						t.Errorf("non-featured perk in featured list")
					}
				}
			},
		},
		{
			name: "sort by company",
			path: "/api/v1/perks?sort=company",
			check: func(t *testing.T, perks []any) {
				if len(perks) < 2 {
					t.Fatal("expected perks")
				}
				first := perks[0].(map[string]any)["company"].(string)
				last := perks[len(perks)-1].(map[string]any)["company"].(string)
				if first > last {
					t.Errorf("not sorted: %q before %q", first, last)
				}
			},
		},
		{
			name: "unknown category ignored",
			path: "/api/v1/perks?categories=blockchain",
			check: func(t *testing.T, perks []any) {
				// Garbled filter values pass through without effect.
				if len(perks) == 0 {
					t.Error("expected unfiltered list")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			data := dataMap(t, rec)
			tt.check(t, data["perks"].([]any))
		})
	}
}

func TestGetPerk(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/perks/anthropic-startups")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	perk := resp.Data.(map[string]any)
	if perk["company"] != "Anthropic" {
		t.Errorf("company = %v", perk["company"])
	}
}

func TestGetPerk_NotFound(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/perks/retired-perk")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error == nil || resp.Error.Code != "not_found" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestListCategories(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := dataMap(t, rec)
	categories := data["categories"].([]any)
	if len(categories) != len(models.Categories) {
		t.Errorf("expected %d categories, got %d", len(models.Categories), len(categories))
	}
}

func TestCategoryPerks(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/categories/cloud/perks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := dataMap(t, rec)
	if data["category"] != "cloud" {
		t.Errorf("category = %v", data["category"])
	}
	if data["label"] != "Cloud Infrastructure" {
		t.Errorf("label = %v", data["label"])
	}
	for _, p := range data["perks"].([]any) {
		if cat := p.(map[string]any)["category"]; cat != "cloud" {
			t.Errorf("category = %v", cat)
		}
	}
}

func TestCategoryPerks_Unknown(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/categories/blockchain/perks")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestFeatured(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/featured")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := dataMap(t, rec)
	for _, p := range data["perks"].([]any) {
		if p.(map[string]any)["featured"] != true {
			t.Error("non-featured perk in featured list")
		}
	}
}

func TestStats(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	stats := resp.Data.(map[string]any)
	if stats["totalPerks"].(float64) < 30 {
		t.Errorf("totalPerks = %v", stats["totalPerks"])
	}
	if stats["estimatedValue"].(float64) < 1000000 {
		t.Errorf("estimatedValue = %v", stats["estimatedValue"])
	}
}

func TestCORSHeaders(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/perks", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
