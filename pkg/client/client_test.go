package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/smartdev09/startup-perks/internal/api"
	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/dataset"
	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/web"
)

func testAPI(t *testing.T) *httptest.Server {
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

	server := api.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, store, pages, "test-instance")
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestListPerks(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	list, err := c.ListPerks(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListPerks failed: %v", err)
	}
	if list.Total == 0 || len(list.Perks) != list.Total {
		t.Errorf("total = %d, perks = %d", list.Total, len(list.Perks))
	}
}

func TestListPerks_Filtered(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	list, err := c.ListPerks(context.Background(), ListOptions{
		Categories:   []models.Category{models.CategoryAI},
		FeaturedOnly: true,
		SortBy:       "value",
	})
	if err != nil {
		t.Fatalf("ListPerks failed: %v", err)
	}
	if len(list.Perks) == 0 {
		t.Fatal("expected featured ai perks")
	}
	for _, perk := range list.Perks {
		if perk.Category != models.CategoryAI {
			t.Errorf("perk %s category = %s", perk.ID, perk.Category)
		}
		if !perk.Featured {
			t.Errorf("perk %s not featured", perk.ID)
		}
	}
}

func TestGetPerk(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	perk, err := c.GetPerk(context.Background(), "cloudflare-for-startups")
	if err != nil {
		t.Fatalf("GetPerk failed: %v", err)
	}
	if perk.Company != "Cloudflare" {
		t.Errorf("company = %q", perk.Company)
	}
}

func TestGetPerk_NotFound(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	_, err := c.GetPerk(context.Background(), "retired-perk")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	list, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if list.Total != len(models.Categories) {
		t.Errorf("total = %d, want %d", list.Total, len(models.Categories))
	}
}

func TestGetCategoryPerks(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	perks, err := c.GetCategoryPerks(context.Background(), models.CategoryCloud)
	if err != nil {
		t.Fatalf("GetCategoryPerks failed: %v", err)
	}
	if perks.Category != models.CategoryCloud {
		t.Errorf("category = %s", perks.Category)
	}
	if perks.Label != "Cloud Infrastructure" {
		t.Errorf("label = %q", perks.Label)
	}
	if len(perks.Perks) == 0 {
		t.Error("expected cloud perks")
	}
}

func TestGetFeatured(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	list, err := c.GetFeatured(context.Background())
	if err != nil {
		t.Fatalf("GetFeatured failed: %v", err)
	}
	for _, perk := range list.Perks {
		if !perk.Featured {
			t.Errorf("perk %s not featured", perk.ID)
		}
	}
}

func TestGetStats(t *testing.T) {
	ts := testAPI(t)
	c := NewClient(ts.URL)

	stats, err := c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalPerks == 0 {
		t.Error("expected perks in stats")
	}
	if stats.TotalCategories != len(models.Categories) {
		t.Errorf("totalCategories = %d", stats.TotalCategories)
	}
}
