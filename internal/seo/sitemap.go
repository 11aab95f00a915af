package seo

import (
	"encoding/xml"
	"time"

	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/models"
)

// Sitemap is the <urlset> root of sitemap.xml.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// SitemapSource is the read surface the sitemap needs from the dataset.
type SitemapSource interface {
	All() []models.Perk
	CategorySummaries() []models.CategorySummary
}

// BuildSitemap enumerates every page of the site: the fixed routes, one URL
// per category, and one per perk.
func BuildSitemap(site config.SiteConfig, ds SitemapSource, now time.Time) Sitemap {
	lastMod := now.UTC().Format("2006-01-02")

	urls := []SitemapURL{
		{Loc: site.BaseURL, LastMod: lastMod, ChangeFreq: "daily", Priority: 1.0},
		{Loc: site.BaseURL + "/perks", LastMod: lastMod, ChangeFreq: "daily", Priority: 0.9},
		{Loc: site.BaseURL + "/contribute", LastMod: lastMod, ChangeFreq: "monthly", Priority: 0.7},
	}

	for _, summary := range ds.CategorySummaries() {
		urls = append(urls, SitemapURL{
			Loc:        site.BaseURL + "/perks/category/" + string(summary.Category),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	for _, perk := range ds.All() {
		urls = append(urls, SitemapURL{
			Loc:        site.BaseURL + "/perks/" + perk.ID,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	return Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

// Manifest is the web app manifest served at /manifest.webmanifest.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

// ManifestIcon is one icon entry of the manifest.
type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// BuildManifest builds the manifest from site config.
func BuildManifest(site config.SiteConfig) Manifest {
	return Manifest{
		Name:            site.Name,
		ShortName:       site.ShortName,
		Description:     site.Description,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#000000",
		Icons: []ManifestIcon{
			{Src: "/favicon.ico", Sizes: "any", Type: "image/x-icon"},
		},
	}
}
