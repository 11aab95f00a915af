// Package seo builds the machine-readable surfaces of the site: schema.org
// JSON-LD blocks, the XML sitemap, and the web app manifest.
package seo

import (
	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/models"
)

const schemaContext = "https://schema.org"

// Organization is the schema.org Organization block for the site owner.
type Organization struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Logo        string   `json:"logo"`
	Description string   `json:"description"`
	SameAs      []string `json:"sameAs"`
}

// WebSite is the schema.org WebSite block with a SearchAction pointing at
// the perks search page.
type WebSite struct {
	Context         string       `json:"@context"`
	Type            string       `json:"@type"`
	Name            string       `json:"name"`
	URL             string       `json:"url"`
	Description     string       `json:"description"`
	PotentialAction SearchAction `json:"potentialAction"`
}

// SearchAction describes how crawlers reach the site search.
type SearchAction struct {
	Type       string     `json:"@type"`
	Target     EntryPoint `json:"target"`
	QueryInput string     `json:"query-input"`
}

// EntryPoint holds the URL template of a SearchAction.
type EntryPoint struct {
	Type        string `json:"@type"`
	URLTemplate string `json:"urlTemplate"`
}

// Product is the schema.org Product block for a single perk.
type Product struct {
	Context     string          `json:"@context,omitempty"`
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Provider    Provider        `json:"provider"`
	Offers      Offer           `json:"offers"`
	Category    models.Category `json:"category,omitempty"`
}

// Provider is the organization offering a perk.
type Provider struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Offer describes the credit value of a perk.
type Offer struct {
	Type         string `json:"@type"`
	Description  string `json:"description"`
	Availability string `json:"availability"`
	Eligibility  string `json:"eligibility,omitempty"`
}

// ItemList is a schema.org ItemList over perk listings.
type ItemList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	Name            string     `json:"name"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ListItem is one positioned entry of an ItemList or BreadcrumbList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Item     any    `json:"item,omitempty"`
}

// BreadcrumbList is a schema.org BreadcrumbList.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Breadcrumb is one navigation step; URL is site-relative.
type Breadcrumb struct {
	Name string
	URL  string
}

// OrganizationSchema builds the Organization block from site config.
func OrganizationSchema(site config.SiteConfig) Organization {
	return Organization{
		Context:     schemaContext,
		Type:        "Organization",
		Name:        site.Name,
		URL:         site.BaseURL,
		Logo:        site.BaseURL + "/logo.png",
		Description: site.Description,
		SameAs:      []string{site.GitHubURL},
	}
}

// WebSiteSchema builds the WebSite block with its search action.
func WebSiteSchema(site config.SiteConfig) WebSite {
	return WebSite{
		Context:     schemaContext,
		Type:        "WebSite",
		Name:        site.Name,
		URL:         site.BaseURL,
		Description: site.Description,
		PotentialAction: SearchAction{
			Type: "SearchAction",
			Target: EntryPoint{
				Type:        "EntryPoint",
				URLTemplate: site.BaseURL + "/perks?q={search_term_string}",
			},
			QueryInput: "required name=search_term_string",
		},
	}
}

// PerkSchema builds the Product block for one perk.
func PerkSchema(perk models.Perk) Product {
	return Product{
		Context:     schemaContext,
		Type:        "Product",
		Name:        perk.Name,
		Description: perk.Description,
		Provider:    Provider{Type: "Organization", Name: perk.Company},
		Offers: Offer{
			Type:         "Offer",
			Description:  perk.Credits,
			Availability: "https://schema.org/InStock",
			Eligibility:  perk.Eligibility,
		},
		Category: perk.Category,
	}
}

// ItemListSchema builds the ItemList block for a perk listing page.
func ItemListSchema(perks []models.Perk, listName string) ItemList {
	items := make([]ListItem, 0, len(perks))
	for i, perk := range perks {
		product := PerkSchema(perk)
		product.Context = "" // nested products inherit the list context
		product.Category = ""
		product.Offers.Eligibility = ""
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Item:     product,
		})
	}
	return ItemList{
		Context:         schemaContext,
		Type:            "ItemList",
		Name:            listName,
		NumberOfItems:   len(perks),
		ItemListElement: items,
	}
}

// BreadcrumbSchema builds the BreadcrumbList block from site-relative steps.
func BreadcrumbSchema(site config.SiteConfig, crumbs []Breadcrumb) BreadcrumbList {
	items := make([]ListItem, 0, len(crumbs))
	for i, crumb := range crumbs {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     crumb.Name,
			Item:     site.BaseURL + crumb.URL,
		})
	}
	return BreadcrumbList{
		Context:         schemaContext,
		Type:            "BreadcrumbList",
		ItemListElement: items,
	}
}
