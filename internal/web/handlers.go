package web

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/dataset"
	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/query"
	"github.com/smartdev09/startup-perks/internal/seo"
	"github.com/smartdev09/startup-perks/internal/view"
)

// Handlers serves the HTML pages and SEO artifacts.
type Handlers struct {
	store      *dataset.Store
	site       config.SiteConfig
	renderer   *Renderer
	contribute template.HTML
}

// NewHandlers builds the page handlers, parsing templates and the embedded
// contribution guide up front.
func NewHandlers(store *dataset.Store, site config.SiteConfig) (*Handlers, error) {
	renderer, err := NewRenderer(site)
	if err != nil {
		return nil, err
	}

	contribute, err := renderContribute()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		store:      store,
		site:       site,
		renderer:   renderer,
		contribute: contribute,
	}, nil
}

// pageData carries the fields every page template expects.
type pageData struct {
	Site    config.SiteConfig
	Title   string
	Schemas []any
}

// chip is one filter control: a category toggle or the featured toggle.
type chip struct {
	Label  string
	URL    string
	Active bool
	Count  int
}

// sortOption is one entry of the sort selector.
type sortOption struct {
	Label    string
	URL      string
	Selected bool
}

// HandleHome renders the landing page: hero, stats, the featured section,
// and the browsable remainder with load-more pagination.
func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	state := parseState(r.URL.Query())
	page := view.BuildPage(h.store, state)

	data := struct {
		pageData
		Stats       models.Stats
		State       view.State
		Page        view.Page
		Chips       []chip
		Featured    chip
		LoadMoreURL string
	}{
		pageData: pageData{
			Site:  h.site,
			Title: h.site.Name,
			Schemas: []any{
				seo.WebSiteSchema(h.site),
				seo.OrganizationSchema(h.site),
			},
		},
		Stats:    h.store.Stats(),
		State:    state,
		Page:     page,
		Chips:    h.categoryChips("/", state),
		Featured: featuredChip("/", state),
	}
	if page.HasMore {
		data.LoadMoreURL = pageURL("/", state.LoadMore(len(page.Results)))
	}

	h.renderer.Render(w, http.StatusOK, "home.gohtml", data)
}

// HandlePerks renders the full directory with search, filter panel, and
// sort selector. Results are always one unified list here.
func (h *Handlers) HandlePerks(w http.ResponseWriter, r *http.Request) {
	state := parseState(r.URL.Query())
	if state.Sort == "" {
		state.Sort = query.SortByName
	}

	results := query.Filter(h.store.All(), query.Options{
		SearchQuery:  state.Search,
		Categories:   state.Categories,
		FeaturedOnly: state.FeaturedOnly,
		SortBy:       state.Sort,
	})

	shown := state.Visible
	if shown > len(results) {
		shown = len(results)
	}

	data := struct {
		pageData
		State       view.State
		Results     []models.Perk
		Shown       int
		Total       int
		AllCount    int
		Chips       []chip
		Featured    chip
		Sorts       []sortOption
		LoadMoreURL string
		ClearURL    string
	}{
		pageData: pageData{
			Site:  h.site,
			Title: "All Startup Perks - " + h.site.Name,
			Schemas: []any{
				seo.ItemListSchema(results, "All Startup Perks"),
			},
		},
		State:    state,
		Results:  results[:shown],
		Shown:    shown,
		Total:    len(results),
		AllCount: h.store.Count(),
		Chips:    h.categoryChips("/perks", state),
		Featured: featuredChip("/perks", state),
		Sorts:    sortOptions("/perks", state),
		ClearURL: "/perks",
	}
	if shown < len(results) {
		data.LoadMoreURL = pageURL("/perks", state.LoadMore(len(results)))
	}

	h.renderer.Render(w, http.StatusOK, "perks.gohtml", data)
}

// HandlePerk renders one perk's detail page with Product and breadcrumb
// structured data. Unknown ids get the standard not-found page.
func (h *Handlers) HandlePerk(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	perk := h.store.ByID(id)
	if perk == nil {
		h.HandleNotFound(w, r)
		return
	}

	crumbs := []seo.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Perks", URL: "/perks"},
		{Name: perk.Name, URL: "/perks/" + perk.ID},
	}

	data := struct {
		pageData
		Perk    models.Perk
		Related []models.Perk
	}{
		pageData: pageData{
			Site:  h.site,
			Title: fmt.Sprintf("%s - %s", perk.Name, perk.Company),
			Schemas: []any{
				seo.PerkSchema(*perk),
				seo.BreadcrumbSchema(h.site, crumbs),
			},
		},
		Perk:    *perk,
		Related: related(h.store.ByCategory(perk.Category), perk.ID, 3),
	}

	h.renderer.Render(w, http.StatusOK, "perk.gohtml", data)
}

// HandleCategory renders the listing for one category. Unknown categories
// get the standard not-found page.
func (h *Handlers) HandleCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := models.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	perks := h.store.ByCategory(c)
	crumbs := []seo.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Perks", URL: "/perks"},
		{Name: c.Label(), URL: "/perks/category/" + string(c)},
	}

	data := struct {
		pageData
		Category models.Category
		Label    string
		Perks    []models.Perk
	}{
		pageData: pageData{
			Site:  h.site,
			Title: c.Label() + " Perks - " + h.site.Name,
			Schemas: []any{
				seo.ItemListSchema(perks, c.Label()+" Perks"),
				seo.BreadcrumbSchema(h.site, crumbs),
			},
		},
		Category: c,
		Label:    c.Label(),
		Perks:    perks,
	}

	h.renderer.Render(w, http.StatusOK, "category.gohtml", data)
}

// HandleContribute renders the contribution guide.
func (h *Handlers) HandleContribute(w http.ResponseWriter, r *http.Request) {
	data := struct {
		pageData
		Content template.HTML
	}{
		pageData: pageData{
			Site:  h.site,
			Title: "Contribute - " + h.site.Name,
		},
		Content: h.contribute,
	}
	h.renderer.Render(w, http.StatusOK, "contribute.gohtml", data)
}

// HandleNotFound renders the 404 page.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	data := struct {
		pageData
	}{
		pageData: pageData{
			Site:  h.site,
			Title: "Page Not Found - " + h.site.Name,
		},
	}
	h.renderer.Render(w, http.StatusNotFound, "notfound.gohtml", data)
}

// HandleSitemap serves sitemap.xml.
func (h *Handlers) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	sitemap := seo.BuildSitemap(h.site, h.store, time.Now())

	data, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		slog.Error("failed to marshal sitemap", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	w.Write(data)
}

// HandleManifest serves the web app manifest.
func (h *Handlers) HandleManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	if err := json.NewEncoder(w).Encode(seo.BuildManifest(h.site)); err != nil {
		slog.Error("failed to encode manifest", "error", err)
	}
}

// HandleRobots serves robots.txt pointing crawlers at the sitemap.
func (h *Handlers) HandleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", h.site.BaseURL)
}

// categoryChips builds the category filter controls for a page. Clicking a
// chip toggles its category in the selection and resets the window.
func (h *Handlers) categoryChips(path string, state view.State) []chip {
	summaries := h.store.CategorySummaries()
	chips := make([]chip, 0, len(summaries))

	for _, summary := range summaries {
		if summary.Count == 0 {
			continue
		}
		active := false
		for _, c := range state.Categories {
			if c == summary.Category {
				active = true
				break
			}
		}

		var next []models.Category
		for _, c := range state.Categories {
			if c != summary.Category {
				next = append(next, c)
			}
		}
		if !active {
			next = append(next, summary.Category)
		}

		chips = append(chips, chip{
			Label:  summary.Label,
			URL:    pageURL(path, state.WithCategories(next)),
			Active: active,
			Count:  summary.Count,
		})
	}
	return chips
}

func featuredChip(path string, state view.State) chip {
	return chip{
		Label:  "Featured",
		URL:    pageURL(path, state.WithFeaturedOnly(!state.FeaturedOnly)),
		Active: state.FeaturedOnly,
	}
}

func sortOptions(path string, state view.State) []sortOption {
	keys := []struct {
		label string
		key   query.SortKey
	}{
		{"Name", query.SortByName},
		{"Company", query.SortByCompany},
		{"Value", query.SortByValue},
	}

	options := make([]sortOption, 0, len(keys))
	for _, k := range keys {
		options = append(options, sortOption{
			Label:    k.label,
			URL:      pageURL(path, state.WithSort(k.key)),
			Selected: state.Sort == k.key,
		})
	}
	return options
}

// related picks up to limit perks from the same category, excluding self.
func related(perks []models.Perk, selfID string, limit int) []models.Perk {
	var result []models.Perk
	for _, perk := range perks {
		if perk.ID == selfID {
			continue
		}
		result = append(result, perk)
		if len(result) == limit {
			break
		}
	}
	return result
}
