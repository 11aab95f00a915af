// Package view maps ephemeral UI state (search text, filters, sort key,
// visible-item count) to query engine calls and decides the visible window.
package view

import (
	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/query"
)

const (
	// PageSize is the number of items revealed per "load more".
	PageSize = 12

	// FeaturedLimit caps the promoted section on the unfiltered landing page.
	FeaturedLimit = 6
)

// State is one user's ephemeral browse state. It is reconstructed per page
// view; URL serialization is the web layer's concern.
type State struct {
	Search       string
	Categories   []models.Category
	FeaturedOnly bool
	Sort         query.SortKey
	Visible      int
}

// NewState returns a state showing the first page with no filters.
func NewState() State {
	return State{Visible: PageSize}
}

// Active reports whether any search/filter/featured criterion is set.
// Sort alone does not count: an unfiltered sorted list still shows the
// featured section.
func (s State) Active() bool {
	return s.Search != "" || len(s.Categories) > 0 || s.FeaturedOnly
}

// WithSearch returns the state with the query replaced and the window reset,
// so a new (possibly much smaller) result set never keeps a stale window.
func (s State) WithSearch(q string) State {
	s.Search = q
	s.Visible = PageSize
	return s
}

// WithCategories returns the state with the selection replaced and the
// window reset.
func (s State) WithCategories(cats []models.Category) State {
	s.Categories = cats
	s.Visible = PageSize
	return s
}

// WithFeaturedOnly returns the state with the featured toggle set and the
// window reset.
func (s State) WithFeaturedOnly(on bool) State {
	s.FeaturedOnly = on
	s.Visible = PageSize
	return s
}

// WithSort returns the state with the sort key replaced and the window reset.
func (s State) WithSort(key query.SortKey) State {
	s.Sort = key
	s.Visible = PageSize
	return s
}

// LoadMore grows the visible window by one page, capped at total. Calling it
// at the cap is a no-op; the scroll handler may fire repeatedly.
func (s State) LoadMore(total int) State {
	if s.Visible >= total {
		return s
	}
	s.Visible += PageSize
	if s.Visible > total {
		s.Visible = total
	}
	return s
}

// Page is the render-ready result of applying a State to the dataset.
type Page struct {
	// Featured is the promoted section, at most FeaturedLimit items.
	// Empty whenever any filter criterion is active.
	Featured []models.Perk

	// Results is the scrollable section: every match when filtering, the
	// non-featured remainder otherwise.
	Results []models.Perk

	// Visible is the window of Results currently shown.
	Visible []models.Perk

	// Total is the full match count before windowing.
	Total int

	// HasMore reports whether another "load more" would reveal items.
	HasMore bool
}

// Dataset is the read surface BuildPage needs from the perk store.
type Dataset interface {
	All() []models.Perk
	Featured() []models.Perk
}

// BuildPage runs the query pipeline for the state and slices the visible
// window. With no criterion active it partitions results into a featured
// section and an infinite-scroll remainder; with any criterion active it
// returns one unified list, featured items intermixed.
func BuildPage(ds Dataset, s State) Page {
	filtered := query.Filter(ds.All(), query.Options{
		SearchQuery:  s.Search,
		Categories:   s.Categories,
		FeaturedOnly: s.FeaturedOnly,
		SortBy:       s.Sort,
	})

	page := Page{Total: len(filtered)}

	if s.Active() {
		page.Results = filtered
	} else {
		// The rest section excludes every featured perk, not just the ones
		// the capped promoted section displays.
		featured := ds.Featured()
		featuredIDs := make(map[string]bool, len(featured))
		for _, perk := range featured {
			featuredIDs[perk.ID] = true
		}

		if len(featured) > FeaturedLimit {
			featured = featured[:FeaturedLimit]
		}
		page.Featured = featured

		for _, perk := range filtered {
			if !featuredIDs[perk.ID] {
				page.Results = append(page.Results, perk)
			}
		}
	}

	visible := s.Visible
	if visible <= 0 {
		visible = PageSize
	}
	if visible > len(page.Results) {
		visible = len(page.Results)
	}
	page.Visible = page.Results[:visible]
	page.HasMore = visible < len(page.Results)

	return page
}
