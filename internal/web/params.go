package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/smartdev09/startup-perks/internal/models"
	"github.com/smartdev09/startup-perks/internal/query"
	"github.com/smartdev09/startup-perks/internal/view"
)

// Query-string parameter names for shareable browse state.
const (
	paramSearch     = "q"
	paramCategories = "categories"
	paramFeatured   = "featured"
	paramSort       = "sort"
	paramCount      = "count"
)

// parseState reconstructs a view.State from URL query parameters. Garbled
// values degrade to defaults; the state never fails to parse.
func parseState(values url.Values) view.State {
	s := view.NewState()

	s.Search = strings.TrimSpace(values.Get(paramSearch))

	if raw := values.Get(paramCategories); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if c, ok := models.ParseCategory(part); ok {
				s.Categories = append(s.Categories, c)
			}
		}
	}

	s.FeaturedOnly = values.Get(paramFeatured) == "true"

	switch key := query.SortKey(values.Get(paramSort)); key {
	case query.SortByName, query.SortByCompany, query.SortByValue:
		s.Sort = key
	}

	if count, err := strconv.Atoi(values.Get(paramCount)); err == nil && count > 0 {
		s.Visible = count
	}

	return s
}

// encodeState serializes a state back into query parameters, omitting
// defaults to keep shared URLs short.
func encodeState(s view.State) url.Values {
	values := url.Values{}

	if s.Search != "" {
		values.Set(paramSearch, s.Search)
	}
	if len(s.Categories) > 0 {
		parts := make([]string, 0, len(s.Categories))
		for _, c := range s.Categories {
			parts = append(parts, string(c))
		}
		values.Set(paramCategories, strings.Join(parts, ","))
	}
	if s.FeaturedOnly {
		values.Set(paramFeatured, "true")
	}
	if s.Sort != "" {
		values.Set(paramSort, string(s.Sort))
	}
	if s.Visible != view.PageSize {
		values.Set(paramCount, strconv.Itoa(s.Visible))
	}

	return values
}

// pageURL builds a site-relative link for a path and state.
func pageURL(path string, s view.State) string {
	encoded := encodeState(s).Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
