// Package query implements the filter/search/sort engine over perk lists.
//
// Every function here is total: unrecognized sort keys, categories, or value
// ranges pass records through unchanged instead of erroring, so stale or
// garbled URL state never breaks a page.
package query

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/smartdev09/startup-perks/internal/models"
)

// SortKey selects the ordering of filtered results.
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByCompany SortKey = "company"
	SortByValue   SortKey = "value"
)

// ValueRange buckets perks by extracted credit value. Perks whose credits
// text has no parseable dollar amount (value 0) only appear in RangeAll.
type ValueRange string

const (
	RangeAll    ValueRange = "all"
	RangeLow    ValueRange = "low"    // $1 - $9,999
	RangeMedium ValueRange = "medium" // $10,000 - $49,999
	RangeHigh   ValueRange = "high"   // $50,000+
)

// Options drives Filter. Zero-valued fields skip their stage.
type Options struct {
	SearchQuery  string
	Categories   []models.Category
	ValueRange   ValueRange
	FeaturedOnly bool
	SortBy       SortKey
}

// dollarAmount matches amounts like $1,000 or $250,000. The first match in
// the credits text wins.
var dollarAmount = regexp.MustCompile(`\$([0-9][0-9,]*)`)

// ExtractCreditValue parses the first dollar amount out of a credits string.
// Returns 0 when no amount is present.
func ExtractCreditValue(credits string) int {
	m := dollarAmount.FindStringSubmatch(credits)
	if m == nil {
		return 0
	}
	value, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return value
}

// searchableText joins the fields search terms match against.
func searchableText(p models.Perk) string {
	return strings.ToLower(strings.Join([]string{
		p.Name,
		p.Company,
		p.Description,
		string(p.Category),
		p.Eligibility,
		p.Credits,
	}, " "))
}

// Search returns the perks whose searchable text contains every whitespace-
// separated term of q as a substring (AND semantics, no ranking). An empty
// or whitespace-only query returns corpus unchanged.
func Search(q string, corpus []models.Perk) []models.Perk {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return corpus
	}
	terms := strings.Fields(q)

	var result []models.Perk
	for _, perk := range corpus {
		text := searchableText(perk)
		matched := true
		for _, term := range terms {
			if !strings.Contains(text, term) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, perk)
		}
	}
	return result
}

// InRange reports whether a credit value falls in the bucket.
func InRange(value int, r ValueRange) bool {
	switch r {
	case RangeLow:
		return value > 0 && value < 10000
	case RangeMedium:
		return value >= 10000 && value < 50000
	case RangeHigh:
		return value >= 50000
	default:
		// RangeAll and unknown ranges pass everything through.
		return true
	}
}

// Sort returns a new slice ordered by key. Name and company compare with
// locale-aware collation ascending; value compares numerically descending.
// The sort is stable, so equal elements keep their input order. An unknown
// key returns a copy in the original order.
func Sort(perks []models.Perk, key SortKey) []models.Perk {
	result := make([]models.Perk, len(perks))
	copy(result, perks)

	switch key {
	case SortByName:
		c := collate.New(language.English)
		sort.SliceStable(result, func(i, j int) bool {
			return c.CompareString(result[i].Name, result[j].Name) < 0
		})
	case SortByCompany:
		c := collate.New(language.English)
		sort.SliceStable(result, func(i, j int) bool {
			return c.CompareString(result[i].Company, result[j].Company) < 0
		})
	case SortByValue:
		sort.SliceStable(result, func(i, j int) bool {
			return ExtractCreditValue(result[i].Credits) > ExtractCreditValue(result[j].Credits)
		})
	}
	return result
}

// Filter applies the composite pipeline: search, category filter, featured
// filter, value-range filter, then sort. Each stage operates on the previous
// stage's output and is skipped when its option is absent.
func Filter(corpus []models.Perk, opts Options) []models.Perk {
	perks := corpus

	if strings.TrimSpace(opts.SearchQuery) != "" {
		perks = Search(opts.SearchQuery, perks)
	}

	// An empty selection means no category filtering, not "match nothing".
	if len(opts.Categories) > 0 {
		selected := make(map[models.Category]bool, len(opts.Categories))
		for _, c := range opts.Categories {
			selected[c] = true
		}
		var kept []models.Perk
		for _, perk := range perks {
			if selected[perk.Category] {
				kept = append(kept, perk)
			}
		}
		perks = kept
	}

	if opts.FeaturedOnly {
		var kept []models.Perk
		for _, perk := range perks {
			if perk.Featured {
				kept = append(kept, perk)
			}
		}
		perks = kept
	}

	if opts.ValueRange != "" && opts.ValueRange != RangeAll {
		var kept []models.Perk
		for _, perk := range perks {
			if InRange(ExtractCreditValue(perk.Credits), opts.ValueRange) {
				kept = append(kept, perk)
			}
		}
		perks = kept
	}

	if opts.SortBy != "" {
		perks = Sort(perks, opts.SortBy)
	}

	return perks
}
