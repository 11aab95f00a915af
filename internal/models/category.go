package models

// Category is the closed set of perk categories.
type Category string

const (
	CategoryCloud     Category = "cloud"
	CategoryAI        Category = "ai"
	CategoryDatabase  Category = "database"
	CategoryAnalytics Category = "analytics"
	CategoryDevTools  Category = "dev-tools"
	CategoryEmail     Category = "email"
	CategoryDesign    Category = "design"
	CategorySecurity  Category = "security"
	CategorySaaS      Category = "saas"
	CategoryOther     Category = "other"
)

// Categories lists every category in display order. Summaries iterate this
// list so zero-count categories still appear.
var Categories = []Category{
	CategoryCloud,
	CategoryAI,
	CategoryDatabase,
	CategoryAnalytics,
	CategoryDevTools,
	CategoryEmail,
	CategoryDesign,
	CategorySecurity,
	CategorySaaS,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryCloud:     "Cloud Infrastructure",
	CategoryAI:        "AI & Machine Learning",
	CategoryDatabase:  "Database Services",
	CategoryAnalytics: "Analytics & Monitoring",
	CategoryDevTools:  "Developer Tools",
	CategoryEmail:     "Communication & Support",
	CategoryDesign:    "Design & Collaboration",
	CategorySecurity:  "Security",
	CategorySaaS:      "SaaS Tools",
	CategoryOther:     "Other Services",
}

// categoryColors maps categories to badge CSS classes for the HTML pages.
var categoryColors = map[Category]string{
	CategoryCloud:     "badge-blue",
	CategoryAI:        "badge-purple",
	CategoryDatabase:  "badge-green",
	CategoryAnalytics: "badge-orange",
	CategoryDevTools:  "badge-cyan",
	CategoryEmail:     "badge-pink",
	CategoryDesign:    "badge-yellow",
	CategorySecurity:  "badge-indigo",
	CategorySaaS:      "badge-red",
	CategoryOther:     "badge-gray",
}

// ParseCategory reports whether s names a known category. The returned
// Category is usable either way; unknown values keep their raw text and
// render with the fallback label.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryLabels[c]
	return c, ok
}

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label. Unrecognized categories fall back to the
// "Other Services" label rather than failing.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// Color returns the badge CSS class for the category.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}

// CategorySummary is a derived per-category view with the perk count.
type CategorySummary struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Count    int      `json:"count"`
}
