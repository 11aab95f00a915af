package models

// Perk represents one startup credits or discount program.
type Perk struct {
	// ID is the unique kebab-case identifier, used as the URL segment
	// (e.g. "cloudflare-for-startups").
	ID string `json:"id" yaml:"id"`

	// Company is the provider name (e.g. "Cloudflare").
	Company string `json:"company" yaml:"company"`

	// Name is the program name (e.g. "Cloudflare for Startups").
	Name string `json:"name" yaml:"name"`

	Category Category `json:"category" yaml:"category"`

	// Credits is a free-text value description (e.g. "Up to $250,000").
	// A dollar amount embedded in the text drives value sorting.
	Credits string `json:"credits,omitempty" yaml:"credits,omitempty"`

	Description string `json:"description" yaml:"description"`

	// Eligibility summarizes who qualifies for the program.
	Eligibility string `json:"eligibility" yaml:"eligibility"`

	ApplyURL string `json:"applyUrl" yaml:"apply_url"`

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Featured marks high-value or popular programs for promoted display.
	Featured bool `json:"featured,omitempty" yaml:"featured,omitempty"`
}

// Stats summarizes the whole dataset for the landing page and stats endpoint.
type Stats struct {
	TotalPerks      int `json:"totalPerks"`
	TotalCategories int `json:"totalCategories"`

	// EstimatedValue is the sum of credit values parsed out of every perk's
	// credits text, in whole dollars.
	EstimatedValue int `json:"estimatedValue"`
}
