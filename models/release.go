package models

// Source identifies where a release's metadata came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// LookupStrategy selects how releases are resolved for the whole process
// lifetime. It is chosen once at startup: Live when a catalog API base URL is
// configured, Fallback otherwise.
type LookupStrategy string

const (
	StrategyLive     LookupStrategy = "live"
	StrategyFallback LookupStrategy = "fallback"
)

// Confidence scores recorded in the research log. Partial means the live
// payload was missing artist or title and normalization defaults were applied.
const (
	ConfidenceLive     = 0.9
	ConfidencePartial  = 0.6
	ConfidenceFallback = 0.3
)

// Track is one tracklist entry, in release order.
type Track struct {
	Position string `json:"position"`
	Title    string `json:"title"`
}

// Release is the enrichment metadata resolved for one catalog id.
type Release struct {
	JunoCat     string  `json:"juno_cat"`
	Artist      string  `json:"artist"`
	Title       string  `json:"title"`
	Label       string  `json:"label"`
	Genre       string  `json:"genre"`
	Style       string  `json:"style"`
	Format      string  `json:"format"`
	ReleaseDate string  `json:"release_date"`
	ImageURL    string  `json:"image"`
	Tracks      []Track `json:"tracks"`
	Source      Source  `json:"source"`
	Confidence  float64 `json:"confidence"`
}
