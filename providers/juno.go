package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

const defaultJunoTimeout = 10 * time.Second

// Normalization defaults applied when the API omits a field.
const (
	defaultArtist = "Unknown Artist"
	defaultLabel  = "Independent"
	defaultFormat = "Vinyl"
)

// JunoProvider implements CatalogProvider against the Juno catalog API.
type JunoProvider struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewJunoProvider creates a live catalog client from an explicit config.
func NewJunoProvider(cfg JunoConfig) *JunoProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultJunoTimeout
	}
	return &JunoProvider{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ---- Juno API response structs ----

type junoTrack struct {
	Position string `json:"position"`
	Title    string `json:"title"`
}

// junoReleaseResponse covers both payload shapes the API serves: scalar
// genre/style keys and their plural list variants.
type junoReleaseResponse struct {
	Artist      string      `json:"artist"`
	Title       string      `json:"title"`
	Label       string      `json:"label"`
	Genre       string      `json:"genre"`
	Genres      []string    `json:"genres"`
	Style       string      `json:"style"`
	Styles      []string    `json:"styles"`
	Format      string      `json:"format"`
	ReleaseDate string      `json:"release_date"`
	Image       string      `json:"image"`
	Tracks      []junoTrack `json:"tracks"`
}

// FetchRelease fetches release metadata for a catalog id and normalizes it.
func (p *JunoProvider) FetchRelease(ctx context.Context, junoCat string) (models.Release, error) {
	url := fmt.Sprintf("%s/releases/%s", p.endpoint, junoCat)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Release{}, fmt.Errorf("create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.Release{}, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Release{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Release{}, fmt.Errorf("juno API error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload junoReleaseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Release{}, fmt.Errorf("decode response: %w", err)
	}

	return normalizeRelease(payload, junoCat), nil
}

// normalizeRelease maps the wire payload into a Release, joining list-valued
// genre/style fields and filling defaults for missing core fields. A payload
// missing artist or title is still usable but lowers the confidence score.
func normalizeRelease(payload junoReleaseResponse, junoCat string) models.Release {
	rel := models.Release{
		JunoCat:     junoCat,
		Artist:      payload.Artist,
		Title:       payload.Title,
		Label:       payload.Label,
		Genre:       payload.Genre,
		Style:       payload.Style,
		Format:      payload.Format,
		ReleaseDate: payload.ReleaseDate,
		ImageURL:    payload.Image,
		Source:      models.SourceLive,
		Confidence:  models.ConfidenceLive,
	}

	if payload.Genres != nil {
		rel.Genre = strings.Join(payload.Genres, ", ")
	}
	if payload.Styles != nil {
		rel.Style = strings.Join(payload.Styles, ", ")
	}

	if rel.Artist == "" || rel.Title == "" {
		rel.Confidence = models.ConfidencePartial
	}
	if rel.Artist == "" {
		rel.Artist = defaultArtist
	}
	if rel.Title == "" {
		rel.Title = "Catalog " + junoCat
	}
	if rel.Label == "" {
		rel.Label = defaultLabel
	}
	if rel.Format == "" {
		rel.Format = defaultFormat
	}

	for _, t := range payload.Tracks {
		rel.Tracks = append(rel.Tracks, models.Track{Position: t.Position, Title: t.Title})
	}

	return rel
}
