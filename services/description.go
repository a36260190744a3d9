package services

import (
	"strings"
	"unicode"

	"github.com/trcsocial/shopify-csv-uploader/models"
)

// Slugify lowercases a value and collapses every non-alphanumeric run into a
// single hyphen, yielding a Shopify-safe handle.
func Slugify(value string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(value) {
		if unicode.IsLetter(ch) || unicode.IsNumber(ch) {
			b.WriteRune(ch)
		} else {
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// BuildDescription renders the product description HTML from structured
// release metadata plus the distributor's edition notes. Nothing outside
// those fields enters the output.
func BuildDescription(rel models.Release, editionNotes string) string {
	descriptors := joinNonEmpty([]string{rel.Genre, rel.Style, rel.ReleaseDate}, " | ")
	summary := joinNonEmpty([]string{
		strings.TrimSpace(rel.Artist) + " — " + strings.TrimSpace(rel.Title),
		rel.Label,
		descriptors,
	}, ". ")

	var trackLines []string
	for _, t := range rel.Tracks {
		pos := strings.TrimSpace(t.Position)
		name := strings.TrimSpace(t.Title)
		if name == "" {
			continue
		}
		if pos != "" {
			trackLines = append(trackLines, pos+": "+name)
		} else {
			trackLines = append(trackLines, name)
		}
	}

	return "<p>" + summary + "</p>\n" +
		"<p>" + editionNotes + "</p>\n" +
		"<p>Tracklist:</p>\n" +
		"<pre>" + strings.Join(trackLines, "\n") + "</pre>"
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
