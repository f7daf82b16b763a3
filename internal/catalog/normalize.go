package catalog

import (
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

// Defaults applied to absent lesson fields.
const (
	DefaultVideoTitle      = "Aula"
	DefaultExternalVideoID = "dQw4w9WgXcQ"
	DefaultLinkLabel       = "Link"
	DefaultLinkHref        = "#"

	generatedIDPrefix = "vid-"
	generatedIDLength = 7
)

// newID is swapped in tests that need deterministic ids.
var newID = func() string { return shared.ShortID(generatedIDPrefix, generatedIDLength) }

// Normalize fills every missing field of the raw sections and returns the resulting catalog.
//
// Section keys and titles pass through unchanged. It never fails and does not mutate raw.
func Normalize(raw []models.RawSection) models.Catalog {
	sections := make(models.Catalog, 0, len(raw))
	for _, s := range raw {
		sections = append(sections, normalizeSection(s))
	}
	return sections
}

func normalizeSection(s models.RawSection) models.Section {
	videos := make([]models.Video, 0, len(s.Videos))
	for _, v := range s.Videos {
		videos = append(videos, NormalizeVideo(v))
	}
	return models.Section{Key: s.Key, Title: s.Title, Videos: videos}
}

// NormalizeVideo fills the missing fields of a single raw lesson.
func NormalizeVideo(v models.RawVideo) models.Video {
	links := make([]models.Link, 0, len(v.Links))
	for _, l := range v.Links {
		links = append(links, models.Link{
			Label: valueOr(l.Label, DefaultLinkLabel),
			Href:  valueOr(l.Href, DefaultLinkHref),
		})
	}

	commands := make([]string, len(v.Commands))
	copy(commands, v.Commands)

	var id string
	if v.ID != nil {
		id = *v.ID
	} else {
		id = newID()
	}

	return models.Video{
		ID:              id,
		Title:           valueOr(v.Title, DefaultVideoTitle),
		ExternalVideoID: valueOr(v.ExternalVideoID, DefaultExternalVideoID),
		Links:           links,
		Commands:        commands,
	}
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
