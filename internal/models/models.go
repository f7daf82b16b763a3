package models

// Link is a supporting resource attached to a lesson.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Video is a single lesson in a [Section].
type Video struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	ExternalVideoID string   `json:"youtubeId"`
	Links           []Link   `json:"links"`
	Commands        []string `json:"commands"`
}

// Section is an ordered, keyed group of lessons.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Videos []Video `json:"videos"`
}

// Catalog is the ordered list of sections for the course.
type Catalog []Section

// Keys returns the section keys in display order.
func (c Catalog) Keys() []string {
	keys := make([]string, len(c))
	for i, s := range c {
		keys[i] = s.Key
	}
	return keys
}

// IndexOf returns the position of the section with the given key, or -1.
func (c Catalog) IndexOf(key string) int {
	for i, s := range c {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// FindVideo looks up a video by ID across all sections.
func (c Catalog) FindVideo(id string) (*Video, *Section, bool) {
	for i := range c {
		for j := range c[i].Videos {
			if c[i].Videos[j].ID == id {
				return &c[i].Videos[j], &c[i], true
			}
		}
	}
	return nil, nil, false
}

// VideoCount returns the number of lessons across all sections.
func (c Catalog) VideoCount() int {
	n := 0
	for _, s := range c {
		n += len(s.Videos)
	}
	return n
}

// Selection is the derived active section pointer.
//
// Index is the position of the section whose key matches, or 0 when the requested key is unknown.
// Section is nil only when the catalog is empty.
type Selection struct {
	Key     string
	Index   int
	Section *Section
}

// Select computes the [Selection] for key against the catalog.
func (c Catalog) Select(key string) Selection {
	idx := c.IndexOf(key)
	if idx < 0 {
		idx = 0
	}
	if len(c) == 0 {
		return Selection{}
	}
	return Selection{Key: c[idx].Key, Index: idx, Section: &c[idx]}
}

// RawDocument is the content document as served by a content source.
type RawDocument struct {
	Sections []RawSection `json:"sections"`
}

// RawSection is a section as authored. Key and Title are required by convention.
type RawSection struct {
	Key    string     `json:"key"`
	Title  string     `json:"title"`
	Videos []RawVideo `json:"videos"`
}

// RawVideo is a lesson as authored; nil fields are filled by the normalizer.
type RawVideo struct {
	ID              *string   `json:"id,omitempty"`
	Title           *string   `json:"title,omitempty"`
	ExternalVideoID *string   `json:"youtubeId,omitempty"`
	Links           []RawLink `json:"links,omitempty"`
	Commands        []string  `json:"commands,omitempty"`
}

// RawLink is a supporting link as authored.
type RawLink struct {
	Label *string `json:"label,omitempty"`
	Href  *string `json:"href,omitempty"`
}

// Progress summarizes watched lessons over a set of videos.
type Progress struct {
	Key     string  `json:"key,omitempty"`
	Title   string  `json:"title,omitempty"`
	Watched int     `json:"watched"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// NewProgress builds a [Progress] and computes its percentage.
func NewProgress(key, title string, watched, total int) Progress {
	p := Progress{Key: key, Title: title, Watched: watched, Total: total}
	if total > 0 {
		p.Percent = float64(watched) / float64(total) * 100
	}
	return p
}
