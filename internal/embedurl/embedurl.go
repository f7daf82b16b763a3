// Package embedurl resolves external video identifiers to trusted embed URLs.
//
// A [TrustedURL] can only be produced by [Cache.Resolve]. Holding one asserts that the URL was built
// from the canonical embed template, so a raw string cannot end up where an embeddable URL is expected.
// Repeated resolution of the same identifier returns the same pointer, letting renderers compare by
// identity and skip reloading an embedded player.
package embedurl

import (
	"fmt"
	"net/url"
)

const (
	namespace     = "yt"
	embedTemplate = "https://www.youtube.com/embed/%s?rel=0"
	watchTemplate = "https://www.youtube.com/watch?v=%s"
)

// TrustedURL is an embed URL marked safe for embedding.
type TrustedURL struct {
	externalID string
	url        string
}

// String returns the embed URL.
func (t *TrustedURL) String() string {
	if t == nil {
		return ""
	}
	return t.url
}

// ExternalID returns the identifier the URL was built from.
func (t *TrustedURL) ExternalID() string {
	if t == nil {
		return ""
	}
	return t.externalID
}

// WatchURL returns the page URL for opening the video outside an embed.
func (t *TrustedURL) WatchURL() string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf(watchTemplate, url.QueryEscape(t.externalID))
}

// Cache memoizes trusted URLs by namespaced identifier.
//
// Entries are never evicted. A Cache is not safe for concurrent use.
type Cache struct {
	entries map[string]*TrustedURL
}

// NewCache creates an empty [Cache].
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*TrustedURL)}
}

// Resolve returns the trusted embed URL for externalID, building and storing it on first use.
//
// The identifier is path-escaped; callers must still only pass identifiers from the course catalog.
func (c *Cache) Resolve(externalID string) *TrustedURL {
	key := namespace + ":" + externalID
	if cached, ok := c.entries[key]; ok {
		return cached
	}

	trusted := &TrustedURL{
		externalID: externalID,
		url:        fmt.Sprintf(embedTemplate, url.PathEscape(externalID)),
	}
	c.entries[key] = trusted
	return trusted
}

// Len returns the number of cached URLs.
func (c *Cache) Len() int {
	return len(c.entries)
}
