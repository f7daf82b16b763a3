package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/desertthunder/coursetrack/internal/shared"
)

// DefaultKeyPrefix is the slot prefix used when none is configured.
const DefaultKeyPrefix = "lt_"

// Slot names, appended to the key prefix.
const (
	watchedSlot  = "watched_videos"
	commentsSlot = "video_comments"
	activeSlot   = "active_section"
)

// Persistence reads and writes the three tracker state slices, each in its own slot.
//
// Load methods always return a usable value: on a missing slot, a parse failure, or a store error
// the slice's empty default is returned together with the error (nil for a missing slot).
type Persistence struct {
	store       Store
	watchedKey  string
	commentsKey string
	activeKey   string
}

// NewPersistence creates a [Persistence] over store. An empty prefix selects [DefaultKeyPrefix].
func NewPersistence(store Store, prefix string) *Persistence {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Persistence{
		store:       store,
		watchedKey:  prefix + watchedSlot,
		commentsKey: prefix + commentsSlot,
		activeKey:   prefix + activeSlot,
	}
}

// Keys returns the slot keys in watched, comments, active order.
func (p *Persistence) Keys() []string {
	return []string{p.watchedKey, p.commentsKey, p.activeKey}
}

// LoadWatched returns the persisted set of watched video IDs.
func (p *Persistence) LoadWatched() (map[string]struct{}, error) {
	watched := make(map[string]struct{})

	raw, ok, err := p.store.Get(p.watchedKey)
	if err != nil || !ok {
		return watched, err
	}

	var ids []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return watched, fmt.Errorf("%w: corrupt %s: %v", shared.ErrStorage, p.watchedKey, err)
	}

	for _, item := range ids {
		if id, ok := decodeString(item); ok {
			watched[id] = struct{}{}
		}
	}
	return watched, nil
}

// decodeString reports whether raw holds a JSON string. Entries of any other type are skipped
// so one bad value does not discard the rest of a slice.
func decodeString(raw json.RawMessage) (string, bool) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// LoadComments returns the persisted video ID to comment map.
func (p *Persistence) LoadComments() (map[string]string, error) {
	comments := make(map[string]string)

	raw, ok, err := p.store.Get(p.commentsKey)
	if err != nil || !ok {
		return comments, err
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return comments, fmt.Errorf("%w: corrupt %s: %v", shared.ErrStorage, p.commentsKey, err)
	}

	for id, item := range decoded {
		if text, ok := decodeString(item); ok {
			comments[id] = text
		}
	}
	return comments, nil
}

// LoadActiveKey returns the persisted active section key. ok is false when absent or empty.
//
// The key is stored as a bare string, not JSON.
func (p *Persistence) LoadActiveKey() (string, bool, error) {
	raw, ok, err := p.store.Get(p.activeKey)
	if err != nil || !ok || raw == "" {
		return "", false, err
	}
	return raw, true, nil
}

// SaveWatched writes the watched set as a sorted JSON array.
func (p *Persistence) SaveWatched(watched map[string]struct{}) error {
	ids := make([]string, 0, len(watched))
	for id := range watched {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", shared.ErrStorage, p.watchedKey, err)
	}
	return p.store.Set(p.watchedKey, string(data))
}

// SaveComments writes the comment map as a JSON object.
func (p *Persistence) SaveComments(comments map[string]string) error {
	if comments == nil {
		comments = map[string]string{}
	}

	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", shared.ErrStorage, p.commentsKey, err)
	}
	return p.store.Set(p.commentsKey, string(data))
}

// SaveActiveKey writes the active section key verbatim.
func (p *Persistence) SaveActiveKey(key string) error {
	return p.store.Set(p.activeKey, key)
}

// Clear empties all three slots, stopping at the first failure.
func (p *Persistence) Clear() error {
	for _, key := range p.Keys() {
		if err := p.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
