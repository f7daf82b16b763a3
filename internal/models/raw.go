package models

import "encoding/json"

// Authored content is decoded leniently: a field holding a value of the wrong JSON type decodes as
// absent and is defaulted by the normalizer, rather than failing the whole document.

// UnmarshalJSON decodes a section, dropping a key/title that is not a string and videos that are not an array.
func (s *RawSection) UnmarshalJSON(data []byte) error {
	fields := rawFields(data)
	*s = RawSection{
		Key:   valueOf(stringField(fields["key"])),
		Title: valueOf(stringField(fields["title"])),
	}

	for _, item := range arrayField(fields["videos"]) {
		var v RawVideo
		_ = v.UnmarshalJSON(item)
		s.Videos = append(s.Videos, v)
	}
	return nil
}

// UnmarshalJSON decodes a lesson. Fields of the wrong type decode as nil.
func (v *RawVideo) UnmarshalJSON(data []byte) error {
	fields := rawFields(data)
	*v = RawVideo{
		ID:              stringField(fields["id"]),
		Title:           stringField(fields["title"]),
		ExternalVideoID: stringField(fields["youtubeId"]),
	}

	for _, item := range arrayField(fields["links"]) {
		var l RawLink
		_ = l.UnmarshalJSON(item)
		v.Links = append(v.Links, l)
	}

	for _, item := range arrayField(fields["commands"]) {
		if c := stringField(item); c != nil {
			v.Commands = append(v.Commands, *c)
		}
	}
	return nil
}

// UnmarshalJSON decodes a link. A non-string label or href decodes as nil.
func (l *RawLink) UnmarshalJSON(data []byte) error {
	fields := rawFields(data)
	*l = RawLink{
		Label: stringField(fields["label"]),
		Href:  stringField(fields["href"]),
	}
	return nil
}

// rawFields returns the members of a JSON object, or nil for any other value.
func rawFields(data []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}

func arrayField(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func stringField(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

func valueOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
