// Package models defines the course catalog entities for the coursetrack progress tracker.
//
// The package contains two categories of types:
//
// 1. Raw document types: the content document exactly as authored, with optional fields
//   - [RawDocument] : top-level `{ "sections": [...] }` payload from a content source
//   - [RawSection] : a section with its key, title and raw videos
//   - [RawVideo] : a lesson whose fields may all be absent
//   - [RawLink] : a supporting link with optional label and href
//
// 2. Normalized entities: fully-populated values produced by the catalog normalizer
//   - [Link] : label + href
//   - [Video] : a lesson with a catalog-unique ID
//   - [Section] : an ordered group of videos addressable by key
//   - [Selection] : the derived active section pointer
//
// Normalized values are treated as immutable once loaded.
package models
