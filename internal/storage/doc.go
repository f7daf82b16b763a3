// Package storage persists tracker state as JSON-encoded values in string-keyed slots.
//
// A [Store] is a minimal key-value interface modelled on browser local storage:
//   - [SQLiteStore] : durable slots in the kv table created by the shared migrations
//   - [MemoryStore] : map-backed slots for tests and throwaway sessions
//
// [Persistence] binds three independent slots on top of a Store: the watched-video set, the
// video comment map, and the active section key. Reads return the slot's empty default alongside
// any error; callers that treat durable state as best-effort can drop the error and keep going.
package storage
