// Package course implements the course state controller: the single owner of the loaded catalog,
// the watched set, per-lesson comments, the active section, and the sidebar flag.
//
// # Lifecycle
//
// [Controller.Initialize] rehydrates saved state and loads the catalog in one call. Event-loop callers
// split it into three steps so the fetch can run off the loop:
//  1. [Controller.Restore] : mark loading and read the three persisted slices
//  2. [Controller.Fetch] : query the content source; touches no controller state
//  3. [Controller.Complete] : normalize, resolve the active section, clear loading
//
// A failed fetch leaves an empty catalog and a fixed [LoadErrorMessage]; it is never retried.
//
// # Persistence
//
// Every mutation writes its slice immediately. Storage errors are logged at debug level and otherwise
// dropped, so in-memory state never depends on a write succeeding. Marking an already-watched lesson,
// resetting an unwatched one, or selecting the already-active section writes nothing.
//
// # Events
//
// Listeners registered with [Controller.Subscribe] receive an [Event] after each state change.
// [EventScrollTop] asks the view to return to the top of the lesson pane.
package course
