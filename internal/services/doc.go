// Package services defines the [ContentSource] interface for reading the course catalog document and
// implements it for HTTP, local files, and the embedded sample course.
//
// # Content Sources
//
// All sources return the document as authored ([models.RawDocument]); normalization happens in the
// catalog package. Sources are read-only and never retry:
//   - [HTTPSource] : GET of a remote JSON document; non-2xx responses are errors
//   - [FileSource] : a JSON document on disk
//   - [EmbeddedSource] : the sample course compiled into the binary
//
// [NewSource] picks one from [shared.ContentConfig]: a URL wins over a path, and neither selects the
// embedded sample.
//
// # Link Checker
//
// [LinkChecker] probes the href of every lesson link with a rate-limited worker pool, reporting
// unreachable links for content authors. Placeholder hrefs ("#") are skipped.
//
// # Error Handling
//
// Source failures wrap [shared.ErrContentLoad].
package services
