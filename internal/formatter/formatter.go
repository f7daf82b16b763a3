// package formatter renders course progress reports as plain text, Markdown, CSV or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

// Format names a report encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Formats lists the accepted values for [ParseFormat].
var Formats = []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ParseFormat resolves a user-supplied format name. "md" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// LessonReport is one lesson row of a [Report].
type LessonReport struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Watched bool   `json:"watched"`
	Comment string `json:"comment,omitempty"`
}

// SectionReport is the progress of one section plus its lessons.
type SectionReport struct {
	models.Progress
	Lessons []LessonReport `json:"lessons"`
}

// Report is a snapshot of course progress.
type Report struct {
	Overall  models.Progress `json:"overall"`
	Sections []SectionReport `json:"sections"`
}

// BuildReport combines the catalog with the watched ids and comments.
//
// Watched ids and comments that do not belong to a catalog lesson are left out.
func BuildReport(catalog models.Catalog, watched []string, comments map[string]string) *Report {
	seen := make(map[string]struct{}, len(watched))
	for _, id := range watched {
		seen[id] = struct{}{}
	}

	r := &Report{Sections: make([]SectionReport, 0, len(catalog))}
	totalWatched := 0
	for _, s := range catalog {
		sr := SectionReport{Lessons: make([]LessonReport, 0, len(s.Videos))}
		n := 0
		for _, v := range s.Videos {
			_, ok := seen[v.ID]
			if ok {
				n++
			}
			sr.Lessons = append(sr.Lessons, LessonReport{ID: v.ID, Title: v.Title, Watched: ok, Comment: comments[v.ID]})
		}
		sr.Progress = models.NewProgress(s.Key, s.Title, n, len(s.Videos))
		totalWatched += n
		r.Sections = append(r.Sections, sr)
	}
	r.Overall = models.NewProgress("", "", totalWatched, catalog.VideoCount())
	return r
}

func percent(p models.Progress) string {
	return strconv.FormatFloat(p.Percent, 'f', 0, 64) + "%"
}

// ExportToText renders the report as indented plain text.
func ExportToText(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Progress: %d/%d (%s)\n\n", r.Overall.Watched, r.Overall.Total, percent(r.Overall))
	for _, s := range r.Sections {
		fmt.Fprintf(&buf, "%s [%s] %d/%d\n", s.Title, s.Key, s.Watched, s.Total)
		for _, l := range s.Lessons {
			mark := " "
			if l.Watched {
				mark = "x"
			}
			fmt.Fprintf(&buf, "  [%s] %s\n", mark, l.Title)
			if l.Comment != "" {
				fmt.Fprintf(&buf, "      %s\n", l.Comment)
			}
		}
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders the report with one heading per section and a task list of lessons.
func ExportToMarkdown(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Course Progress\n\n")
	fmt.Fprintf(&buf, "**Watched**: %d of %d (%s)\n\n", r.Overall.Watched, r.Overall.Total, percent(r.Overall))

	for _, s := range r.Sections {
		fmt.Fprintf(&buf, "## %s\n\n", s.Title)
		if len(s.Lessons) == 0 {
			buf.WriteString("_No lessons._\n\n")
			continue
		}
		for _, l := range s.Lessons {
			mark := " "
			if l.Watched {
				mark = "x"
			}
			fmt.Fprintf(&buf, "- [%s] %s\n", mark, l.Title)
			if l.Comment != "" {
				fmt.Fprintf(&buf, "  > %s\n", l.Comment)
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToCSV renders one row per lesson with columns: Section, Video ID, Title, Watched, Comment
func ExportToCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Section", "Video ID", "Title", "Watched", "Comment"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range r.Sections {
		for _, l := range s.Lessons {
			record := []string{s.Key, l.ID, l.Title, strconv.FormatBool(l.Watched), l.Comment}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the report as indented JSON.
func ExportToJSON(r *Report) ([]byte, error) {
	return shared.MarshalJSON(r, true)
}

// Export renders the report in the given format.
func Export(r *Report, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return ExportToText(r)
	case FormatMarkdown:
		return ExportToMarkdown(r)
	case FormatCSV:
		return ExportToCSV(r)
	case FormatJSON:
		return ExportToJSON(r)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
}

// WriteReport renders the report and writes it to path, creating parent directories.
func WriteReport(r *Report, f Format, path string) error {
	data, err := Export(r, f)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
