package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
	th "github.com/desertthunder/coursetrack/internal/testing"
)

func testCatalog() models.Catalog {
	return models.Catalog{
		{Key: "intro", Title: "Introduction", Videos: []models.Video{
			{ID: "v1", Title: "Welcome"},
			{ID: "v2", Title: "Setup, part 1"},
		}},
		{Key: "empty", Title: "Coming Soon"},
	}
}

func testReport() *Report {
	return BuildReport(testCatalog(), []string{"v1", "stale"}, map[string]string{"v1": "great intro", "stale": "old"})
}

func TestBuildReport(t *testing.T) {
	r := testReport()

	if r.Overall.Watched != 1 || r.Overall.Total != 2 || r.Overall.Percent != 50 {
		t.Errorf("Overall = %+v", r.Overall)
	}
	if len(r.Sections) != 2 {
		t.Fatalf("len(Sections) = %d", len(r.Sections))
	}

	intro := r.Sections[0]
	if intro.Key != "intro" || intro.Watched != 1 || intro.Total != 2 {
		t.Errorf("intro = %+v", intro.Progress)
	}
	if !intro.Lessons[0].Watched || intro.Lessons[0].Comment != "great intro" {
		t.Errorf("lesson v1 = %+v", intro.Lessons[0])
	}
	if intro.Lessons[1].Watched || intro.Lessons[1].Comment != "" {
		t.Errorf("lesson v2 = %+v", intro.Lessons[1])
	}

	if empty := r.Sections[1]; empty.Total != 0 || empty.Percent != 0 || len(empty.Lessons) != 0 {
		t.Errorf("empty = %+v", empty)
	}

	t.Run("Empty Catalog", func(t *testing.T) {
		r := BuildReport(nil, nil, nil)
		if r.Overall.Total != 0 || len(r.Sections) != 0 {
			t.Errorf("report = %+v", r)
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testReport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{"Progress: 1/2 (50%)", "Introduction [intro] 1/2", "  [x] Welcome", "  [ ] Setup, part 1", "great intro"} {
			if !strings.Contains(output, want) {
				t.Errorf("text missing %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "old") {
			t.Error("text should not include comments for unknown lessons")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testReport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{"# Course Progress", "**Watched**: 1 of 2 (50%)", "## Introduction", "- [x] Welcome", "  > great intro", "## Coming Soon", "_No lessons._"} {
			if !strings.Contains(output, want) {
				t.Errorf("markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testReport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")

		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d:\n%s", len(lines), data)
		}
		if lines[0] != "Section,Video ID,Title,Watched,Comment" {
			t.Errorf("header = %q", lines[0])
		}
		if lines[1] != "intro,v1,Welcome,true,great intro" {
			t.Errorf("row 1 = %q", lines[1])
		}
		if lines[2] != `intro,v2,"Setup, part 1",false,` {
			t.Errorf("row 2 = %q", lines[2])
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testReport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Overall.Watched != 1 || len(decoded.Sections) != 2 {
			t.Errorf("decoded = %+v", decoded)
		}
		if !strings.Contains(string(data), `"key": "intro"`) {
			t.Errorf("expected section progress fields to be inlined, got:\n%s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"txt", FormatText},
		{"MD", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{" csv ", FormatCSV},
		{"json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("ParseFormat(xml) error = %v, want ErrInvalidFlag", err)
	}
	if _, err := Export(testReport(), Format("xml")); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("Export(xml) error = %v, want ErrInvalidFlag", err)
	}
}

func TestWriteReport(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "reports", "progress."+string(f))
			if err := WriteReport(testReport(), f, path); err != nil {
				t.Fatalf("WriteReport failed: %v", err)
			}
			th.AssertFileExists(t, path)
			if content := th.MustReadFile(t, path); !strings.Contains(content, "Welcome") {
				t.Errorf("report missing lesson title:\n%s", content)
			}
		})
	}

	t.Run("Unwritable Path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		th.MustWriteFile(t, blocker, "x")
		if err := WriteReport(testReport(), FormatText, filepath.Join(blocker, "out.txt")); err == nil {
			t.Error("expected error writing beneath a regular file")
		}
	})
}
