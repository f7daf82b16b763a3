// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/coursetrack/internal/models"
)

// MockSource is a test double for services.ContentSource
type MockSource struct {
	Doc   *models.RawDocument
	Err   error
	Calls int
}

func (m *MockSource) FetchCatalog(ctx context.Context) (*models.RawDocument, error) {
	m.Calls++
	return m.Doc, m.Err
}

func (m *MockSource) Name() string { return "mock" }

// NewMockSource returns a [MockSource] serving sections.
func NewMockSource(sections ...models.RawSection) *MockSource {
	return &MockSource{Doc: &models.RawDocument{Sections: sections}}
}

// RecordingStore is an in-memory slot store that counts writes per key.
//
// Setting GetErr or SetErr makes every read or write fail.
type RecordingStore struct {
	mu     sync.Mutex
	Slots  map[string]string
	Writes map[string]int
	GetErr error
	SetErr error
}

func NewRecordingStore() *RecordingStore {
	return &RecordingStore{Slots: map[string]string{}, Writes: map[string]int{}}
}

func (r *RecordingStore) Get(key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return "", false, r.GetErr
	}
	v, ok := r.Slots[key]
	return v, ok, nil
}

func (r *RecordingStore) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Writes[key]++
	if r.SetErr != nil {
		return r.SetErr
	}
	r.Slots[key] = value
	return nil
}

func (r *RecordingStore) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SetErr != nil {
		return r.SetErr
	}
	delete(r.Slots, key)
	return nil
}

// WriteCount returns how many times key has been written.
func (r *RecordingStore) WriteCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Writes[key]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
