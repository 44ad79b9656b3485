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

	"github.com/desertthunder/popcorn/internal/models"
)

// MockCatalog is a test double for [services.Catalog] recording every call.
type MockCatalog struct {
	SearchFunc  func(ctx context.Context, query string) ([]models.Movie, error)
	DetailsFunc func(ctx context.Context, imdbID string) (*models.MovieDetail, error)

	mu       sync.Mutex
	searches []string
	details  []string
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.Movie, error) {
	m.mu.Lock()
	m.searches = append(m.searches, query)
	m.mu.Unlock()

	if m.SearchFunc == nil {
		return []models.Movie{}, nil
	}
	return m.SearchFunc(ctx, query)
}

func (m *MockCatalog) Details(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	m.mu.Lock()
	m.details = append(m.details, imdbID)
	m.mu.Unlock()

	if m.DetailsFunc == nil {
		return &models.MovieDetail{ImdbID: imdbID}, nil
	}
	return m.DetailsFunc(ctx, imdbID)
}

func (m *MockCatalog) Name() string { return "mock" }

// Searches returns the queries passed to Search so far.
func (m *MockCatalog) Searches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searches...)
}

// DetailLookups returns the ids passed to Details so far.
func (m *MockCatalog) DetailLookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.details...)
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

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
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

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}
