package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/shared"
	th "github.com/desertthunder/popcorn/internal/testing"
	"gopkg.in/yaml.v3"
)

func watchedFixture() []models.WatchedMovie {
	return []models.WatchedMovie{
		{ImdbID: "tt1375666", Title: "Inception", Year: "2010", Poster: "https://img/inception.jpg", Runtime: 148, ImdbRating: 8.8, UserRating: 9},
		{ImdbID: "tt0372784", Title: "Batman Begins", Year: "2005", Poster: "N/A", Runtime: math.NaN(), ImdbRating: math.NaN(), UserRating: 7},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", CSV},
		{"MD", Markdown},
		{"markdown", Markdown},
		{"text", Text},
		{" json ", JSON},
		{"yml", YAML},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestExporters(t *testing.T) {
	list := watchedFixture()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(list)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "imdbID,Title,Year,Runtime,IMDb Rating,User Rating") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "tt1375666,Inception,2010,148,8.8,9") {
			t.Errorf("CSV missing first row, got: %s", output)
		}
		if !strings.Contains(output, "tt0372784,Batman Begins,2005,N/A,N/A,7") {
			t.Errorf("CSV should render NaN as N/A, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without posters", func(t *testing.T) {
			data, err := ExportToMarkdown(list, nil)
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Movies you watched") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Movies**: 2") {
				t.Errorf("Markdown missing count")
			}
			if !strings.Contains(output, "**Average IMDb rating**: 8.80") {
				t.Errorf("Markdown average should skip NaN, got: %s", output)
			}
			if !strings.Contains(output, "**Average user rating**: 8.00") {
				t.Errorf("Markdown missing user average, got: %s", output)
			}
			if !strings.Contains(output, "**Average runtime**: 148 min") {
				t.Errorf("Markdown missing runtime average, got: %s", output)
			}
			if !strings.Contains(output, "1. Inception (2010)") {
				t.Errorf("Markdown missing first movie")
			}
			if strings.Contains(output, "![") {
				t.Errorf("Markdown should not reference posters")
			}
		})

		t.Run("with posters", func(t *testing.T) {
			data, err := ExportToMarkdown(list, map[string]string{"tt1375666": "posters/tt1375666.jpg"})
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Inception](posters/tt1375666.jpg)") {
				t.Errorf("Markdown missing poster reference")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(list)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Watched: 2 movies") {
			t.Errorf("Text missing count, got: %s", output)
		}
		if !strings.Contains(output, "2. Batman Begins (2005) - 7") {
			t.Errorf("Text missing second movie, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(list, false)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var doc struct {
			Summary struct {
				Count int `json:"count"`
			} `json:"summary"`
			Watched []map[string]any `json:"watched"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if doc.Summary.Count != 2 {
			t.Errorf("expected count 2, got %d", doc.Summary.Count)
		}
		if len(doc.Watched) != 2 {
			t.Fatalf("expected 2 movies, got %d", len(doc.Watched))
		}
		if doc.Watched[1]["runtime"] != nil {
			t.Errorf("NaN runtime should encode as null, got %v", doc.Watched[1]["runtime"])
		}
		if doc.Watched[0]["imdbRating"] != 8.8 {
			t.Errorf("expected imdbRating 8.8, got %v", doc.Watched[0]["imdbRating"])
		}
	})

	t.Run("ExportToJSON pretty", func(t *testing.T) {
		data, err := ExportToJSON(list, true)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if !strings.Contains(string(data), "\n  \"summary\"") {
			t.Errorf("expected indented output, got: %s", data)
		}
	})

	t.Run("ExportToYAML", func(t *testing.T) {
		data, err := ExportToYAML(list)
		if err != nil {
			t.Fatalf("ExportToYAML failed: %v", err)
		}

		var doc struct {
			Watched []struct {
				ImdbID  string   `yaml:"imdbID"`
				Runtime *float64 `yaml:"runtime"`
			} `yaml:"watched"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}

		if len(doc.Watched) != 2 || doc.Watched[0].ImdbID != "tt1375666" {
			t.Fatalf("unexpected YAML content: %s", data)
		}
		if doc.Watched[1].Runtime != nil {
			t.Errorf("NaN runtime should encode as null")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		data, err := ExportToText(nil)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if !strings.Contains(string(data), "Avg IMDb: 0.00") {
			t.Errorf("empty list should average to zero, got: %s", data)
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		if _, err := DownloadImage(context.Background(), nil, ""); err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})

	t.Run("PlaceholderURL", func(t *testing.T) {
		if _, err := DownloadImage(context.Background(), nil, "N/A"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpeg"))
		}))
		defer server.Close()

		data, err := DownloadImage(context.Background(), server.Client(), server.URL)
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "jpeg" {
			t.Errorf("expected image bytes, got %q", data)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(context.Background(), server.Client(), server.URL); err == nil {
			t.Error("expected error for 404")
		}
	})

	t.Run("ReadFailure", func(t *testing.T) {
		client := &http.Client{Transport: th.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       &th.FCloser{},
		}, nil)}

		if _, err := DownloadImage(context.Background(), client, "https://img/x.jpg"); err == nil {
			t.Error("expected read error")
		}
	})
}

func TestWriters(t *testing.T) {
	list := watchedFixture()

	t.Run("WriteExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			path, err := WriteExport(list, CSV, "")
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}

			if path != "watched.csv" {
				t.Errorf("Expected 'watched.csv', got '%s'", path)
			}

			th.AssertFileExists(t, path)
			if !strings.Contains(th.MustReadFile(t, path), "Inception") {
				t.Errorf("CSV missing movie data")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "list.yaml")

			got, err := WriteExport(list, YAML, path)
			if err != nil {
				t.Fatalf("WriteExport failed: %v", err)
			}
			if got != path {
				t.Errorf("Expected %q, got %q", path, got)
			}

			th.AssertFileExists(t, path)
		})

		t.Run("UnknownFormat", func(t *testing.T) {
			if _, err := WriteExport(list, Format("xml"), filepath.Join(t.TempDir(), "x")); err == nil {
				t.Error("expected error for unknown format")
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(context.Background(), nil, list, "", false)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "watched" {
				t.Errorf("Expected directory 'watched', got '%s'", result.Directory)
			}
			if len(result.Files) != 1 {
				t.Errorf("Expected 1 file, got %d", len(result.Files))
			}

			th.AssertFileExists(t, filepath.Join("watched", "README.md"))
		})

		t.Run("WithPosters", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("jpeg"))
			}))
			defer server.Close()

			withPoster := watchedFixture()
			withPoster[0].Poster = server.URL + "/inception.jpg"
			dir := filepath.Join(t.TempDir(), "export")

			result, err := WriteMarkdownExport(context.Background(), server.Client(), withPoster, dir, true)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if len(result.Posters) != 1 {
				t.Fatalf("Expected 1 poster, got %d", len(result.Posters))
			}
			if len(result.Failed) != 1 || result.Failed[0] != "tt0372784" {
				t.Errorf("Expected placeholder poster to fail, got %v", result.Failed)
			}

			th.AssertFileExists(t, filepath.Join(dir, "posters", "tt1375666.jpg"))
			md := th.MustReadFile(t, filepath.Join(dir, "README.md"))
			if !strings.Contains(md, "![Inception](posters/tt1375666.jpg)") {
				t.Errorf("README missing poster reference, got: %s", md)
			}
		})
	})
}
