// package formatter provides functions to export the watched list to various formats (CSV, Markdown, plain text, JSON, YAML)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "md"
	Text     Format = "txt"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, Markdown, Text, JSON, YAML:
		return f, nil
	case "markdown":
		return Markdown, nil
	case "text":
		return Text, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// record is the export shape of a watched movie: NaN numbers become null.
type record struct {
	ImdbID     string   `json:"imdbID" yaml:"imdbID"`
	Title      string   `json:"title" yaml:"title"`
	Year       string   `json:"year" yaml:"year"`
	Poster     string   `json:"poster,omitempty" yaml:"poster,omitempty"`
	Runtime    *float64 `json:"runtime" yaml:"runtime"`
	ImdbRating *float64 `json:"imdbRating" yaml:"imdbRating"`
	UserRating *float64 `json:"userRating" yaml:"userRating"`
}

type document struct {
	Summary struct {
		Count         int     `json:"count" yaml:"count"`
		AvgImdbRating float64 `json:"avgImdbRating" yaml:"avgImdbRating"`
		AvgUserRating float64 `json:"avgUserRating" yaml:"avgUserRating"`
		AvgRuntime    float64 `json:"avgRuntime" yaml:"avgRuntime"`
	} `json:"summary" yaml:"summary"`
	Watched []record `json:"watched" yaml:"watched"`
}

func newDocument(list []models.WatchedMovie) document {
	var doc document
	s := models.Summarize(list)
	doc.Summary.Count = s.Count
	doc.Summary.AvgImdbRating = s.AvgImdbRating
	doc.Summary.AvgUserRating = s.AvgUserRating
	doc.Summary.AvgRuntime = s.AvgRuntime

	doc.Watched = make([]record, 0, len(list))
	for _, m := range list {
		doc.Watched = append(doc.Watched, record{
			ImdbID:     m.ImdbID,
			Title:      m.Title,
			Year:       m.Year,
			Poster:     m.Poster,
			Runtime:    number(m.Runtime),
			ImdbRating: number(m.ImdbRating),
			UserRating: number(m.UserRating),
		})
	}
	return doc
}

func number(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// cell renders a number for tabular output, "N/A" for NaN.
func cell(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportToCSV converts the watched list to CSV with columns: imdbID, Title, Year, Runtime, IMDb Rating, User Rating
func ExportToCSV(list []models.WatchedMovie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"imdbID", "Title", "Year", "Runtime", "IMDb Rating", "User Rating"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range list {
		row := []string{m.ImdbID, m.Title, m.Year, cell(m.Runtime), cell(m.ImdbRating), cell(m.UserRating)}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the watched list to Markdown. posters maps imdbID to a local image path.
func ExportToMarkdown(list []models.WatchedMovie, posters map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	s := models.Summarize(list)

	buf.WriteString("# Movies you watched\n\n")
	buf.WriteString(fmt.Sprintf("- **Movies**: %d\n", s.Count))
	buf.WriteString(fmt.Sprintf("- **Average IMDb rating**: %s\n", s.ImdbLabel()))
	buf.WriteString(fmt.Sprintf("- **Average user rating**: %s\n", s.UserLabel()))
	buf.WriteString(fmt.Sprintf("- **Average runtime**: %s\n\n", s.RuntimeLabel()))

	buf.WriteString("## Watched\n\n")
	for i, m := range list {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) ⭐️ %s 🌟 %s ⏳ %s min\n", i+1, m.Title, m.Year, cell(m.ImdbRating), cell(m.UserRating), cell(m.Runtime)))
		if p, ok := posters[m.ImdbID]; ok {
			buf.WriteString(fmt.Sprintf("   ![%s](%s)\n", m.Title, p))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts the watched list to plain text
func ExportToText(list []models.WatchedMovie) ([]byte, error) {
	var buf bytes.Buffer
	s := models.Summarize(list)

	buf.WriteString(fmt.Sprintf("Watched: %s\n", s.CountLabel()))
	buf.WriteString(fmt.Sprintf("Avg IMDb: %s  Avg rating: %s  Avg runtime: %s\n\n", s.ImdbLabel(), s.UserLabel(), s.RuntimeLabel()))

	for i, m := range list {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) - %s\n", i+1, m.Title, m.Year, cell(m.UserRating)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts the watched list and its summary to JSON.
func ExportToJSON(list []models.WatchedMovie, pretty bool) ([]byte, error) {
	doc := newDocument(list)
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// ExportToYAML converts the watched list and its summary to YAML.
func ExportToYAML(list []models.WatchedMovie) ([]byte, error) {
	data, err := yaml.Marshal(newDocument(list))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// Export encodes the watched list in format.
func Export(list []models.WatchedMovie, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(list)
	case Markdown:
		return ExportToMarkdown(list, nil)
	case Text:
		return ExportToText(list)
	case JSON:
		return ExportToJSON(list, true)
	case YAML:
		return ExportToYAML(list)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport encodes the watched list and writes it to path.
//
// Defaults to watched.{format} in the working directory.
func WriteExport(list []models.WatchedMovie, format Format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("watched.%s", format)
	}

	data, err := Export(list, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" || url == "N/A" {
		return nil, fmt.Errorf("%w: no image URL", shared.ErrInvalidInput)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return data, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Posters   []string
	Failed    []string // imdbIDs whose poster could not be saved
}

// WriteMarkdownExport writes {dir}/README.md and, when withPosters is set, {dir}/posters/{imdbID}.jpg.
//
// Poster failures are collected rather than returned so one dead link never aborts the export.
func WriteMarkdownExport(ctx context.Context, client *http.Client, list []models.WatchedMovie, dir string, withPosters bool) (*MarkdownExportResult, error) {
	if dir == "" {
		dir = "watched"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: dir}
	posters := map[string]string{}

	if withPosters {
		posterDir := filepath.Join(dir, "posters")
		if err := os.MkdirAll(posterDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create poster directory: %w", err)
		}

		for _, m := range list {
			data, err := DownloadImage(ctx, client, m.Poster)
			if err != nil {
				result.Failed = append(result.Failed, m.ImdbID)
				continue
			}

			name := m.ImdbID + ".jpg"
			if err := os.WriteFile(filepath.Join(posterDir, name), data, 0644); err != nil {
				result.Failed = append(result.Failed, m.ImdbID)
				continue
			}

			posters[m.ImdbID] = "posters/" + name
			result.Posters = append(result.Posters, filepath.Join(posterDir, name))
		}
	}

	data, err := ExportToMarkdown(list, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(dir, "README.md")
	if err := os.WriteFile(mdFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, result.Posters...)
	result.Files = append(result.Files, mdFile)
	return result, nil
}
