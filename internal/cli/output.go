package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
}

// ParseResult summarizes a parse run
type ParseResult struct {
	RanAt      time.Time `json:"ran_at"`
	ArchiveDir string    `json:"archive_dir"`
	OutputFile string    `json:"output_file"`
	Filtered   bool      `json:"filtered"`
	ZipCodes   []string  `json:"zip_codes"`
	Count      int       `json:"count"`
}

// ScrapeResult summarizes a scrape run
type ScrapeResult struct {
	RanAt      time.Time `json:"ran_at"`
	FormURL    string    `json:"form_url"`
	ArchiveDir string    `json:"archive_dir"`
	Pages      []string  `json:"pages"`
	Count      int       `json:"count"`
}

// WriteOutput writes result, a *ParseResult or *ScrapeResult, in the given format
func WriteOutput(w io.Writer, result interface{}, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result interface{}, verbose bool) error {
	switch r := result.(type) {
	case *ParseResult:
		if r.Count == 0 {
			fmt.Fprintf(w, "No ZIP codes found in %s.\n", r.ArchiveDir)
			return nil
		}
		if verbose {
			for _, code := range r.ZipCodes {
				fmt.Fprintf(w, "  %s\n", code)
			}
		}
		fmt.Fprintf(w, "Wrote %d ZIP codes to %s\n", r.Count, r.OutputFile)
	case *ScrapeResult:
		if verbose {
			for _, page := range r.Pages {
				fmt.Fprintf(w, "  %s\n", page)
			}
		}
		fmt.Fprintf(w, "Archived %d pages in %s\n", r.Count, r.ArchiveDir)
	default:
		return fmt.Errorf("unsupported result type %T", result)
	}
	return nil
}
