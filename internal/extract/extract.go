package extract

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/usps-zipcodes/internal/archive"
	"github.com/pfrederiksen/usps-zipcodes/internal/logger"
)

const (
	// DefaultSelector matches the table cells the look-up site uses for ZIP codes
	DefaultSelector = "td.main"

	// MaxZipCodeLength is the exclusive upper bound on kept entries when filtering
	MaxZipCodeLength = 15
)

// Parser extracts ZIP codes from archived pages
type Parser struct {
	Selector      string
	FilterResults bool
	MaxLength     int
}

// New creates a Parser with the default selector, filtering enabled
func New() *Parser {
	return &Parser{
		Selector:      DefaultSelector,
		FilterResults: true,
		MaxLength:     MaxZipCodeLength,
	}
}

// Extract yields the trimmed text of every element matching the parser's
// selector, in document order. A document that cannot be parsed yields nothing.
func (p *Parser) Extract(r io.Reader) iter.Seq[string] {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		logger.Warn("Could not parse page", logger.Fields{"error": err.Error()})
		return func(yield func(string) bool) {}
	}

	cells := doc.Find(p.selector())
	return func(yield func(string) bool) {
		for i := range cells.Nodes {
			if !yield(strings.TrimSpace(cells.Eq(i).Text())) {
				return
			}
		}
	}
}

// Filter keeps entries shorter than maxLen runes when enabled and passes
// everything through otherwise.
func Filter(codes iter.Seq[string], enabled bool, maxLen int) iter.Seq[string] {
	if !enabled {
		return codes
	}
	return func(yield func(string) bool) {
		for code := range codes {
			if utf8.RuneCountInString(strings.TrimSpace(code)) >= maxLen {
				continue
			}
			if !yield(code) {
				return
			}
		}
	}
}

// ParseDocument extracts and filters the ZIP codes of one page
func (p *Parser) ParseDocument(r io.Reader) []string {
	return slices.Collect(Filter(p.Extract(r), p.FilterResults, p.maxLength()))
}

// ParseAll parses every archived page in dir and concatenates the results
// in page order.
func (p *Parser) ParseAll(dir string) ([]string, error) {
	pages, err := archive.List(dir)
	if err != nil {
		return nil, err
	}

	all := make([]string, 0)
	for _, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", filepath.Base(page), err)
		}

		raw := slices.Collect(p.Extract(bytes.NewReader(data)))
		if len(raw) == 0 {
			logger.Warn("Page has no matching cells", logger.Fields{
				"file":     filepath.Base(page),
				"selector": p.selector(),
			})
			logger.IncrCounter(logger.PagesMalformed)
		}

		codes := slices.Collect(Filter(slices.Values(raw), p.FilterResults, p.maxLength()))
		logger.Debug("Parsed page", logger.Fields{
			"file":      filepath.Base(page),
			"zip_codes": len(codes),
		})
		logger.IncrCounter(logger.PagesParsed)
		logger.AddCounter(logger.ZipCodesKept, int64(len(codes)))
		logger.AddCounter(logger.ZipCodesDropped, int64(len(raw)-len(codes)))

		all = append(all, codes...)
	}

	return all, nil
}

func (p *Parser) selector() string {
	if p.Selector == "" {
		return DefaultSelector
	}
	return p.Selector
}

func (p *Parser) maxLength() int {
	if p.MaxLength <= 0 {
		return MaxZipCodeLength
	}
	return p.MaxLength
}
