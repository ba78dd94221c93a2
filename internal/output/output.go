// Package output writes the final ZIP code list as plain text, one value per line.
package output

import (
	"bufio"
	"fmt"
	"os"
)

// Save writes codes to path, one per line, replacing any existing file
func Save(path string, codes []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, code := range codes {
		if _, err := w.WriteString(code + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing output file: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	return f.Close()
}

// Load reads a file written by Save back into a slice
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	codes := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		codes = append(codes, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading output file: %w", err)
	}
	return codes, nil
}
