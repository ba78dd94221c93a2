package scraper

import (
	"fmt"

	"github.com/pfrederiksen/usps-zipcodes/internal/query"
)

// FormUnavailableError means the look-up form could not be fetched or the
// page did not contain the expected form.
type FormUnavailableError struct {
	URL string
	Err error
}

func (e *FormUnavailableError) Error() string {
	return fmt.Sprintf("form unavailable at %s: %v", e.URL, e.Err)
}

func (e *FormUnavailableError) Unwrap() error {
	return e.Err
}

// SubmissionError means one form submission failed. StatusCode is zero when
// no response was received.
type SubmissionError struct {
	Record     query.Record
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submitting %s: unexpected status code %d", e.Record, e.StatusCode)
	}
	return fmt.Sprintf("submitting %s: %v", e.Record, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
