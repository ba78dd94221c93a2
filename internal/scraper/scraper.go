package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/usps-zipcodes/internal/archive"
	"github.com/pfrederiksen/usps-zipcodes/internal/form"
	"github.com/pfrederiksen/usps-zipcodes/internal/logger"
	"github.com/pfrederiksen/usps-zipcodes/internal/query"
)

const (
	FormURL   = "http://zip4.usps.com/zip4/citytown.jsp"
	UserAgent = "usps-zipcodes/1.0 (github.com/pfrederiksen/usps-zipcodes)"
	Timeout   = 30 * time.Second
)

// Options configures a Scraper. Zero values fall back to the package defaults.
type Options struct {
	FormURL    string
	UserAgent  string
	Timeout    time.Duration
	CityField  string
	StateField string
}

// Scraper submits city/state queries through the look-up form
type Scraper struct {
	client     *resty.Client
	formURL    string
	cityField  string
	stateField string
}

// New creates a Scraper
func New(opts Options) *Scraper {
	if opts.FormURL == "" {
		opts.FormURL = FormURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	if opts.CityField == "" {
		opts.CityField = "city"
	}
	if opts.StateField == "" {
		opts.StateField = "state"
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)

	return &Scraper{
		client:     client,
		formURL:    opts.FormURL,
		cityField:  opts.CityField,
		stateField: opts.StateField,
	}
}

// AcquireForm fetches the look-up page and parses its first form. The form
// must declare the city and state fields.
func (s *Scraper) AcquireForm(ctx context.Context) (*form.Template, error) {
	res, err := s.client.R().
		SetContext(ctx).
		Get(s.formURL)
	if err != nil {
		return nil, &FormUnavailableError{URL: s.formURL, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &FormUnavailableError{
			URL: s.formURL,
			Err: fmt.Errorf("unexpected status code: %d", res.StatusCode()),
		}
	}

	tmpl, err := form.Parse(bytes.NewReader(res.Body()), s.formURL)
	if err != nil {
		return nil, &FormUnavailableError{URL: s.formURL, Err: err}
	}

	for _, name := range []string{s.cityField, s.stateField} {
		if !tmpl.Has(name) {
			return nil, &FormUnavailableError{
				URL: s.formURL,
				Err: fmt.Errorf("%w: %s", form.ErrUnknownField, name),
			}
		}
	}

	logger.Debug("Acquired form", logger.Fields{
		"action": tmpl.Action(),
		"method": tmpl.Method(),
	})
	return tmpl, nil
}

// Submit binds rec into a copy of tmpl, sends it and returns the raw body
func (s *Scraper) Submit(ctx context.Context, tmpl *form.Template, rec query.Record) ([]byte, error) {
	sub, err := tmpl.Bind(map[string]string{
		s.cityField:  rec.City,
		s.stateField: rec.State,
	})
	if err != nil {
		return nil, &SubmissionError{Record: rec, Err: err}
	}

	req := s.client.R().SetContext(ctx)

	start := time.Now()
	var res *resty.Response
	if sub.Method == http.MethodPost {
		res, err = req.SetFormDataFromValues(sub.Values()).Post(sub.Action)
	} else {
		var action string
		action, err = withoutQuery(sub.Action)
		if err != nil {
			return nil, &SubmissionError{Record: rec, Err: err}
		}
		res, err = req.SetQueryParamsFromValues(sub.Values()).Get(action)
	}
	logger.RecordTiming(logger.SubmitTiming, time.Since(start))

	if err != nil {
		return nil, &SubmissionError{Record: rec, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &SubmissionError{
			Record:     rec,
			StatusCode: res.StatusCode(),
			Err:        errors.New(res.Status()),
		}
	}

	return res.Body(), nil
}

// Archive fetches the form once, submits it for each record in order and
// writes every response into dir. It stops at the first failure and returns
// the paths written so far along with the error.
func (s *Scraper) Archive(ctx context.Context, records []query.Record, dir string) ([]string, error) {
	tmpl, err := s.AcquireForm(ctx)
	if err != nil {
		return nil, err
	}

	store, err := archive.New(dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(records))
	for i, rec := range records {
		body, err := s.Submit(ctx, tmpl, rec)
		if err != nil {
			logger.Error("Submission failed", logger.Fields{
				"index": i,
				"city":  rec.City,
				"state": rec.State,
			}, err)
			return paths, err
		}

		path, err := store.Write(i, rec.City, body)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)

		logger.IncrCounter(logger.PagesArchived)
		logger.Info("Archived page", logger.Fields{
			"city":  rec.City,
			"state": rec.State,
			"file":  path,
			"bytes": len(body),
		})
	}

	return paths, nil
}

// withoutQuery drops the query string of a GET action; the form fields
// replace it rather than being appended to it.
func withoutQuery(action string) (string, error) {
	u, err := url.Parse(action)
	if err != nil {
		return "", fmt.Errorf("parsing form action: %w", err)
	}
	u.RawQuery = ""
	u.ForceQuery = false
	return u.String(), nil
}
