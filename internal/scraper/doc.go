// Package scraper drives the USPS city/town look-up form and archives the
// result pages.
//
// A batch fetches the form once (AcquireForm), then submits it for every
// query record in order (Submit) and writes each response body into the
// archive directory (Archive). Each submission binds a fresh copy of the
// form, so the fetched template is never modified. There is no retry: the
// first failure stops the batch and pages already written stay on disk.
package scraper
