// Package archive manages the directory of raw look-up pages that sits
// between acquisition and extraction.
//
// Pages are stored flat, one file per query, named by a zero-padded sequence
// index and the sanitized city name (00_ames.html, 01_des_moines.html). The
// extraction side only relies on the .html extension; the name exists so a
// person can match a page to its query.
package archive
