// Package cli implements the command-line interface for usps-zipcodes.
//
// Running the binary with no subcommand parses the archive directory and
// writes the ZIP code list, exactly like the parse subcommand. Acquisition is
// opt-in through the scrape subcommand, which reads a city/state CSV, submits
// each row through the look-up form and archives the result pages.
package cli
