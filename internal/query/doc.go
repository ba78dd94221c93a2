// Package query holds the city/state records that drive a look-up batch and
// loads them from a two-column CSV file.
package query
