// Package extract recovers ZIP code values from archived look-up pages.
//
// The look-up site marks each ZIP code in a table cell with a known class.
// That marker is the only assumption made about the page, and it lives in
// DefaultSelector (overridable per Parser) so a markup change is a one-line
// update. Cells whose text is 15 characters or longer are PO Box entries
// rendered as compound strings and are dropped unless filtering is disabled.
package extract
