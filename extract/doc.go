// Package extract converts resume documents into plain text for matching.
//
// A Registry dispatches on file extension to a registered Extractor. Plain
// text formats are handled out of the box; callers can register extractors
// for richer formats without touching this package.
package extract
