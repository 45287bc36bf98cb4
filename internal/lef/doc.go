// Package lef builds the in-memory model of a LEF library and turns it back
// into canonical text. The parser is a recursive descent over a line cursor,
// one function per structural construct; inline checks report to the shared
// diagnostic ledger while the document is being built. Canonicalization
// re-sorts every ordered collection with fixed priority tables so that output
// is reproducible and diffable regardless of input ordering.
package lef
