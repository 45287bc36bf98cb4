// Package diag defines the diagnostic ledger shared by every stage of a
// lefcheck run. Recoverable findings are appended to a Ledger under a closed
// set of categories; fatal structural violations are ordinary Go errors and
// never pass through this package.
package diag
