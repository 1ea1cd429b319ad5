// Package nutrition holds the arithmetic behind the daily summary: summing
// per-item nutrition records, macro percentage shares, and classification of
// totals against recommended ranges.
//
// Everything here is pure and allocation-light; callers pass values and get
// values back.
package nutrition
