// Package fundval tracks the value over time of money placed into investment
// funds whose prices are known only as sparse daily quotation series.
//
// The core of the package is the day-by-day valuation ledger: given the
// purchase orders of an investment and the quotation history of each fund it
// holds, the ledger accumulates participation units and invested capital,
// prices the whole position every calendar day that can be priced, and derives
// refund (return) figures from the result.
//
// Quotation acquisition, console rendering and the CLI live in subpackages;
// this package is pure in-memory computation over already materialized data.
package fundval
