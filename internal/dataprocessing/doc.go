// Package dataprocessing implements the purchase-order transform
// pipeline: loading worksheet data from source workbooks, normalizing
// the column schema, reconciling delivery dates, and deriving the
// past-due report.
package dataprocessing
