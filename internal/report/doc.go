// Package report renders analysis results as terminal tables with CSV
// mirrors. Commands build a Table and pick the output form from flags.
package report
