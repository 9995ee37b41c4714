// Package summary prints the operator-facing console lines for a run.
package summary

import (
	"fmt"
	"io"
)

// Counts holds the per-section record totals of one report.
type Counts struct {
	Regular int
	Special int
}

// Total is the number of records included in the report.
func (c Counts) Total() int {
	return c.Regular + c.Special
}

// Reporter writes [OK]/[INFO]/[ERROR] lines to an output stream.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// FetchHalted reports the page that stopped pagination.
func (r *Reporter) FetchHalted(page, status int, body string) {
	_, _ = fmt.Fprintf(r.out, "[ERROR] Failed to retrieve data on page %d: %d - %s\n", page, status, body)
}

// Saved reports the written file and the record counts.
func (r *Reporter) Saved(filename string, c Counts) {
	_, _ = fmt.Fprintf(r.out, "[OK] Formatted Excel report saved as '%s'\n", filename)
	_, _ = fmt.Fprintf(r.out, "[INFO] Total records included: %d\n", c.Total())
	_, _ = fmt.Fprintf(r.out, "[INFO] Regular jobs: %d\n", c.Regular)
	_, _ = fmt.Fprintf(r.out, "[INFO] Special Acronis jobs: %d\n", c.Special)
}

// Uploaded reports where the report was archived.
func (r *Reporter) Uploaded(location string) {
	_, _ = fmt.Fprintf(r.out, "[INFO] Report uploaded to %s\n", location)
}
