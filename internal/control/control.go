package control

import (
	"context"

	"github.com/vietddude/backupreport/internal/report/summary"
)

// ReportUploader archives a written report and returns where it was stored.
type ReportUploader interface {
	Upload(ctx context.Context, localPath string, metadata map[string]string) (string, error)
}

// Result describes one completed run.
type Result struct {
	Path   string
	Counts summary.Counts
	Pages  int
	// Halted is true when pagination stopped on a non-200 page.
	Halted bool

	Location string
}
