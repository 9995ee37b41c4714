package backupradar

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/vietddude/backupreport/internal/core/domain"
	"github.com/vietddude/backupreport/internal/metrics"
)

// PageFetcher is the single-page operation the pagination loop depends on.
type PageFetcher interface {
	FetchPage(ctx context.Context, q Query, page int) (*Page, error)
}

// FetchResult holds everything accumulated by one pagination run.
type FetchResult struct {
	Records []domain.BackupRecord
	Pages   int
	// Halted is set when a non-200 page stopped pagination early.
	Halted *StatusError
}

// Fetcher walks every page of one query.
type Fetcher struct {
	client PageFetcher
	log    *slog.Logger
}

// NewFetcher creates a Fetcher over the given page source.
func NewFetcher(client PageFetcher) *Fetcher {
	return &Fetcher{
		client: client,
		log:    slog.Default().With("component", "fetcher"),
	}
}

// FetchAll requests pages until an empty page, the last reported page, or a non-200 response.
// A non-200 response is not an error: the records gathered so far are returned with Halted set.
// Transport and decoding failures are returned as errors.
func (f *Fetcher) FetchAll(ctx context.Context, q Query) (*FetchResult, error) {
	result := &FetchResult{}

	for page := 1; ; page++ {
		p, err := f.client.FetchPage(ctx, q, page)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				metrics.PageFailures.WithLabelValues(statusLabel(statusErr.StatusCode)).Inc()
				f.log.Error("Failed to retrieve page, stopping pagination",
					"page", statusErr.Page,
					"status", statusErr.StatusCode,
					"body", statusErr.Body,
					"records_so_far", len(result.Records),
				)
				result.Halted = statusErr
				return result, nil
			}
			return nil, err
		}

		metrics.PagesFetched.Inc()
		result.Pages = page

		if len(p.Records) == 0 {
			f.log.Debug("Empty page, pagination complete", "page", page)
			break
		}

		result.Records = append(result.Records, p.Records...)
		metrics.RecordsFetched.Add(float64(len(p.Records)))

		// A missing TotalPages means the current page is the last one.
		totalPages := page
		if p.HasTotal {
			totalPages = p.TotalPages
		}
		f.log.Debug("Fetched page", "page", page, "total_pages", totalPages, "records", len(p.Records))
		if page >= totalPages {
			break
		}
	}

	f.log.Info("Fetched backup records", "records", len(result.Records), "pages", result.Pages)
	return result, nil
}

func statusLabel(code int) string {
	return strconv.Itoa(code)
}
