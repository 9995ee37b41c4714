package control

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/vietddude/backupreport/internal/core/config"
	"github.com/vietddude/backupreport/internal/core/domain"
	"github.com/vietddude/backupreport/internal/infra/backupradar"
	"github.com/vietddude/backupreport/internal/infra/objectstore"
	"github.com/vietddude/backupreport/internal/metrics"
	"github.com/vietddude/backupreport/internal/report/classify"
	"github.com/vietddude/backupreport/internal/report/group"
	"github.com/vietddude/backupreport/internal/report/render"
	"github.com/vietddude/backupreport/internal/report/summary"
)

// Config holds what a Runner needs beyond the loaded application config.
type Config struct {
	App   *config.AppConfig
	RunID string
	Out   io.Writer
	Now   func() time.Time
}

// Runner executes the report pipeline once: fetch, classify, group, render, summarize.
type Runner struct {
	cfg        *config.AppConfig
	runID      string
	now        func() time.Time
	loc        *time.Location
	client     *backupradar.Client
	fetcher    *backupradar.Fetcher
	classifier *classify.Classifier
	renderer   *render.Renderer
	reporter   *summary.Reporter
	uploader   ReportUploader
	log        *slog.Logger
}

// NewRunner wires every pipeline stage from configuration.
func NewRunner(cfg Config) (*Runner, error) {
	app := cfg.App
	loc, err := time.LoadLocation(app.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", app.Report.Timezone, err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	client := backupradar.NewClient(app.API.URL, app.API.Key, app.API.Timeout)

	r := &Runner{
		cfg:        app,
		runID:      cfg.RunID,
		now:        now,
		loc:        loc,
		client:     client,
		fetcher:    backupradar.NewFetcher(client),
		classifier: classify.New(app.Special.Methods, app.Special.Keywords),
		renderer:   render.NewRenderer(app.Report.SheetTitle, app.Special.SectionTitle),
		reporter:   summary.NewReporter(cfg.Out),
		log:        slog.Default().With("component", "runner"),
	}

	if app.Upload.Enabled {
		r.uploader = objectstore.NewUploader(objectstore.Config{
			Endpoint:  app.Upload.Endpoint,
			Region:    app.Upload.Region,
			Bucket:    app.Upload.Bucket,
			Prefix:    app.Upload.Prefix,
			AccessKey: app.Upload.AccessKey,
			SecretKey: app.Upload.SecretKey,
		})
	}

	return r, nil
}

// Run produces one report. A page that fails with a non-200 status only
// truncates the data; every other failure is returned.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	day := domain.ReportDate(r.now(), r.loc, r.cfg.Report.DayOffset)
	r.log.Info("Generating backup report", "date", domain.FileDate(day), "timezone", r.loc.String())

	fetched, err := r.fetcher.FetchAll(ctx, backupradar.Query{
		Date:            domain.QueryDate(day),
		Statuses:        r.cfg.API.Statuses,
		PageSize:        r.cfg.API.PageSize,
		FilterScheduled: r.cfg.API.FilterScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch backups: %w", err)
	}
	if h := fetched.Halted; h != nil {
		r.reporter.FetchHalted(h.Page, h.StatusCode, h.Body)
	}

	regular, special := r.classifier.Split(fetched.Records)
	counts := summary.Counts{Regular: len(regular), Special: len(special)}
	r.log.Debug("Classified records", "regular", counts.Regular, "special", counts.Special)

	f, err := r.renderer.Render(group.SortAndGroup(regular), group.SortAndGroup(special))
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	defer f.Close()

	path, err := render.Save(f, r.cfg.Report.OutputDir, render.FileName(day))
	if err != nil {
		return nil, err
	}

	metrics.PartitionRecords.WithLabelValues(string(domain.PartitionRegular)).Set(float64(counts.Regular))
	metrics.PartitionRecords.WithLabelValues(string(domain.PartitionSpecial)).Set(float64(counts.Special))
	metrics.LastSuccess.SetToCurrentTime()

	r.reporter.Saved(filepath.Base(path), counts)

	result := &Result{
		Path:   path,
		Counts: counts,
		Pages:  fetched.Pages,
		Halted: fetched.Halted != nil,
	}

	if r.uploader != nil {
		location, err := r.uploader.Upload(ctx, path, map[string]string{
			"run-id":      r.runID,
			"report-date": domain.FileDate(day),
		})
		if err != nil {
			return result, fmt.Errorf("upload report: %w", err)
		}
		result.Location = location
		r.reporter.Uploaded(location)
	}

	r.pushMetrics()
	return result, nil
}

func (r *Runner) pushMetrics() {
	url := r.cfg.Metrics.PushgatewayURL
	if url == "" {
		return
	}
	if err := metrics.Push(url, r.cfg.Metrics.Job); err != nil {
		r.log.Warn("Failed to push metrics", "error", err)
	}
}

// Close releases idle connections.
func (r *Runner) Close() error {
	return r.client.Close()
}
