package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry holds every report metric. It is separate from the default
// registry so a push carries only the run's own series.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// PagesFetched tracks successful API page requests
	PagesFetched = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "backup_report_pages_fetched_total",
			Help: "Total number of API pages fetched successfully",
		},
	)

	// PageFailures tracks non-200 page responses by status code
	PageFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_report_page_failures_total",
			Help: "Total number of API pages that returned a non-200 status",
		},
		[]string{"status"},
	)

	// RecordsFetched tracks backup records returned by the API
	RecordsFetched = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "backup_report_records_fetched_total",
			Help: "Total number of backup records fetched",
		},
	)

	// PartitionRecords tracks records per report section for the last run
	PartitionRecords = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backup_report_partition_records",
			Help: "Number of records in each report section",
		},
		[]string{"partition"},
	)

	// LastSuccess is the unix time of the last saved report
	LastSuccess = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_report_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successfully written report",
		},
	)
)

// Push sends the registry to a Prometheus Pushgateway.
func Push(url, job string) error {
	if err := push.New(url, job).Gatherer(Registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
