// Package metrics provides Prometheus metrics for listing-renamer
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Slot metrics
	ImagesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_images_added_total",
			Help: "Total number of images placed into slots",
		},
	)

	ImagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_images_dropped_total",
			Help: "Images rejected as non-image or because all slots were full",
		},
	)

	PreviewsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_previews_failed_total",
			Help: "Previews that could not be generated",
		},
	)

	PreviewsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_previews_discarded_total",
			Help: "Preview results discarded because their slot changed",
		},
	)

	// Export metrics
	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_exports_total",
			Help: "Export runs by mode and outcome",
		},
		[]string{"mode", "status"},
	)

	ManualLinks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_manual_links_total",
			Help: "Manual download links created",
		},
		[]string{"mode"},
	)

	BytesExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_bytes_exported_total",
			Help: "Bytes handed to the deliverer",
		},
		[]string{"mode"},
	)
)

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
