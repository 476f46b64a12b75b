// Package metrics registers the api client metrics on the default prometheus registry.
// Applications embedding the client expose them with their own handler; the wca cli
// writes them to a node exporter textfile when --metrics-textfile is set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "wca"

	metricLabelMethod = "method"
	metricLabelStatus = "status"
)

// Transport outcomes used as status label
const (
	StatusSuccess    = "success"
	StatusFault      = "fault"
	StatusTokenError = "token_error"
	StatusError      = "error"
)

var (
	// RequestCounter counts api calls per method and outcome
	RequestCounter = newCounterVec(
		"request_count",
		"Count of api calls for each method",
		metricLabelMethod, metricLabelStatus,
	)
	// RequestDuration observes the round trip of api calls
	RequestDuration = newSummaryVec(
		"request_duration_seconds",
		"Seconds to obtain a token, post a request and read its response",
		metricLabelMethod, metricLabelStatus,
	)
	// JournalPersistFailedCounter counts exchanges that could not be recorded
	JournalPersistFailedCounter = newCounterVec(
		"journal_persist_failed_count",
		"Number of failures to record an exchange in the journal",
	)
)

func newSummaryVec(name, help string, labels ...string) *prometheus.SummaryVec {
	vec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}

// WriteTextfile writes the default registry in the text exposition format
func WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, prometheus.DefaultGatherer)
}
