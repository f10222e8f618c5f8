// Package metrics emits standardised export-job lifecycle metrics.
package metrics

import (
	"time"

	obserrors "github.com/hypersdk/orchestrator/internal/observability/errors"
	"github.com/hypersdk/orchestrator/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// JobMetric captures details about an observed job lifecycle event.
type JobMetric struct {
	Transition string
	Result     string
	Duration   time.Duration
	Err        error
}

// EmitJobLifecycle emits standardised job lifecycle metrics: a counter per
// transition and, when a transfer duration is known, a timing.
func EmitJobLifecycle(sink statsd.Sink, in JobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"transition": in.Transition,
		"result":     in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("jobs.lifecycle", 1, tags)
	if in.Duration > 0 {
		sink.Timing("jobs.duration", in.Duration, tags)
	}
}
