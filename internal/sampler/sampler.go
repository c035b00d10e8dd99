// Package sampler measures request round-trip latency over batches of
// sequential calls and computes descriptive statistics.
package sampler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rewired-gh/polylatency/internal/logger"
)

// Caller performs one request against the target under measurement. The
// context carries the per-call timeout.
type Caller func(ctx context.Context) error

// Sampler runs strictly sequential timed calls. Calls are never dispatched
// in parallel: concurrent requests would change the quantity being measured.
type Sampler struct {
	timeout  time.Duration
	progress io.Writer
}

// New creates a sampler with the given per-call timeout. Progress dots are
// written to progress, normally stdout.
func New(timeout time.Duration, progress io.Writer) *Sampler {
	return &Sampler{
		timeout:  timeout,
		progress: progress,
	}
}

// Sample invokes call count times in sequence and returns the round-trip
// time in milliseconds of every successful call. The timer wraps only the
// call itself; time.Since uses the monotonic clock. A call that errors,
// returns a bad status, or exceeds the timeout is logged with its 1-based
// index and skipped; the batch always runs to completion. The result may be
// shorter than count, or empty.
func (s *Sampler) Sample(ctx context.Context, label string, count int, call Caller) []float64 {
	fmt.Fprintf(s.progress, "Measuring %s latency over %d calls...", label, count)

	samples := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		start := time.Now()
		err := call(callCtx)
		elapsed := time.Since(start)
		cancel()

		if err != nil {
			logger.Warn("Call %d failed - %v", i+1, err)
			continue
		}

		samples = append(samples, float64(elapsed.Microseconds())/1000)
		fmt.Fprint(s.progress, ".")
	}

	fmt.Fprint(s.progress, " Done!\n\n")
	return samples
}
