package pipeline

import (
	"context"
	"sync"

	"github.com/crimson-sun/triage/internal/model"
	"github.com/crimson-sun/triage/internal/output"
)

// Collector accumulates reports fed one at a time and flushes deduplicated
// batches to an output. It lets callers that produce reports incrementally,
// such as a directory walk, still benefit from batch deduplication.
type Collector struct {
	dedup   *Deduplicator
	out     output.Output
	maxSize int // 0 means flush only on demand

	mu      sync.Mutex
	pending []*model.Report
}

// NewCollector creates a Collector. When maxSize is positive the collector
// flushes automatically once that many reports are pending.
func NewCollector(d *Deduplicator, out output.Output, maxSize int) *Collector {
	return &Collector{
		dedup:   d,
		out:     out,
		maxSize: maxSize,
	}
}

// Add appends a report, flushing first if the buffer is full.
func (c *Collector) Add(ctx context.Context, r *model.Report) error {
	c.mu.Lock()
	c.pending = append(c.pending, r)
	full := c.maxSize > 0 && len(c.pending) >= c.maxSize
	c.mu.Unlock()

	if full {
		return c.Flush(ctx)
	}
	return nil
}

// Flush deduplicates and writes all pending reports.
func (c *Collector) Flush(ctx context.Context) error {
	c.mu.Lock()
	reports := c.pending
	c.pending = nil
	c.mu.Unlock()

	if len(reports) == 0 {
		return nil
	}

	deduped := c.dedup.DeduplicateBatch(reports)
	for _, r := range deduped {
		if err := c.out.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
