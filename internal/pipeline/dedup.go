package pipeline

import (
	"strings"
	"time"

	"github.com/crimson-sun/triage/internal/model"
)

// DedupConfig controls batch deduplication behavior.
type DedupConfig struct {
	Window time.Duration // grouping window over ProcessedAt, 0 means unbounded
}

// Deduplicator collapses reports that normalized to the same error type and
// component within a batch.
type Deduplicator struct {
	cfg DedupConfig
}

// NewDeduplicator creates a Deduplicator with the given config.
func NewDeduplicator(cfg DedupConfig) *Deduplicator {
	return &Deduplicator{cfg: cfg}
}

// dedupGroup accumulates reports sharing a dedup key.
type dedupGroup struct {
	report  *model.Report
	count   int
	firstTS time.Time
}

// DeduplicateBatch collapses reports whose error type and component both
// matched to the same values. Reports missing either field never merge.
// Returns reports in first-occurrence order; merged reports carry the
// duplicate count.
func (d *Deduplicator) DeduplicateBatch(reports []*model.Report) []*model.Report {
	if len(reports) == 0 {
		return nil
	}

	var order []*dedupGroup
	groups := make(map[string]*dedupGroup)

	for _, r := range reports {
		key := dedupKey(r)
		if key == "" {
			// Not enough signal to group on, keep as-is.
			key = r.BugID
		}

		grp, exists := groups[key]
		if exists && (d.cfg.Window == 0 || r.ProcessedAt.Sub(grp.firstTS) <= d.cfg.Window) {
			grp.count++
			continue
		}

		grp = &dedupGroup{report: r, count: 1, firstTS: r.ProcessedAt}
		groups[key] = grp
		order = append(order, grp)
	}

	result := make([]*model.Report, 0, len(order))
	for _, grp := range order {
		if grp.count > 1 {
			grp.report.DuplicateCount = grp.count
		}
		result = append(result, grp.report)
	}
	return result
}

// dedupKey builds the grouping key from the normalized error type and
// component, or "" when either field is unfilled.
func dedupKey(r *model.Report) string {
	if !r.ErrorType.Filled() || !r.ComponentModule.Filled() {
		return ""
	}
	return strings.ToLower(*r.ErrorType.Value) + "." + strings.ToLower(*r.ComponentModule.Value)
}
