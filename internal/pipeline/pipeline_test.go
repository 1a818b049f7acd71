package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/triage/internal/engine"
	"github.com/crimson-sun/triage/internal/engine/registry"
	"github.com/crimson-sun/triage/internal/model"
)

// recordingOutput captures written reports for assertions.
type recordingOutput struct {
	mu      sync.Mutex
	reports []*model.Report
	err     error
	closed  bool
}

func (o *recordingOutput) Write(_ context.Context, r *model.Report) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.reports = append(o.reports, r)
	return nil
}

func (o *recordingOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

func (o *recordingOutput) written() []*model.Report {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reports
}

func newTestPipeline(out *recordingOutput, opts ...Option) *Pipeline {
	return New(engine.New(registry.Default()), out, opts...)
}

func TestProcessFreetext(t *testing.T) {
	out := &recordingOutput{}
	p := newTestPipeline(out)

	r, err := p.ProcessFreetext(context.Background(), "NullPointerException in PaymentService")
	require.NoError(t, err)

	require.True(t, r.ErrorType.Filled())
	assert.Equal(t, "NullPointerException", *r.ErrorType.Value)
	assert.Equal(t, model.SourceFreetext, r.Source.SourceType)

	require.Len(t, out.written(), 1)
	assert.Same(t, r, out.written()[0])
}

func TestProcessLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash.log")
	require.NoError(t, os.WriteFile(path, []byte("SQLException in checkout flow"), 0o644))

	out := &recordingOutput{}
	p := newTestPipeline(out)

	r, err := p.ProcessLogFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, model.SourceLogFile, r.Source.SourceType)
	assert.Equal(t, "crash.log", r.Source.FileName)
	assert.True(t, r.ErrorType.Filled())
}

func TestProcessWorkItem(t *testing.T) {
	payload := `{"id": 42, "fields": {"System.Title": "NullPointerException in PaymentService"}}`

	out := &recordingOutput{}
	p := newTestPipeline(out)

	r, err := p.ProcessWorkItem(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, model.SourceWorkItem, r.Source.SourceType)
	assert.Equal(t, "42", r.Source.WorkItemID)
}

func TestProcessUnknownSourceType(t *testing.T) {
	p := newTestPipeline(&recordingOutput{})

	_, err := p.Process(context.Background(), "carrier-pigeon", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type")
}

func TestProcessIngestFailure(t *testing.T) {
	p := newTestPipeline(&recordingOutput{})

	_, err := p.ProcessLogFile(context.Background(), filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}

func TestProcessOutputFailure(t *testing.T) {
	out := &recordingOutput{err: errors.New("sink down")}
	p := newTestPipeline(out)

	_, err := p.ProcessFreetext(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline output")
}

func TestProcessBatchWritesAll(t *testing.T) {
	out := &recordingOutput{}
	p := newTestPipeline(out)

	reports, err := p.ProcessBatch(context.Background(), model.SourceFreetext, []string{
		"NullPointerException in PaymentService",
		"TimeoutError while loading dashboard",
	})
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Len(t, out.written(), 2)
}

func TestProcessBatchDeduplicates(t *testing.T) {
	out := &recordingOutput{}
	p := newTestPipeline(out, WithDeduplication(NewDeduplicator(DedupConfig{})))

	reports, err := p.ProcessBatch(context.Background(), model.SourceFreetext, []string{
		"NullPointerException in PaymentService",
		"NullPointerException in PaymentService",
		"NullPointerException in PaymentService",
	})
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, 3, reports[0].DuplicateCount)
	assert.Len(t, out.written(), 1)
}

func TestClose(t *testing.T) {
	out := &recordingOutput{}
	p := newTestPipeline(out)

	require.NoError(t, p.Close())
	assert.True(t, out.closed)
}
