package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/triage/internal/model"
)

// mockOutput records calls for test assertions.
type mockOutput struct {
	reports []*model.Report
	closed  bool
	err     error // if set, Write returns this error
}

func (m *mockOutput) Write(_ context.Context, r *model.Report) error {
	m.reports = append(m.reports, r)
	return m.err
}

func (m *mockOutput) Close() error {
	m.closed = true
	return m.err
}

func testReport(component string) *model.Report {
	r := model.NewReport(model.SourceMetadata{
		SourceType: model.SourceFreetext,
		SourceID:   "freetext_1",
	})
	r.ComponentModule.Set(component, 0.81, model.TierRegexStrict, "")
	return r
}

func TestFanOutDeliversToAll(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	c := &mockOutput{}
	m := New(a, b, c)

	require.NoError(t, m.Write(context.Background(), testReport("checkout")))

	for i, out := range []*mockOutput{a, b, c} {
		require.Len(t, out.reports, 1, "output %d", i)
		assert.Equal(t, "checkout", *out.reports[0].ComponentModule.Value, "output %d", i)
	}
}

func TestErrorDoesNotPreventDelivery(t *testing.T) {
	failing := &mockOutput{err: errors.New("disk full")}
	healthy := &mockOutput{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), testReport("payments"))
	require.Error(t, err)

	// Healthy output still received the report despite earlier failure.
	assert.Len(t, healthy.reports, 1)
	assert.Len(t, failing.reports, 1)
}

func TestCloseCallsAllOutputs(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	m := New(a, b)

	require.NoError(t, m.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestCloseCollectsErrors(t *testing.T) {
	a := &mockOutput{err: errors.New("err-a")}
	b := &mockOutput{err: errors.New("err-b")}
	m := New(a, b)

	err := m.Close()
	require.Error(t, err)
	assert.True(t, a.closed, "Close should be called on all outputs even when errors occur")
	assert.True(t, b.closed)
}

func TestSingleOutputIdentity(t *testing.T) {
	inner := &mockOutput{}
	m := New(inner)

	require.NoError(t, m.Write(context.Background(), testReport("auth")))
	require.NoError(t, m.Close())

	require.Len(t, inner.reports, 1)
	assert.Equal(t, "auth", *inner.reports[0].ComponentModule.Value)
	assert.True(t, inner.closed)
}
