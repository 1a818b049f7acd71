package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/triage/internal/model"
)

func TestWorkItemIngest(t *testing.T) {
	h := &WorkItem{}

	t.Run("formats all sections", func(t *testing.T) {
		payload := `{
			"id": 12345,
			"fields": {
				"System.Title": "Cart crashes on checkout",
				"System.Description": "The cart service throws an exception",
				"Microsoft.VSTS.TCM.ReproSteps": "1. Add item 2. Click checkout",
				"Microsoft.VSTS.Common.AcceptanceCriteria": "Checkout should complete"
			}
		}`
		text, meta, err := h.Ingest(context.Background(), payload)
		require.NoError(t, err)

		assert.Contains(t, text, "Title: Cart crashes on checkout")
		assert.Contains(t, text, "Description: The cart service throws an exception")
		assert.Contains(t, text, "Reproduction Steps: 1. Add item 2. Click checkout")
		assert.Contains(t, text, "Expected Behavior: Checkout should complete")

		assert.Equal(t, model.SourceWorkItem, meta.SourceType)
		assert.Equal(t, "workitem_12345", meta.SourceID)
		assert.Equal(t, "12345", meta.WorkItemID)
		assert.Equal(t, len(text), meta.RawTextLength)
	})

	t.Run("strips html", func(t *testing.T) {
		payload := `{
			"id": 7,
			"fields": {
				"System.Description": "<div>Fails&nbsp;when input is &lt;nil&gt;</div>"
			}
		}`
		text, _, err := h.Ingest(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, "Description: Fails when input is <nil>", text)
	})

	t.Run("missing fields skipped", func(t *testing.T) {
		text, meta, err := h.Ingest(context.Background(), `{"id": 9, "fields": {"System.Title": "Only a title"}}`)
		require.NoError(t, err)
		assert.Equal(t, "Title: Only a title", text)
		assert.Equal(t, "9", meta.WorkItemID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, meta, err := h.Ingest(context.Background(), `{"fields": {"System.Title": "No id"}}`)
		require.NoError(t, err)
		assert.Equal(t, "unknown", meta.WorkItemID)
		assert.Equal(t, "workitem_unknown", meta.SourceID)
	})

	t.Run("non-string field values ignored", func(t *testing.T) {
		text, _, err := h.Ingest(context.Background(), `{"id": 3, "fields": {"System.Title": "T", "System.Rev": 17}}`)
		require.NoError(t, err)
		assert.Equal(t, "Title: T", text)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, _, err := h.Ingest(context.Background(), `{not json`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing work item")
	})
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "a b", stripHTML("<p>a</p>&nbsp;<b>b</b>"))
	assert.Equal(t, "plain", stripHTML("plain"))
	assert.Equal(t, "", stripHTML("<br/>"))
}
