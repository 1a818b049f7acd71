package semantic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVocab(t *testing.T, tokens ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0o644))
	return path
}

// fixtureVocab assigns IDs by line number: [PAD]=0, [UNK]=1, [CLS]=2, [SEP]=3.
func fixtureVocab(t *testing.T) string {
	t.Helper()
	return writeVocab(t,
		"[PAD]", "[UNK]", "[CLS]", "[SEP]",
		"the", "service", "crash", "##ed", "check", "##out", ",")
}

func TestNewWordpieceTokenizer(t *testing.T) {
	t.Run("valid vocab", func(t *testing.T) {
		tok, err := newWordpieceTokenizer(fixtureVocab(t))
		require.NoError(t, err)
		assert.Equal(t, int64(1), tok.unkID)
		assert.Equal(t, int64(2), tok.clsID)
		assert.Equal(t, int64(3), tok.sepID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newWordpieceTokenizer(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})

	t.Run("missing special token", func(t *testing.T) {
		_, err := newWordpieceTokenizer(writeVocab(t, "[PAD]", "[UNK]", "[SEP]", "the"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[CLS]")
	})

	t.Run("empty vocab", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocab.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := newWordpieceTokenizer(path)
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	tok, err := newWordpieceTokenizer(fixtureVocab(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []int64
	}{
		{"whole words", "the service", []int64{2, 4, 5, 3}},
		{"subword continuation", "The service crashed", []int64{2, 4, 5, 6, 7, 3}},
		{"wordpiece split", "checkout", []int64{2, 8, 9, 3}},
		{"unknown word", "the zzz", []int64{2, 4, 1, 3}},
		{"punctuation separates", "the,service", []int64{2, 4, 10, 5, 3}},
		{"accents stripped", "thé", []int64{2, 4, 3}},
		{"empty text", "", []int64{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.encode(tt.text))
		})
	}
}

func TestEncodeTruncation(t *testing.T) {
	tok, err := newWordpieceTokenizer(fixtureVocab(t))
	require.NoError(t, err)

	ids := tok.encode(strings.Repeat("the ", 300))
	assert.Len(t, ids, maxSeqLen)
	assert.Equal(t, tok.clsID, ids[0])
	assert.Equal(t, tok.sepID, ids[maxSeqLen-1])
}

func TestEncodeBatch(t *testing.T) {
	tok, err := newWordpieceTokenizer(fixtureVocab(t))
	require.NoError(t, err)

	batch := tok.encodeBatch([]string{"the service", "the"})
	assert.Equal(t, int64(2), batch.size)
	assert.Equal(t, int64(4), batch.seqLen)

	assert.Equal(t, []int64{2, 4, 5, 3, 2, 4, 3, 0}, batch.inputIDs)
	assert.Equal(t, []int64{1, 1, 1, 1, 1, 1, 1, 0}, batch.attentionMask)
	assert.Equal(t, make([]int64, 8), batch.tokenTypeIDs)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercase and split", "The Service", []string{"the", "service"}},
		{"punctuation isolated", "fail! now", []string{"fail", "!", "now"}},
		{"control chars dropped", "a\x00b", []string{"ab"}},
		{"tabs and newlines collapse", "a\tb\nc", []string{"a", "b", "c"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, basicTokens(tt.text))
		})
	}
}
