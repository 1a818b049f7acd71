package semantic

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSeqLen = 128

// encodedBatch holds tokenized sequences packed into flat slices of shape
// [size * seqLen], padded to the longest sequence in the batch.
type encodedBatch struct {
	inputIDs      []int64
	attentionMask []int64
	tokenTypeIDs  []int64
	size          int64
	seqLen        int64
}

// wordpieceTokenizer is a BERT-compatible WordPiece tokenizer with its
// vocabulary. Token IDs come from vocab.txt line numbers.
type wordpieceTokenizer struct {
	ids   map[string]int64
	unkID int64
	clsID int64
	sepID int64
}

func newWordpieceTokenizer(vocabPath string) (*wordpieceTokenizer, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("semantic: vocab: %w", err)
	}
	defer f.Close()

	ids := make(map[string]int64, 32000)
	scanner := bufio.NewScanner(f)
	var n int64
	for scanner.Scan() {
		ids[scanner.Text()] = n
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("semantic: vocab read: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("semantic: vocab file is empty: %s", vocabPath)
	}

	t := &wordpieceTokenizer{ids: ids}
	for _, sp := range []struct {
		name string
		dest *int64
	}{
		{"[UNK]", &t.unkID},
		{"[CLS]", &t.clsID},
		{"[SEP]", &t.sepID},
	} {
		id, ok := ids[sp.name]
		if !ok {
			return nil, fmt.Errorf("semantic: vocab missing special token %s", sp.name)
		}
		*sp.dest = id
	}
	if _, ok := ids["[PAD]"]; !ok {
		return nil, fmt.Errorf("semantic: vocab missing special token [PAD]")
	}
	return t, nil
}

// encode converts one text into a [CLS] ... [SEP] ID sequence, truncated to
// maxSeqLen. Returned slices are unpadded.
func (t *wordpieceTokenizer) encode(text string) []int64 {
	tokens := t.subwords(basicTokens(text))
	if len(tokens) > maxSeqLen-2 {
		tokens = tokens[:maxSeqLen-2]
	}
	ids := make([]int64, 0, len(tokens)+2)
	ids = append(ids, t.clsID)
	for _, tok := range tokens {
		id, ok := t.ids[tok]
		if !ok {
			id = t.unkID
		}
		ids = append(ids, id)
	}
	return append(ids, t.sepID)
}

// encodeBatch encodes each text and packs the batch, padded to the longest
// sequence. Padding positions keep ID 0 ([PAD]) and mask 0.
func (t *wordpieceTokenizer) encodeBatch(texts []string) encodedBatch {
	seqs := make([][]int64, len(texts))
	var maxLen int64
	for i, text := range texts {
		seqs[i] = t.encode(text)
		if l := int64(len(seqs[i])); l > maxLen {
			maxLen = l
		}
	}

	size := int64(len(texts))
	total := size * maxLen
	batch := encodedBatch{
		inputIDs:      make([]int64, total),
		attentionMask: make([]int64, total),
		tokenTypeIDs:  make([]int64, total),
		size:          size,
		seqLen:        maxLen,
	}
	for i, seq := range seqs {
		off := int64(i) * maxLen
		copy(batch.inputIDs[off:], seq)
		for j := range seq {
			batch.attentionMask[off+int64(j)] = 1
		}
	}
	return batch
}

// subwords applies the WordPiece algorithm, greedily matching the longest
// known subword at each position. Unknown decompositions become [UNK].
func (t *wordpieceTokenizer) subwords(tokens []string) []string {
	var out []string
	for _, token := range tokens {
		runes := []rune(token)
		if len(runes) == 0 {
			continue
		}
		if len(runes) > 200 {
			out = append(out, "[UNK]")
			continue
		}

		var pieces []string
		start := 0
		for start < len(runes) {
			end := len(runes)
			matched := ""
			for end > start {
				sub := string(runes[start:end])
				if start > 0 {
					sub = "##" + sub
				}
				if _, ok := t.ids[sub]; ok {
					matched = sub
					break
				}
				end--
			}
			if matched == "" {
				pieces = []string{"[UNK]"}
				break
			}
			pieces = append(pieces, matched)
			start = end
		}
		out = append(out, pieces...)
	}
	return out
}

// basicTokens lowercases, strips accents and control characters, and splits
// on whitespace and punctuation, keeping punctuation as separate tokens.
func basicTokens(text string) []string {
	var cleaned strings.Builder
	cleaned.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == 0 || r == 0xFFFD || isControlRune(r):
			// drop
		case unicode.IsSpace(r):
			cleaned.WriteRune(' ')
		default:
			cleaned.WriteRune(r)
		}
	}

	var tokens []string
	for _, word := range strings.Fields(stripAccents(cleaned.String())) {
		var current strings.Builder
		for _, r := range word {
			if isPunctRune(r) {
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
				tokens = append(tokens, string(r))
				continue
			}
			current.WriteRune(r)
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
		}
	}
	return tokens
}

// stripAccents removes combining marks after NFD normalization.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControlRune(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isPunctRune(r rune) bool {
	// ASCII punctuation ranges match the reference BERT tokenizer.
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}
