package ingest

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
	"unicode"

	"github.com/crimson-sun/triage/internal/model"
)

// MaxFreetextLen caps user-provided descriptions.
const MaxFreetextLen = 10000

func init() {
	Register(model.SourceFreetext, func() Handler {
		return &Freetext{}
	})
}

// Freetext handles user-provided free text descriptions.
type Freetext struct{}

// Ingest sanitizes the text and derives a content-hash source ID.
func (h *Freetext) Ingest(_ context.Context, source string) (string, model.SourceMetadata, error) {
	if len(source) > MaxFreetextLen {
		return "", model.SourceMetadata{}, fmt.Errorf(
			"ingest: text length %d exceeds maximum %d", len(source), MaxFreetextLen)
	}

	text := sanitizeText(source)

	meta := model.SourceMetadata{
		SourceType:    model.SourceFreetext,
		SourceID:      fmt.Sprintf("freetext_%x", contentHash(text)),
		IngestedAt:    time.Now().UTC(),
		RawTextLength: len(text),
	}
	return text, meta, nil
}

// sanitizeText trims the input and drops non-printable characters, keeping
// newlines and tabs.
func sanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func contentHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
