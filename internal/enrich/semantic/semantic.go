// Package semantic implements an embedding-based enrichment collaborator.
// It splits the input text into candidate sentences, embeds them together
// with a per-field prototype description, and fills a low-confidence field
// with the sentence closest to that field's prototype.
package semantic

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/crimson-sun/triage/internal/enrich"
	"github.com/crimson-sun/triage/internal/model"
)

const (
	// defaultSimilarityFloor is the minimum cosine similarity between a
	// candidate sentence and a field prototype for the fill to happen.
	defaultSimilarityFloor = 0.4

	minCandidateLen = 15
	maxCandidateLen = 300
)

// fieldPrototypes describe what each field's content looks like; their
// embeddings anchor the similarity search.
var fieldPrototypes = map[string]string{
	"error_type":          "the name or class of the error, exception, or failure that occurred",
	"component_module":    "the service, module, or software component where the problem is located",
	"trigger_repro_steps": "the sequence of user actions or steps that triggers the problem",
	"observed_behavior":   "a description of what actually happened when the problem occurred",
	"expected_behavior":   "a description of what the system should have done instead",
}

// Embedder produces vector embeddings from text.
type Embedder interface {
	EmbedBatch(texts []string) ([][]float32, error)
	Close() error
}

// Option configures an Enricher.
type Option func(*Enricher)

/// WithSimilarityFloor overrides the minimum cosine similarity. Default: 0.4.
func WithSimilarityFloor(f float64) Option {
	return func(e *Enricher) { e.floor = f }
}

// Enricher fills low-confidence report fields via embedding similarity.
// Prototype embeddings are computed once at construction; Enrich itself
// holds no mutable state and is safe for concurrent use.
type Enricher struct {
	emb    Embedder
	floor  float64
	protos map[string][]float32
}

// New creates an Enricher over the given embedder and pre-embeds the field
// prototypes.
func New(emb Embedder, opts ...Option) (*Enricher, error) {
	e := &Enricher{emb: emb, floor: defaultSimilarityFloor}
	for _, opt := range opts {
		opt(e)
	}

	names := make([]string, 0, len(fieldPrototypes))
	texts := make([]string, 0, len(fieldPrototypes))
	for _, name := range model.CoreFieldNames {
		names = append(names, name)
		texts = append(texts, fieldPrototypes[name])
	}
	vecs, err := emb.EmbedBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("semantic: embedding prototypes: %w", err)
	}
	e.protos = make(map[string][]float32, len(names))
	for i, name := range names {
		e.protos[name] = vecs[i]
	}
	return e, nil
}

// NewONNX creates an Enricher backed by a local ONNX encoder model.
func NewONNX(modelPath, vocabPath string, opts ...Option) (*Enricher, error) {
	emb, err := newONNXEmbedder(modelPath, vocabPath)
	if err != nil {
		return nil, err
	}
	return New(emb, opts...)
}

// Enrich fills the report's low-confidence fields with the best-matching
// candidate sentences from rawText.
func (e *Enricher) Enrich(r *model.Report, rawText string, threshold float64) error {
	low := r.LowConfidenceFields(threshold)
	if len(low) == 0 {
		return nil
	}

	candidates := splitCandidates(rawText)
	if len(candidates) == 0 {
		r.EnrichmentApplied = true
		return nil
	}

	vecs, err := e.emb.EmbedBatch(candidates)
	if err != nil {
		return fmt.Errorf("semantic: embedding candidates: %w", err)
	}

	for _, name := range low {
		proto, ok := e.protos[name]
		if !ok {
			continue
		}
		bestIdx, bestSim := -1, e.floor
		for i, vec := range vecs {
			if sim := cosine(vec, proto); sim > bestSim {
				bestIdx, bestSim = i, sim
			}
		}
		if bestIdx < 0 {
			continue
		}

		sentence := candidates[bestIdx]
		confidence := round3(enrich.EnrichedConfidence * bestSim)
		if e.write(r, name, sentence, confidence, threshold) {
			slog.Debug("field enriched semantically",
				"field", name, "similarity", bestSim)
		}
	}

	r.EnrichmentApplied = true
	return nil
}

// write applies the fill, re-checking the low-confidence gate.
func (e *Enricher) write(r *model.Report, name, value string, confidence, threshold float64) bool {
	f := r.CoreField(name)
	if f == nil {
		return false
	}
	if f.Filled() && f.Confidence >= threshold {
		return false
	}
	f.Set(value, confidence, model.TierEnriched, value)
	r.FieldsEnrichedByNLP++
	return true
}

// Close releases the embedder's resources.
func (e *Enricher) Close() error {
	return e.emb.Close()
}

// splitCandidates breaks raw text into sentence-like chunks worth embedding.
func splitCandidates(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, part := range strings.Split(line, ". ") {
			part = strings.TrimSpace(part)
			if len(part) < minCandidateLen || len(part) > maxCandidateLen {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
