package semantic

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// runtimeInit guards process-wide ONNX Runtime initialization.
var runtimeInit struct {
	once sync.Once
	err  error
}

func initRuntime(libPath string) error {
	runtimeInit.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		runtimeInit.err = ort.InitializeEnvironment()
	})
	return runtimeInit.err
}

// onnxEmbedder runs a BERT-style encoder ONNX export and mean-pools the
// final hidden states into one vector per input. The runtime shared library
// is expected next to the model file.
type onnxEmbedder struct {
	session  *ort.DynamicAdvancedSession
	tok      *wordpieceTokenizer
	embedDim int64
}

func newONNXEmbedder(modelPath, vocabPath string) (*onnxEmbedder, error) {
	libPath := filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	if err := initRuntime(libPath); err != nil {
		return nil, fmt.Errorf("semantic: onnx runtime init: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("semantic: reading model info: %w", err)
	}
	inputNames, err := encoderInputs(inputs)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("semantic: model has no outputs")
	}
	dims := outputs[0].Dimensions
	if len(dims) != 3 {
		return nil, fmt.Errorf("semantic: expected [batch, seq, dim] output, got %v", dims)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("semantic: session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputs[0].Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("semantic: creating session: %w", err)
	}

	tok, err := newWordpieceTokenizer(vocabPath)
	if err != nil {
		session.Destroy()
		return nil, err
	}

	return &onnxEmbedder{session: session, tok: tok, embedDim: dims[2]}, nil
}

// encoderInputs validates the expected BERT-style input tensors and returns
// their names in canonical order.
func encoderInputs(inputs []ort.InputOutputInfo) ([]string, error) {
	present := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		present[in.Name] = true
	}
	required := []string{"input_ids", "attention_mask", "token_type_ids"}
	for _, name := range required {
		if !present[name] {
			return nil, fmt.Errorf("semantic: model missing input %q", name)
		}
	}
	return required, nil
}

// EmbedBatch tokenizes, runs inference, and mean-pools one vector per text.
func (e *onnxEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	batch := e.tok.encodeBatch(texts)

	shape := ort.NewShape(batch.size, batch.seqLen)
	tIDs, err := ort.NewTensor(shape, batch.inputIDs)
	if err != nil {
		return nil, fmt.Errorf("semantic: input_ids tensor: %w", err)
	}
	defer tIDs.Destroy()
	tMask, err := ort.NewTensor(shape, batch.attentionMask)
	if err != nil {
		return nil, fmt.Errorf("semantic: attention_mask tensor: %w", err)
	}
	defer tMask.Destroy()
	tTypes, err := ort.NewTensor(shape, batch.tokenTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("semantic: token_type_ids tensor: %w", err)
	}
	defer tTypes.Destroy()

	tOut, err := ort.NewEmptyTensor[float32](ort.NewShape(batch.size, batch.seqLen, e.embedDim))
	if err != nil {
		return nil, fmt.Errorf("semantic: output tensor: %w", err)
	}
	defer tOut.Destroy()

	if err := e.session.Run([]ort.Value{tIDs, tMask, tTypes}, []ort.Value{tOut}); err != nil {
		return nil, fmt.Errorf("semantic: inference: %w", err)
	}

	return poolBatch(tOut.GetData(), batch, e.embedDim), nil
}

// Close releases the ONNX session.
func (e *onnxEmbedder) Close() error {
	return e.session.Destroy()
}

// poolBatch mean-pools per-token hidden states over non-padding positions,
// producing one vector per sequence.
func poolBatch(hidden []float32, batch encodedBatch, dim int64) [][]float32 {
	out := make([][]float32, batch.size)
	for b := int64(0); b < batch.size; b++ {
		vec := make([]float32, dim)
		maskOff := b * batch.seqLen
		hiddenOff := b * batch.seqLen * dim

		var count float32
		for s := int64(0); s < batch.seqLen; s++ {
			if batch.attentionMask[maskOff+s] != 1 {
				continue
			}
			count++
			tokOff := hiddenOff + s*dim
			for d := int64(0); d < dim; d++ {
				vec[d] += hidden[tokOff+d]
			}
		}
		if count > 0 {
			inv := 1 / count
			for d := range vec {
				vec[d] *= inv
			}
		}
		out[b] = vec
	}
	return out
}
