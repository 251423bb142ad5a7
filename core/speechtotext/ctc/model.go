package ctc

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// AcousticModel maps a log-mel spectrogram to per-frame vocabulary logits.
// The model subsamples time by a fixed stride, so the returned matrix is
// shorter than the input. outLen is the number of valid rows; rows past it
// are padding and must not be decoded.
type AcousticModel interface {
	Infer(ctx context.Context, features [][]float32) (logits [][]float32, outLen int, err error)
	Close() error
}

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime(libraryPath string) error {
	ortInitOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

type onnxModel struct {
	session *ort.DynamicAdvancedSession
}

// NewModel loads an ONNX conformer-CTC export. The session expects inputs
// "audio_signal" ([1, mels, T]) and "length" ([1]) and produces "logprobs"
// ([1, T', vocab]) plus "logprobs_len" ([1]) holding the valid step count.
func NewModel(modelPath string, opts ...ModelOption) (AcousticModel, error) {
	options := ModelOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if err := initRuntime(options.RuntimeLibraryPath); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"audio_signal", "length"},
		[]string{"logprobs", "logprobs_len"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load acoustic model: %w", err)
	}
	return &onnxModel{session: session}, nil
}

type ModelOptions struct {
	// RuntimeLibraryPath overrides the onnxruntime shared library location.
	RuntimeLibraryPath string
}

type ModelOption func(*ModelOptions)

func WithRuntimeLibraryPath(path string) ModelOption {
	return func(o *ModelOptions) { o.RuntimeLibraryPath = path }
}

func (m *onnxModel) Infer(ctx context.Context, features [][]float32) ([][]float32, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	numFrames := len(features)
	if numFrames == 0 {
		return nil, 0, nil
	}

	// The model wants [1, mels, T], transposed from our per-frame rows.
	flat := make([]float32, numMels*numFrames)
	for t, row := range features {
		for m, v := range row {
			flat[m*numFrames+t] = v
		}
	}
	input, err := ort.NewTensor(ort.NewShape(1, numMels, int64(numFrames)), flat)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()
	length, err := ort.NewTensor(ort.NewShape(1), []int64{int64(numFrames)})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create length tensor: %w", err)
	}
	defer length.Destroy()

	outputs := []ort.Value{nil, nil}
	if err := m.session.Run([]ort.Value{input, length}, outputs); err != nil {
		return nil, 0, fmt.Errorf("inference failed: %w", err)
	}
	logprobs, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, 0, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer logprobs.Destroy()
	logprobsLen, ok := outputs[1].(*ort.Tensor[int64])
	if !ok {
		return nil, 0, fmt.Errorf("unexpected length tensor type %T", outputs[1])
	}
	defer logprobsLen.Destroy()

	shape := logprobs.GetShape()
	if len(shape) != 3 {
		return nil, 0, fmt.Errorf("unexpected output rank %d", len(shape))
	}
	steps, vocab := int(shape[1]), int(shape[2])
	data := logprobs.GetData()

	logits := make([][]float32, steps)
	for t := 0; t < steps; t++ {
		row := make([]float32, vocab)
		copy(row, data[t*vocab:(t+1)*vocab])
		logits[t] = row
	}

	outLen := steps
	if lens := logprobsLen.GetData(); len(lens) > 0 {
		if n := int(lens[0]); n >= 0 && n <= steps {
			outLen = n
		}
	}
	return logits, outLen, nil
}

func (m *onnxModel) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	return err
}

// LoadVocabulary reads a token list, one token per line. Line order defines
// token ids; the blank token occupies line zero.
func LoadVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	var vocab []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		vocab = append(vocab, strings.TrimRight(scanner.Text(), "\r\n"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocabulary at %q is empty", path)
	}
	return vocab, nil
}
