package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"empty input", ErrEmptyInput, true},
		{"parsing failed", ErrParsingFailed, true},
		{"insufficient memory", ErrInsufficientMemory, true},
		{"invalid config", ErrInvalidConfig, true},
		{"wrapped fatal", WrapFatal(stderrors.New("boom"), "Loader", "Load", "parse input"), true},
		{"item-level error", ErrMissingTarget, false},
		{"plain error", stderrors.New("something"), false},
		{"syntax error by message", stderrors.New("syntax error at line 3"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFatal(tt.err))
		})
	}
}

func TestIsInvalid(t *testing.T) {
	assert.True(t, IsInvalid(ErrUnresolvedReference))
	assert.True(t, IsInvalid(ErrMissingSchema))
	assert.True(t, IsInvalid(WrapInvalid(stderrors.New("bad item"), "Converter", "Convert", "map class")))
	assert.False(t, IsInvalid(nil))
	assert.False(t, IsInvalid(ErrEmptyInput))
}

func TestClassifyDefaultsToInvalid(t *testing.T) {
	assert.Equal(t, ErrorFatal, Classify(ErrNoTriples))
	assert.Equal(t, ErrorTransient, Classify(WrapTransient(stderrors.New("timeout"), "Uploader", "Put", "send part")))
	assert.Equal(t, ErrorInvalid, Classify(stderrors.New("anything else")))
}

func TestWrapPattern(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Loader", "LoadFile", "open input")

	assert.EqualError(t, err, "Loader.LoadFile: open input failed: boom")
	assert.True(t, stderrors.Is(err, base))
	assert.NoError(t, Wrap(nil, "a", "b", "c"))
}

func TestWrapPreservesUnwrapChain(t *testing.T) {
	err := WrapFatal(ErrParsingFailed, "Loader", "Load", "parse turtle")

	assert.True(t, Is(err, ErrParsingFailed))

	var ce *ClassifiedError
	assert.True(t, As(err, &ce))
	assert.Equal(t, ErrorFatal, ce.Class)
	assert.Equal(t, "Loader", ce.Component)
	assert.Equal(t, "Load", ce.Operation)
}
