package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/internal/matrix"
)

func layer(t *testing.T, rows, cols int, start float32) *matrix.Dense[float32] {
	t.Helper()
	values := make([]float32, rows*cols)
	for i := range values {
		values[i] = start + float32(i)*0.125
	}
	m, err := matrix.FromValues(rows, cols, values)
	require.NoError(t, err)
	return m
}

// model342 has the weight shapes of a [3,4,2] topology.
func model342(t *testing.T) *Model {
	return &Model{
		LearningRate: 0.3,
		Layers:       []*matrix.Dense[float32]{layer(t, 4, 3, -1), layer(t, 2, 4, 0.5)},
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device error") }

func TestRoundTrip_EveryLayer(t *testing.T) {
	want := model342(t)

	path := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, want.LearningRate, got.LearningRate)
	require.Len(t, got.Layers, len(want.Layers))
	for i := range want.Layers {
		assert.Truef(t, want.Layers[i].Equal(got.Layers[i]), "layer %d differs", i)
	}
	assert.Equal(t, []int{3, 4, 2}, got.Topology())
}

func TestEncode_ByteLayout(t *testing.T) {
	l, err := matrix.FromRows([][]float32{{1, 2}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Model{LearningRate: 0.5, Layers: []*matrix.Dense[float32]{l}}))

	var want bytes.Buffer
	le := binary.LittleEndian
	want.Write(le.AppendUint32(nil, math.Float32bits(0.5)))
	want.Write(le.AppendUint64(nil, 1))
	want.Write(le.AppendUint64(nil, 1))
	want.Write(le.AppendUint64(nil, 2))
	want.Write(le.AppendUint32(nil, math.Float32bits(1)))
	want.Write(le.AppendUint32(nil, math.Float32bits(2)))

	assert.Equal(t, want.Bytes(), buf.Bytes())
	assert.Equal(t, 4+8+16+8, buf.Len())
}

func TestRoundTrip_NoLayers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Model{LearningRate: 0.1}))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Layers)
	assert.Nil(t, got.Topology())
}

func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, model342(t)))
	data := buf.Bytes()

	for _, n := range []int{0, 3, 4, 11, 12, 20, 40, len(data) - 1} {
		_, err := Decode(bytes.NewReader(data[:n]))
		require.ErrorIsf(t, err, ErrCorrupt, "truncated at %d", n)

		var fe *FormatError
		assert.True(t, errors.As(err, &fe))
	}
}

func TestDecode_TrailingBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, model342(t)))
	buf.WriteByte(0)

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func encodeHeader(lr float32, dims ...uint64) []byte {
	le := binary.LittleEndian
	out := le.AppendUint32(nil, math.Float32bits(lr))
	for _, d := range dims {
		out = le.AppendUint64(out, d)
	}
	return out
}

func TestDecode_BadDimensions(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too many layers", encodeHeader(0.1, MaxLayerCount+1), ErrTooLarge},
		{"zero rows", encodeHeader(0.1, 1, 0, 3), ErrCorrupt},
		{"zero cols", encodeHeader(0.1, 1, 3, 0), ErrCorrupt},
		{"huge layer", encodeHeader(0.1, 1, 1<<20, 1<<20), ErrTooLarge},
		{"overflowing dims", encodeHeader(0.1, 1, math.MaxUint64, 2), ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_LayersMustChain(t *testing.T) {
	data := encodeHeader(0.1, 2, 1, 1)
	data = binary.LittleEndian.AppendUint32(data, math.Float32bits(1))
	data = binary.LittleEndian.AppendUint64(data, 1)
	data = binary.LittleEndian.AppendUint64(data, 2) // expects 1 column
	data = binary.LittleEndian.AppendUint32(data, 0)
	data = binary.LittleEndian.AppendUint32(data, 0)

	_, err := Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestEncode_RejectsInvalidModel(t *testing.T) {
	m := &Model{Layers: []*matrix.Dense[float32]{layer(t, 4, 3, 0), layer(t, 2, 5, 0)}}
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, m), ErrCorrupt)

	empty, err := matrix.Zeros[float32](0, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, &Model{Layers: []*matrix.Dense[float32]{empty}}), ErrCorrupt)
}

func TestIOErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.bin"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = WriteFile(filepath.Join(dir, "no", "such", "dir", "model.bin"), model342(t))
	assert.ErrorIs(t, err, ErrIO)

	assert.ErrorIs(t, Encode(failingWriter{}, model342(t)), ErrIO)

	_, err = Decode(failingReader{})
	assert.ErrorIs(t, err, ErrIO)
}

func TestWriteFile_InvalidModelNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	m := &Model{Layers: []*matrix.Dense[float32]{layer(t, 4, 3, 0), layer(t, 2, 5, 0)}}

	err := WriteFile(path, m)
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, 1, strings.Count(err.Error(), path))
	assert.NoFileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte{0}, 0o600))
	_, err = ReadFile(path)
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, 1, strings.Count(err.Error(), path))
}
