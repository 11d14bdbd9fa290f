package serialization

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Decode reads a model from r. The whole stream must be consumed by the
// model; trailing bytes are reported as corruption.
func Decode(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	m := &Model{}

	if err := binary.Read(br, binary.LittleEndian, &m.LearningRate); err != nil {
		return nil, readFailure("learning rate", -1, err)
	}

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, readFailure("layer count", -1, err)
	}
	if count > MaxLayerCount {
		return nil, tooLarge("layer count", -1, "got %d, max %d", count, MaxLayerCount)
	}

	m.Layers = make([]*matrix.Dense[float32], 0, count)
	for i := 0; i < int(count); i++ {
		var dims [2]uint64
		if err := binary.Read(br, binary.LittleEndian, &dims); err != nil {
			return nil, readFailure("shape", i, err)
		}
		rows, cols := dims[0], dims[1]
		if err := checkDims(i, rows, cols); err != nil {
			return nil, err
		}

		weights := make([]float32, rows*cols)
		if err := binary.Read(br, binary.LittleEndian, weights); err != nil {
			return nil, readFailure("weights", i, err)
		}

		layer, err := matrix.FromValues(int(rows), int(cols), weights)
		if err != nil {
			return nil, corrupt("shape", i, "%v", err)
		}
		m.Layers = append(m.Layers, layer)
	}

	if _, err := br.ReadByte(); err == nil {
		return nil, corrupt("trailer", -1, "unexpected data after layer %d", count)
	} else if !errors.Is(err, io.EOF) {
		return nil, ioFailure("read trailer", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile decodes the model stored at path. Every returned error names
// path once.
func ReadFile(path string) (*Model, error) {
	//nolint:gosec // G304: model path is supplied by the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, ioFailure("open model file", err)
	}
	defer func() { _ = file.Close() }()

	m, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func readFailure(field string, layer int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corrupt(field, layer, "unexpected end of data")
	}
	return ioFailure("read "+field, err)
}
