package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Encode writes m to w.
func Encode(w io.Writer, m *Model) error {
	if err := m.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, m.LearningRate); err != nil {
		return ioFailure("write learning rate", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(m.Layers))); err != nil {
		return ioFailure("write layer count", err)
	}

	for i, layer := range m.Layers {
		dims := [2]uint64{uint64(layer.Rows()), uint64(layer.Cols())}
		if err := binary.Write(bw, binary.LittleEndian, dims); err != nil {
			return ioFailure(fmt.Sprintf("write layer %d shape", i), err)
		}
		if err := binary.Write(bw, binary.LittleEndian, layer.RawData()); err != nil {
			return ioFailure(fmt.Sprintf("write layer %d weights", i), err)
		}
	}

	if err := bw.Flush(); err != nil {
		return ioFailure("flush", err)
	}
	return nil
}

// WriteFile creates (or truncates) path and encodes m into it. Every
// returned error names path once.
func WriteFile(path string, m *Model) (err error) {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	//nolint:gosec // G304: model path is supplied by the caller
	file, err := os.Create(path)
	if err != nil {
		return ioFailure("create model file", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = ioFailure("close model file", closeErr)
		}
	}()

	return Encode(file, m)
}
