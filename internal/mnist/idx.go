package mnist

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	imageMagic = 2051
	labelMagic = 2049

	// maxImageSize bounds rows*cols of a single image.
	maxImageSize = 1 << 20

	// preallocLimit caps slice preallocation from an untrusted header count.
	preallocLimit = 1 << 16
)

var (
	// ErrBadMagic means a file does not start with the expected IDX magic.
	ErrBadMagic = errors.New("mnist: bad magic number")

	// ErrCountMismatch means the image and label files hold different
	// numbers of items.
	ErrCountMismatch = errors.New("mnist: image and label counts differ")

	// ErrTruncated means a file ended before its header count was reached.
	ErrTruncated = errors.New("mnist: truncated file")
)

// maybeGzip returns a reader that transparently decompresses r when it
// starts with the gzip header.
func maybeGzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(head) == 2 && head[0] == 0x1f && head[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("mnist: gzip: %w", err)
		}
		return zr, nil
	}
	return br, nil
}

func readHeader(r io.Reader, fields []uint32) error {
	for i := range fields {
		if err := binary.Read(r, binary.BigEndian, &fields[i]); err != nil {
			return truncated("header", err)
		}
	}
	return nil
}

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrTruncated, what)
	}
	return fmt.Errorf("mnist: read %s: %w", what, err)
}

// ReadImages reads an IDX image stream.
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
func ReadImages(r io.Reader) (rows, cols int, images [][]byte, err error) {
	r, err = maybeGzip(r)
	if err != nil {
		return 0, 0, nil, err
	}

	var magic [1]uint32
	if err := readHeader(r, magic[:]); err != nil {
		return 0, 0, nil, err
	}
	if magic[0] != imageMagic {
		return 0, 0, nil, fmt.Errorf("%w: got %d, want %d", ErrBadMagic, magic[0], imageMagic)
	}

	var dims [3]uint32
	if err := readHeader(r, dims[:]); err != nil {
		return 0, 0, nil, err
	}
	count, h, w := dims[0], dims[1], dims[2]
	if h == 0 || w == 0 || uint64(h)*uint64(w) > maxImageSize {
		return 0, 0, nil, fmt.Errorf("mnist: unsupported image size %dx%d", h, w)
	}

	size := int(h) * int(w)
	images = make([][]byte, 0, min(int(count), preallocLimit))
	for i := range int(count) {
		pixels := make([]byte, size)
		if _, err := io.ReadFull(r, pixels); err != nil {
			return 0, 0, nil, truncated(fmt.Sprintf("image %d", i), err)
		}
		images = append(images, pixels)
	}
	return int(h), int(w), images, nil
}

// ReadLabels reads an IDX label stream.
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func ReadLabels(r io.Reader) ([]byte, error) {
	r, err := maybeGzip(r)
	if err != nil {
		return nil, err
	}

	var header [2]uint32
	if err := readHeader(r, header[:1]); err != nil {
		return nil, err
	}
	if header[0] != labelMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadMagic, header[0], labelMagic)
	}
	if err := readHeader(r, header[1:]); err != nil {
		return nil, err
	}

	// The header count is untrusted.
	labels, err := io.ReadAll(io.LimitReader(r, int64(header[1])))
	if err != nil {
		return nil, fmt.Errorf("mnist: read labels: %w", err)
	}
	if len(labels) != int(header[1]) {
		return nil, fmt.Errorf("%w: %d of %d labels", ErrTruncated, len(labels), header[1])
	}
	return labels, nil
}
