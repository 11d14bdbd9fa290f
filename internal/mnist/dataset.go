package mnist

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"
)

// Split selects the training or test half of a dataset directory.
type Split int

const (
	Train Split = iota
	Test
)

func (s Split) String() string {
	if s == Test {
		return "test"
	}
	return "train"
}

// Sample is one labelled image.
type Sample struct {
	Label  uint8
	Pixels []byte // Row-major, Rows*Cols bytes
}

// Dataset is an in-memory list of samples sharing one image size.
type Dataset struct {
	Rows    int
	Cols    int
	Samples []Sample
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// InputSize returns the number of pixels per image.
func (d *Dataset) InputSize() int {
	return d.Rows * d.Cols
}

// Limit keeps only the first n samples. n <= 0 keeps everything.
func (d *Dataset) Limit(n int) {
	if n > 0 && n < len(d.Samples) {
		d.Samples = d.Samples[:n]
	}
}

// Shuffle permutes the samples in place.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Samples), func(i, j int) {
		d.Samples[i], d.Samples[j] = d.Samples[j], d.Samples[i]
	})
}

// Files returns the conventional image and label file names of split in
// dir.
func Files(dir string, split Split) (images, labels string) {
	prefix := "train"
	if split == Test {
		prefix = "t10k"
	}
	return filepath.Join(dir, prefix+"-images-idx3-ubyte"),
		filepath.Join(dir, prefix+"-labels-idx1-ubyte")
}

// LoadDir loads split from dir. Each file may also be stored with a .gz
// suffix.
func LoadDir(dir string, split Split, logger *slog.Logger) (*Dataset, error) {
	images, labels := Files(dir, split)
	return Load(existing(images), existing(labels), logger)
}

func existing(path string) string {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat(path + ".gz"); err == nil {
			return path + ".gz"
		}
	}
	return path
}

// Load reads an image file and its label file.
func Load(imagesPath, labelsPath string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "mnist")
	start := time.Now()

	logger.Info("loading images file", "path", imagesPath)
	set, err := readFile(imagesPath, func(r io.Reader) (imageSet, error) {
		var s imageSet
		var err error
		s.rows, s.cols, s.images, err = ReadImages(r)
		return s, err
	})
	if err != nil {
		logger.Error("loading images failed", "path", imagesPath, "error", err)
		return nil, err
	}

	logger.Info("loading labels file", "path", labelsPath)
	labels, err := readFile(labelsPath, ReadLabels)
	if err != nil {
		logger.Error("loading labels failed", "path", labelsPath, "error", err)
		return nil, err
	}
	rows, cols, images := set.rows, set.cols, set.images

	if len(images) != len(labels) {
		err := fmt.Errorf("%w: %d images, %d labels", ErrCountMismatch, len(images), len(labels))
		logger.Error("loading data failed", "error", err)
		return nil, err
	}

	d := &Dataset{Rows: rows, Cols: cols, Samples: make([]Sample, len(images))}
	for i, pixels := range images {
		d.Samples[i] = Sample{Label: labels[i], Pixels: pixels}
	}

	logger.Info("data loaded successfully",
		"items", d.Len(),
		"image_size", fmt.Sprintf("%dx%d", rows, cols),
		"duration", time.Since(start))
	return d, nil
}

type imageSet struct {
	rows, cols int
	images     [][]byte
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("mnist: %w", err)
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
