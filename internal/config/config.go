// Package config holds the settings of a training or testing run and binds
// them to command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/born-ml/perceptron/internal/nn"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Defaults for a 28x28 digit classifier.
const (
	DefaultTopology     = "784,150,10"
	DefaultLearningRate = 0.2
	DefaultEpochs       = 1
	DefaultDataDir      = "data"
	DefaultModelPath    = "model.bin"
)

// Topology is a list of layer widths usable as a flag value.
type Topology []int

// String implements flag.Value.
func (t Topology) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (t *Topology) Set(s string) error {
	v, err := ParseTopology(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTopology parses layer widths separated by commas or whitespace,
// e.g. "784,150,10" or "784 150 10".
func ParseTopology(s string) (Topology, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty topology", ErrInvalid)
	}
	t := make(Topology, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: topology %q: %w", ErrInvalid, s, err)
		}
		t[i] = n
	}
	return t, nil
}

// Config is the full set of run settings.
type Config struct {
	Topology     Topology
	LearningRate float64
	Epochs       int
	DataDir      string
	ModelPath    string
	Limit        int // Max samples per split; 0 loads all
	PlotPath     string
	Workers      int // Matmul goroutines; 0 picks from the CPU
	Shuffle      bool
	Synthetic    bool
	Propagation  nn.Propagation
	LogLevel     slog.Level
	LogFormat    string // "text" or "json"
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	t, _ := ParseTopology(DefaultTopology)
	return Config{
		Topology:     t,
		LearningRate: DefaultLearningRate,
		Epochs:       DefaultEpochs,
		DataDir:      DefaultDataDir,
		ModelPath:    DefaultModelPath,
		Propagation:  nn.PropagateUpdated,
		LogLevel:     slog.LevelInfo,
		LogFormat:    "text",
	}
}

// RegisterFlags binds c's fields to flags on fs, using the current field
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.Topology, "topology", "layer widths, input first (e.g. 784,150,10)")
	fs.Float64Var(&c.LearningRate, "lr", c.LearningRate, "learning rate")
	fs.IntVar(&c.Epochs, "epochs", c.Epochs, "passes over the training set")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "directory with the IDX dataset files")
	fs.StringVar(&c.ModelPath, "model", c.ModelPath, "model file to save or load")
	fs.IntVar(&c.Limit, "limit", c.Limit, "max samples to use, 0 for all")
	fs.StringVar(&c.PlotPath, "plot", c.PlotPath, "write the loss curve to this image file")
	fs.IntVar(&c.Workers, "workers", c.Workers, "matrix multiply workers, 0 for auto")
	fs.BoolVar(&c.Shuffle, "shuffle", c.Shuffle, "shuffle samples every epoch")
	fs.BoolVar(&c.Synthetic, "synthetic", c.Synthetic, "use generated data instead of the dataset files")
	fs.Func("propagation", "error propagation: updated or pre-update (default "+c.Propagation.String()+")", func(s string) error {
		p, err := nn.ParsePropagation(s)
		if err != nil {
			return err
		}
		c.Propagation = p
		return nil
	})
	fs.TextVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Topology) < 2 {
		errs = append(errs, fmt.Errorf("topology needs at least 2 layers, got %d", len(c.Topology)))
	}
	for i, n := range c.Topology {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("topology width %d at index %d must be positive", n, i))
		}
	}
	if c.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("learning rate must be positive, got %g", c.LearningRate))
	}
	if c.Epochs <= 0 {
		errs = append(errs, fmt.Errorf("epochs must be positive, got %d", c.Epochs))
	}
	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative, got %d", c.Limit))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.ModelPath == "" {
		errs = append(errs, errors.New("model path is required"))
	}
	if !c.Synthetic && c.DataDir == "" {
		errs = append(errs, errors.New("data directory is required unless -synthetic is set"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Logger builds the run logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
