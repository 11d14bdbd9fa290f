// Package trainer runs the epoch loop around a classifier: it feeds one
// example at a time, tracks the loss per epoch and measures accuracy.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/born-ml/perceptron/internal/mnist"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/progress"
)

// ErrEmptyDataset is returned when there is nothing to train or test on.
var ErrEmptyDataset = errors.New("trainer: empty dataset")

// Model is the classifier surface the trainer drives.
type Model interface {
	Forward(input []float32) ([]float32, error)
	Train(input, target []float32) error
	Predict(input []float32) (nn.Prediction, error)
}

// Options configures Train and Evaluate.
type Options struct {
	Epochs   int          // Passes over the data; <= 0 means 1
	Classes  int          // Output width; <= 0 means mnist.Classes
	Shuffle  bool         // Visit samples in a new random order each epoch
	Rand     *rand.Rand   // Shuffle source; nil uses a random seed
	Progress io.Writer    // Progress bar destination; nil disables it
	Logger   *slog.Logger // nil discards
}

func (o Options) withDefaults() Options {
	if o.Epochs <= 0 {
		o.Epochs = 1
	}
	if o.Classes <= 0 {
		o.Classes = mnist.Classes
	}
	if o.Rand == nil {
		//nolint:gosec // G404: sample order is not security-sensitive
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	o.Logger = o.Logger.With("component", "trainer")
	return o
}

// Epoch summarizes one pass over the training data.
type Epoch struct {
	Index    int           // 1-based
	Loss     float64       // Mean squared output error before each update
	Samples  int           // Examples seen
	Duration time.Duration // Wall time of the pass
}

// History is the per-epoch loss record of a training run.
type History struct {
	Epochs []Epoch
}

// Last returns the most recent epoch, or false if none completed.
func (h *History) Last() (Epoch, bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// Train calls model.Train once per sample for opts.Epochs epochs.
//
// Cancellation is checked between examples; on cancellation the history
// of the completed epochs is returned together with the context error.
func Train(ctx context.Context, model Model, data *mnist.Dataset, opts Options) (*History, error) {
	if data == nil || data.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	opts = opts.withDefaults()
	log := opts.Logger

	hist := &History{}
	order := make([]int, data.Len())
	for i := range order {
		order[i] = i
	}

	log.Info("training started", "samples", data.Len(), "epochs", opts.Epochs, "shuffle", opts.Shuffle)
	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		if opts.Shuffle {
			opts.Rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		bar := progress.New(opts.Progress, len(order), progress.DefaultWidth)
		start := time.Now()
		var sum float64

		for n, idx := range order {
			if err := ctx.Err(); err != nil {
				log.Warn("training interrupted", "epoch", epoch, "sample", n, "error", err)
				return hist, fmt.Errorf("trainer: epoch %d: %w", epoch, err)
			}

			sample := data.Samples[idx]
			input, target := sample.Input(), sample.Target(opts.Classes)

			out, err := model.Forward(input)
			if err != nil {
				return hist, fmt.Errorf("trainer: sample %d: %w", idx, err)
			}
			if len(out) != len(target) {
				return hist, fmt.Errorf("trainer: sample %d: %d outputs for %d classes", idx, len(out), len(target))
			}
			sum += squaredError(out, target)

			if err := model.Train(input, target); err != nil {
				return hist, fmt.Errorf("trainer: sample %d: %w", idx, err)
			}

			bar.Inc()
			if n%100 == 0 {
				bar.Render()
			}
		}
		bar.Done()

		e := Epoch{
			Index:    epoch,
			Loss:     sum / float64(len(order)),
			Samples:  len(order),
			Duration: time.Since(start),
		}
		hist.Epochs = append(hist.Epochs, e)
		log.Info("epoch finished", "epoch", e.Index, "loss", e.Loss, "duration", e.Duration)
	}
	return hist, nil
}

// squaredError returns the mean of (target-out)^2.
func squaredError(out, target []float32) float64 {
	var s float64
	for i, v := range out {
		d := float64(target[i] - v)
		s += d * d
	}
	return s / float64(len(out))
}
