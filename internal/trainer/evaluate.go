package trainer

import (
	"context"
	"fmt"

	"github.com/born-ml/perceptron/internal/mnist"
	"github.com/born-ml/perceptron/internal/progress"
)

// Result is the outcome of Evaluate.
type Result struct {
	Total   int
	Correct int

	// Confusion[actual][predicted] counts predictions per true label.
	Confusion [][]int
}

// Accuracy returns Correct/Total as a percentage.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}

// Evaluate predicts every sample and compares the arg-max label with the
// ground truth. The model is not modified.
func Evaluate(ctx context.Context, model Model, data *mnist.Dataset, opts Options) (Result, error) {
	if data == nil || data.Len() == 0 {
		return Result{}, ErrEmptyDataset
	}
	opts = opts.withDefaults()

	res := Result{Confusion: make([][]int, opts.Classes)}
	for i := range res.Confusion {
		res.Confusion[i] = make([]int, opts.Classes)
	}

	bar := progress.New(opts.Progress, data.Len(), progress.DefaultWidth)
	for i, sample := range data.Samples {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("trainer: evaluate: %w", err)
		}

		pred, err := model.Predict(sample.Input())
		if err != nil {
			return res, fmt.Errorf("trainer: sample %d: %w", i, err)
		}

		res.Total++
		label := int(sample.Label)
		if pred.Label == label {
			res.Correct++
		}
		if label < opts.Classes && pred.Label < opts.Classes {
			res.Confusion[label][pred.Label]++
		}

		bar.Inc()
		if i%100 == 0 {
			bar.Render()
		}
	}
	bar.Done()

	opts.Logger.Info("evaluation finished", "total", res.Total, "correct", res.Correct, "accuracy", res.Accuracy())
	return res, nil
}
