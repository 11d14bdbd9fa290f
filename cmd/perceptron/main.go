// Package main provides the perceptron CLI: train a digit classifier on
// IDX data, test a saved model and classify single images.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/born-ml/perceptron/internal/config"
	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/mnist"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/parallel"
	"github.com/born-ml/perceptron/internal/trainer"
)

const version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "perceptron %s - sigmoid multilayer perceptron for handwritten digits\n\n", version)
	fmt.Fprintln(w, "Usage: perceptron <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train a model and save it")
	fmt.Fprintln(w, "  test       Measure recognition quality of a saved model")
	fmt.Fprintln(w, "  predict    Classify one test image")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'perceptron <command> -h' for the flags of a command.")
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cmd := args[0]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "perceptron %s\n", version)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	case "train", "test", "predict":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		usage(stderr)
		return 2
	}

	cfg := config.Default()
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	index := fs.Int("index", 0, "test image to classify (predict only)")
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := cfg.Logger(stderr).With("run_id", uuid.NewString(), "command", cmd)
	if cfg.Workers > 0 {
		matrix.SetParallelism(parallel.DefaultConfig().WithWorkers(cfg.Workers))
	}

	app := &app{cfg: cfg, log: logger, out: stdout, progress: stderr}
	var err error
	switch cmd {
	case "train":
		err = app.train(ctx)
	case "test":
		err = app.test(ctx)
	case "predict":
		err = app.predict(*index)
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		return 1
	}
	return 0
}

type app struct {
	cfg      config.Config
	log      *slog.Logger
	out      io.Writer
	progress io.Writer
}

func (a *app) dataset(split mnist.Split) (*mnist.Dataset, error) {
	var d *mnist.Dataset
	if a.cfg.Synthetic {
		n := a.cfg.Limit
		if n == 0 {
			n = 1000
		}
		d = mnist.Synthetic(n)
		a.log.Info("using synthetic data", "split", split, "items", d.Len())
	} else {
		var err error
		if d, err = mnist.LoadDir(a.cfg.DataDir, split, a.log); err != nil {
			return nil, fmt.Errorf("load %s set: %w", split, err)
		}
	}
	d.Limit(a.cfg.Limit)
	return d, nil
}

func (a *app) train(ctx context.Context) error {
	data, err := a.dataset(mnist.Train)
	if err != nil {
		return err
	}
	if got, want := data.InputSize(), a.cfg.Topology[0]; got != want {
		return fmt.Errorf("images have %d pixels but the input layer has %d", got, want)
	}

	model, err := nn.New(a.cfg.Topology,
		nn.WithLearningRate(float32(a.cfg.LearningRate)),
		nn.WithPropagation(a.cfg.Propagation),
		nn.WithLogger(a.log),
	)
	if err != nil {
		return err
	}

	a.log.Info("network training",
		"topology", a.cfg.Topology.String(),
		"learning_rate", a.cfg.LearningRate,
		"propagation", a.cfg.Propagation.String())

	hist, err := trainer.Train(ctx, model, data, trainer.Options{
		Epochs:   a.cfg.Epochs,
		Classes:  a.cfg.Topology[len(a.cfg.Topology)-1],
		Shuffle:  a.cfg.Shuffle,
		Progress: a.progress,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}

	if err := model.Save(a.cfg.ModelPath); err != nil {
		return err
	}

	if a.cfg.PlotPath != "" {
		if err := hist.Plot(a.cfg.PlotPath); err != nil {
			return err
		}
		a.log.Info("loss curve written", "path", a.cfg.PlotPath)
	}

	if last, ok := hist.Last(); ok {
		fmt.Fprintf(a.out, "final loss: %.6f\n", last.Loss)
	}
	return nil
}

func (a *app) load() (*nn.Perceptron, error) {
	model := nn.NewEmpty(nn.WithLogger(a.log))
	if err := model.Load(a.cfg.ModelPath); err != nil {
		return nil, err
	}
	return model, nil
}

func (a *app) test(ctx context.Context) error {
	model, err := a.load()
	if err != nil {
		return err
	}
	data, err := a.dataset(mnist.Test)
	if err != nil {
		return err
	}

	topology := model.Topology()
	res, err := trainer.Evaluate(ctx, model, data, trainer.Options{
		Classes:  topology[len(topology)-1],
		Progress: a.progress,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "recognition quality: %.2f%% (%d/%d)\n", res.Accuracy(), res.Correct, res.Total)
	return nil
}

func (a *app) predict(index int) error {
	model, err := a.load()
	if err != nil {
		return err
	}
	data, err := a.dataset(mnist.Test)
	if err != nil {
		return err
	}
	if index < 0 || index >= data.Len() {
		return fmt.Errorf("index %d out of range [0, %d)", index, data.Len())
	}

	sample := data.Samples[index]
	pred, err := model.Predict(sample.Input())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "image %d: predicted %d (confidence %.4f), actual %d\n",
		index, pred.Label, pred.Confidence, sample.Label)
	return nil
}
