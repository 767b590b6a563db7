// Package main provides the scalargrad CLI: it fits a small network to
// y = x² + 2x + 4 and keeps the trained parameters in a JSON checkpoint.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/dataset"
	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/born-ml/scalargrad/internal/optim"
	"github.com/born-ml/scalargrad/internal/serialization"
	"github.com/born-ml/scalargrad/internal/train"
	"golang.org/x/exp/rand"
)

const version = "v0.1.0"

// options holds the parsed command line.
type options struct {
	hiddenLayers int
	neurons      int
	activation   nn.Activation
	seed         uint64
	samples      int
	lr           float64
	lambda       float64
	momentum     float64
	optimizer    string
	init         string
	epochs       int
	reportEvery  int
	modelPath    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{activation: nn.Tanh}

	fs := flag.NewFlagSet("scalargrad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.hiddenLayers, "hidden-layers", 1, "Number of hidden layers after the input layer")
	fs.IntVar(&opts.neurons, "neurons-per-layer", 1, "Neurons per hidden layer")
	fs.IntVar(&opts.neurons, "neurons", 1, "Shorthand for -neurons-per-layer")
	fs.Var(&opts.activation, "activation", "Hidden activation: identity, relu, tanh or sigmoid")
	fs.Uint64Var(&opts.seed, "seed", 1234, "Random seed for data and initialization")
	fs.IntVar(&opts.samples, "samples", 100, "Number of training samples")
	fs.Float64Var(&opts.lr, "lr", optim.DefaultLR, "Learning rate")
	fs.Float64Var(&opts.lambda, "lambda", train.DefaultLambda, "L2 regularization strength")
	fs.Float64Var(&opts.momentum, "momentum", 0, "SGD momentum in [0, 1)")
	fs.StringVar(&opts.optimizer, "optimizer", "sgd", "Optimizer: sgd or adam")
	fs.StringVar(&opts.init, "init", "uniform", "Weight initialization: uniform or xavier")
	fs.IntVar(&opts.epochs, "epochs", 0, "Epochs to train (0 = prompt interactively)")
	fs.IntVar(&opts.reportEvery, "report", 0, "Report interval in epochs (0 = a tenth of each run, negative = never)")
	fs.StringVar(&opts.modelPath, "model", "", "Checkpoint file (default model_<parameters>.json)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.hiddenLayers < 0:
		return opts, fmt.Errorf("-hidden-layers must not be negative, got %d", opts.hiddenLayers)
	case opts.neurons < 1:
		return opts, fmt.Errorf("-neurons-per-layer must be positive, got %d", opts.neurons)
	case opts.samples < 1:
		return opts, fmt.Errorf("-samples must be positive, got %d", opts.samples)
	case opts.epochs < 0:
		return opts, fmt.Errorf("-epochs must not be negative, got %d", opts.epochs)
	}
	if opts.init != "uniform" && opts.init != "xavier" {
		return opts, fmt.Errorf("-init must be uniform or xavier, got %q", opts.init)
	}

	switch opts.optimizer {
	case "sgd":
		if err := opts.sgdConfig().Validate(); err != nil {
			return opts, err
		}
	case "adam":
		if opts.momentum != 0 {
			return opts, errors.New("-momentum applies to sgd only")
		}
		if err := opts.adamConfig().Validate(); err != nil {
			return opts, err
		}
	default:
		return opts, fmt.Errorf("-optimizer must be sgd or adam, got %q", opts.optimizer)
	}
	return opts, nil
}

func (o options) sgdConfig() optim.SGDConfig {
	return optim.SGDConfig{LR: o.lr, Momentum: o.momentum}
}

func (o options) adamConfig() optim.AdamConfig {
	return optim.AdamConfig{LR: o.lr}
}

// newOptimizer builds the optimizer selected by -optimizer over params.
func (o options) newOptimizer(params iter.Seq[*autodiff.Value]) optim.Optimizer {
	if o.optimizer == "adam" {
		return optim.NewAdam(params, o.adamConfig())
	}
	return optim.NewSGD(params, o.sgdConfig())
}

// newInit returns the weight initialization selected by -init.
func (o options) newInit(src rand.Source) nn.Init {
	if o.init == "xavier" {
		return nn.XavierInit(src)
	}
	return nn.UniformInit(src)
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("scalargrad %s\n", version)
		return
	}

	log.SetFlags(0)
	log.SetPrefix("scalargrad: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	src := nn.NewSource(opts.seed)
	samples := dataset.Quadratic(opts.samples, src)
	model, err := nn.NewMLPWithInit(nn.ShapeConfig(1, opts.hiddenLayers, opts.neurons, opts.activation), opts.newInit(src))
	if err != nil {
		return err
	}

	numParams := model.NumParameters()
	fmt.Fprintf(stdout, "No. of parameters: %d\n", numParams)

	if opts.modelPath == "" {
		opts.modelPath = fmt.Sprintf("model_%d.json", numParams)
	}

	config := train.DefaultConfig()
	config.Lambda = opts.lambda
	config.ReportEvery = opts.reportEvery
	config.CheckpointPath = opts.modelPath
	config.Reporter = func(r train.Report) { fmt.Fprintln(stdout, r) }

	trainer, err := train.New(model, opts.newOptimizer(model.Parameters()), config)
	if err != nil {
		return err
	}

	if err := restore(trainer, opts.modelPath, stdout); err != nil {
		return err
	}

	if opts.epochs > 0 {
		return round(ctx, trainer, samples, opts.epochs, stdout)
	}

	done := make(chan struct{})
	defer close(done)
	lines := readLines(stdin, done)
	for {
		fmt.Fprint(stdout, "Enter no. of epochs: ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(stdout)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(stdout)
				return nil
			}
			line = l
		}

		epochs, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || epochs < 0 {
			continue
		}
		if epochs == 0 {
			return nil
		}
		if err := round(ctx, trainer, samples, epochs, stdout); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// restore loads the checkpoint at path into trainer if the file exists.
func restore(trainer *train.Trainer, path string, stdout io.Writer) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	ckpt, err := serialization.Load(path)
	if err != nil {
		return err
	}
	if err := trainer.Resume(ckpt); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Restored %s (loss %g, %d epochs)\n", path, ckpt.Loss, ckpt.TotalEpochs)
	return nil
}

// round trains for epochs epochs and prints a summary. An interrupt ends
// the round early without an error.
func round(ctx context.Context, trainer *train.Trainer, samples []dataset.Sample, epochs int, stdout io.Writer) error {
	result, err := trainer.Run(ctx, samples, epochs)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(stdout, "Interrupted after %d epochs\n", result.Epochs)
	} else if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Final loss: %v | Time: %.2fs | Total no. of epochs: %d\n",
		result.Loss, result.Elapsed.Seconds(), result.TotalEpochs)

	metrics, err := trainer.Evaluate(samples)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "MSE: %.5f | MAE: %.5f | R²: %.4f\n", metrics.MSE, metrics.MAE, metrics.R2)
	return nil
}

// readLines delivers stdin line by line so the prompt loop can also watch
// for interrupts. The channel is closed at EOF or once done is closed.
//
// A reader blocked in Read is only released by its next line or EOF.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
