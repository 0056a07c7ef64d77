package forecast

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/augur-ml/augur/internal/autodiff"
	"github.com/augur-ml/augur/internal/nn"
	"github.com/augur-ml/augur/internal/optim"
	"github.com/augur-ml/augur/internal/series"
	"github.com/augur-ml/augur/internal/tensor"
)

// Logger is the structured logging surface the trainer needs. Satisfied
// by zap's SugaredLogger.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// NewStdLogger returns a development-mode zap logger.
func NewStdLogger() (Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// nopLogger discards everything. Used when the caller passes nil.
type nopLogger struct{}

func (nopLogger) Infow(string, ...interface{})  {}
func (nopLogger) Warnw(string, ...interface{})  {}
func (nopLogger) Errorw(string, ...interface{}) {}

// Epochs are chatty at the default 200; log a subset.
const logEveryEpochs = 10

// Trainer runs the training loop for a forecasting model: shuffle into
// batches, forward, fused MSE, backward from a unit seed gradient,
// optimizer step, clear the tape, repeat.
//
// The trainer owns a seeded generator for batch shuffling, so training
// is reproducible run to run while still reshuffling every epoch.
type Trainer[B tensor.Backend] struct {
	model     *Model[*autodiff.AutodiffBackend[B]]
	optimizer optim.Optimizer
	criterion *nn.MSELoss[*autodiff.AutodiffBackend[B]]
	backend   *autodiff.AutodiffBackend[B]
	config    Config
	logger    Logger
	rng       *rand.Rand
	history   []float64

	// OnEpoch, when set, observes every epoch's mean loss.
	OnEpoch func(epoch int, loss float64)
}

// NewTrainer wires a model to an optimizer chosen by the config. A nil
// logger disables logging.
func NewTrainer[B tensor.Backend](model *Model[*autodiff.AutodiffBackend[B]], cfg Config, backend *autodiff.AutodiffBackend[B], logger Logger) (*Trainer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = nopLogger{}
	}

	var optimizer optim.Optimizer
	switch cfg.Optimizer {
	case OptimizerAdam:
		optimizer = optim.NewAdam(model.Parameters(), optim.AdamConfig{
			LR: float32(cfg.LR),
		}, backend)
	case OptimizerSGD:
		optimizer = optim.NewSGD(model.Parameters(), optim.SGDConfig{
			LR:       float32(cfg.LR),
			Momentum: float32(cfg.Momentum),
		}, backend)
	default:
		return nil, fmt.Errorf("unknown optimizer %q", cfg.Optimizer)
	}

	return &Trainer[B]{
		model:     model,
		optimizer: optimizer,
		criterion: nn.NewMSELoss(backend),
		backend:   backend,
		config:    cfg,
		logger:    logger,
		//nolint:gosec // math/rand for batch shuffling, not security-critical
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Train fits the model on windowed examples and returns the per-epoch
// mean training loss.
func (t *Trainer[B]) Train(examples []series.Example) ([]float64, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples")
	}

	t.logger.Infow("training",
		"examples", len(examples),
		"epochs", t.config.Epochs,
		"batch_size", t.config.BatchSize,
		"optimizer", t.config.Optimizer,
		"lr", t.optimizer.GetLR(),
	)

	t.history = make([]float64, 0, t.config.Epochs)

	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		batches, err := series.Batches(examples, t.config.BatchSize, t.rng, t.backend)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epoch, err)
		}

		var epochLoss float64
		for _, batch := range batches {
			loss := t.step(batch)
			epochLoss += loss * float64(batch.Size)
		}
		epochLoss /= float64(len(examples))
		t.history = append(t.history, epochLoss)

		if epoch%logEveryEpochs == 0 || epoch == t.config.Epochs {
			t.logger.Infow("epoch complete", "epoch", epoch, "loss", epochLoss)
		}
		if t.OnEpoch != nil {
			t.OnEpoch(epoch, epochLoss)
		}
	}

	return t.history, nil
}

// step runs one optimization step on a batch and returns its loss.
func (t *Trainer[B]) step(batch *series.Batch[*autodiff.AutodiffBackend[B]]) float64 {
	t.optimizer.ZeroGrad()

	tape := t.backend.Tape()
	tape.StartRecording()
	predictions := t.model.Forward(batch.Windows)
	loss := t.criterion.Forward(predictions, batch.Targets)
	tape.StopRecording()

	grads := autodiff.Backward(loss, t.backend)
	t.optimizer.Step(grads)
	tape.Clear()

	return float64(loss.Item())
}

// History returns the per-epoch losses of the last Train call.
func (t *Trainer[B]) History() []float64 {
	return t.history
}

// Model returns the model being trained.
func (t *Trainer[B]) Model() *Model[*autodiff.AutodiffBackend[B]] {
	return t.model
}
