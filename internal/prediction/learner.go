package prediction

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-insight/internal/logger"
	"go.uber.org/zap"
)

const (
	DefaultLearnerInterval = 5 * time.Minute
	DefaultMinBatch        = 32
	DefaultCapacity        = 1000
)

// LearnerConfig tunes the background learner. Zero values take the defaults.
type LearnerConfig struct {
	Interval time.Duration
	MinBatch int
	Capacity int
}

type sample struct {
	window FeatureWindow
	label  float64
}

// IncrementalLearner buffers submitted samples and periodically trains the
// model on the newest MinBatch of them. It implements TrainingFeed.
type IncrementalLearner struct {
	model  Model
	config LearnerConfig
	logger *logger.Logger

	mu      sync.Mutex
	buffer  []sample
	updates int

	lifecycle sync.Mutex
	stop      chan struct{}
	done      chan struct{}
}

func NewIncrementalLearner(model Model, config LearnerConfig, log *logger.Logger) *IncrementalLearner {
	if config.Interval <= 0 {
		config.Interval = DefaultLearnerInterval
	}

	if config.MinBatch <= 0 {
		config.MinBatch = DefaultMinBatch
	}

	if config.Capacity < config.MinBatch {
		config.Capacity = max(DefaultCapacity, config.MinBatch)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &IncrementalLearner{
		model:     model,
		config:    config,
		logger:    log,
		mu:        sync.Mutex{},
		buffer:    make([]sample, 0, config.Capacity),
		updates:   0,
		lifecycle: sync.Mutex{},
		stop:      nil,
		done:      nil,
	}
}

// Submit appends a sample, evicting the oldest past capacity.
func (l *IncrementalLearner) Submit(window FeatureWindow, label float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.buffer) >= l.config.Capacity {
		l.buffer = append(l.buffer[:0], l.buffer[1:]...)
	}

	l.buffer = append(l.buffer, sample{window: window, label: label})
}

// Len returns the number of buffered samples.
func (l *IncrementalLearner) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.buffer)
}

// Updates returns how many batches were trained successfully.
func (l *IncrementalLearner) Updates() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.updates
}

// Start launches the background loop. Calling Start on a running learner is a no-op.
func (l *IncrementalLearner) Start(ctx context.Context) {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	if l.stop != nil {
		return
	}

	l.stop = make(chan struct{})
	l.done = make(chan struct{})

	go l.run(ctx, l.stop, l.done)
}

// Stop signals the loop and waits for it to exit.
func (l *IncrementalLearner) Stop() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	if l.stop == nil {
		return
	}

	close(l.stop)
	<-l.done

	l.stop = nil
	l.done = nil
}

func (l *IncrementalLearner) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			l.TrainOnce()
		}
	}
}

// TrainOnce trains on the newest MinBatch samples when enough are buffered.
// The batch is copied under the lock so submitters never wait on training.
func (l *IncrementalLearner) TrainOnce() bool {
	l.mu.Lock()
	if len(l.buffer) < l.config.MinBatch {
		l.mu.Unlock()

		return false
	}

	batch := make([]sample, l.config.MinBatch)
	copy(batch, l.buffer[len(l.buffer)-l.config.MinBatch:])
	l.mu.Unlock()

	features := make([]FeatureWindow, len(batch))
	labels := make([]float64, len(batch))

	for i, s := range batch {
		features[i] = s.window
		labels[i] = s.label
	}

	if err := l.model.TrainOnBatch(features, labels); err != nil {
		l.logger.Error("Incremental model update failed", zap.Error(err))

		return false
	}

	l.mu.Lock()
	l.updates++
	l.mu.Unlock()

	l.logger.Info("Incremental model update completed", zap.Int("batch", len(batch)))

	return true
}
