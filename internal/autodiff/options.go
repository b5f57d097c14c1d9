package autodiff

import (
	"github.com/born-ml/ndiff/internal/tensor"
	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
)

// Option configures Compile and Record.
type Option func(*config)

type config struct {
	logger  logr.Logger
	backend tensor.Backend
	seed    uint64
	samples []float64
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		logger: klog.Background(),
		seed:   1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.backend == nil {
		b, err := tensor.BackendFor(tensor.CPU)
		if err != nil {
			return nil, err
		}
		cfg.backend = b
	}
	return cfg, nil
}

// WithLogger sets the logger used for compile diagnostics.
// Defaults to klog.
func WithLogger(logger logr.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithBackend sets the array backend used to compute placeholder values
// while tracing. Defaults to the backend registered for the CPU.
func WithBackend(b tensor.Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithSeed seeds the generator that draws placeholder input values in [0, 1).
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithSamples sets the placeholder input values explicitly, one per input.
func WithSamples(samples ...float64) Option {
	return func(c *config) {
		c.samples = append([]float64(nil), samples...)
	}
}
