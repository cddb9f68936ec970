package searcher

// config is the shared configuration surface of the search variants. Metrics
// are held as a constructor: every decision owns its collector, so concurrent
// Decide calls on one searcher do not share counter state.
type config struct {
	workers     int
	exploration float64
	drawScore   float64
	cutoff      int
	seed        uint64
	metrics     func() Collector
}

func defaultConfig() config {
	return config{
		workers:     1,
		exploration: DefaultExploration,
		drawScore:   DefaultDrawScore,
		cutoff:      DefaultCutoff,
		seed:        1,
		metrics:     NewDummyCollector,
	}
}

func (c config) params() params {
	return params{
		exploration: c.exploration,
		drawScore:   c.drawScore,
		cutoff:      c.cutoff,
	}
}

type Option func(*config)

// WithWorkers sets the size of the worker pool a decision fans out over.
func WithWorkers(workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithExploration sets the UCB1 exploration constant C.
func WithExploration(exploration float64) Option {
	return func(c *config) {
		if exploration > 0 {
			c.exploration = exploration
		}
	}
}

// WithDrawScore sets the backpropagated value of a drawn game.
func WithDrawScore(score float64) Option {
	return func(c *config) {
		c.drawScore = score
	}
}

// WithCutoff bounds the length of a single playout in moves.
func WithCutoff(moves int) Option {
	return func(c *config) {
		if moves > 0 {
			c.cutoff = moves
		}
	}
}

// WithSeed fixes the base RNG seed; decisions are reproducible given the
// same seed, budget and worker count.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithMetrics enables search metric collection.
func WithMetrics() Option {
	return func(c *config) {
		c.metrics = NewCollector
	}
}
