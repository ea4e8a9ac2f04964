package cluster

// config collects Fit parameters.
type config struct {
	k         int
	seed      int64
	restarts  int
	maxIters  int
	tolerance float64
}

// Option applies a configuration option to Fit.
type Option func(*config)

// WithK sets the number of clusters.
func WithK(k int) Option {
	return func(c *config) {
		if k > 0 {
			c.k = k
		}
	}
}

// WithSeed fixes the random seed so training is reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithRestarts sets how many seeded runs compete on inertia.
func WithRestarts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.restarts = n
		}
	}
}

// WithMaxIterations bounds the Lloyd iteration count per run.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIters = n
		}
	}
}

// WithTolerance sets the centroid movement threshold for convergence.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}
