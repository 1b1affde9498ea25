package kernel

// config holds the compile-time-style configuration resolved at New
// time. Values mirror the static configuration set described for the
// system (max tasks, max queues, max buffers, max semaphores, tick rate).
type config struct {
	maxTasks       int
	maxTimers      int
	maxSems        int
	maxQueues      int
	maxBuffers     int
	tickRateHz     int
	metricsEnabled bool
}

func defaultConfig() config {
	return config{
		maxTasks:       64,
		maxTimers:      64,
		maxSems:        128,
		maxQueues:      32,
		maxBuffers:     2048,
		tickRateHz:     100,
		metricsEnabled: false,
	}
}

// Option configures a Kernel at construction time.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithMaxTasks overrides the size of the task control block pool.
func WithMaxTasks(n int) Option {
	return optionFunc(func(c *config) { c.maxTasks = n })
}

// WithMaxTimers overrides the size of the timer control block pool.
func WithMaxTimers(n int) Option {
	return optionFunc(func(c *config) { c.maxTimers = n })
}

// WithMaxSemaphores overrides the size of the semaphore control block pool.
func WithMaxSemaphores(n int) Option {
	return optionFunc(func(c *config) { c.maxSems = n })
}

// WithMaxQueues overrides the size of the message-queue control block pool.
func WithMaxQueues(n int) Option {
	return optionFunc(func(c *config) { c.maxQueues = n })
}

// WithMaxBuffers overrides the size of the kernel-wide message-buffer arena
// (in 16-byte slots), shared by every queue.
func WithMaxBuffers(n int) Option {
	return optionFunc(func(c *config) { c.maxBuffers = n })
}

// WithTickRateHz sets the nominal hardware tick frequency. It is the scale
// TimerEvWhen/TimerWkWhen use to convert wall-clock seconds to ticks;
// relative delays and timeouts are always given in raw ticks.
func WithTickRateHz(hz int) Option {
	return optionFunc(func(c *config) { c.tickRateHz = hz })
}

// WithMetrics enables runtime counters (context switches, tick count,
// per-subsystem call counts) retrievable via Kernel.Metrics().
func WithMetrics(enabled bool) Option {
	return optionFunc(func(c *config) { c.metricsEnabled = enabled })
}

func resolveOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&cfg)
	}
	return cfg
}
