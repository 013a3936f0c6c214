package flstring

// GrowthPolicy selects how the builder sizes its buffer when it runs out of
// room.
type GrowthPolicy uint8

const (
	// GrowExponential doubles through the power-of-two-minus-one rule.
	// The default; amortizes appends to O(1).
	GrowExponential GrowthPolicy = iota
	// GrowLinear grows by a fixed step. Predictable peak memory for
	// workloads with a known final size.
	GrowLinear
)

type options struct {
	initialCapacity int
	policy          GrowthPolicy
	linearStep      int
	logger          *Logger
}

// Option configures builder construction.
type Option func(*options)

// WithInitialCapacity pre-sizes the builder's buffer.
func WithInitialCapacity(capacity int) Option {
	return func(o *options) {
		o.initialCapacity = capacity
	}
}

// WithGrowthPolicy selects the buffer growth policy.
func WithGrowthPolicy(policy GrowthPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithLinearStep sets the increment used by GrowLinear. Implies nothing on
// its own; combine with WithGrowthPolicy(GrowLinear).
func WithLinearStep(step int) Option {
	return func(o *options) {
		o.linearStep = step
	}
}

// WithLogger configures structured logging for builder diagnostics. Pass
// nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		policy:     GrowExponential,
		linearStep: 64,
		logger:     NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
