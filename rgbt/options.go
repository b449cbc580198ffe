package rgbt

type options struct {
	scheme Scheme
	debug  bool
}

// An Option configures a Triangulation.
type Option func(*options)

// WithScheme selects the scheme used to position new vertices.
//
// A Scheme keeps per-vertex state, so every Triangulation needs its own
// instance. The default is a fresh ButterflyScheme.
func WithScheme(s Scheme) Option {
	return func(o *options) {
		o.scheme = s
	}
}

// WithDebugChecks makes every public operation validate the whole
// triangulation afterwards, panicking if an invariant is broken.
func WithDebugChecks() Option {
	return func(o *options) {
		o.debug = true
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.scheme == nil {
		o.scheme = NewButterflyScheme()
	}
	return o
}
