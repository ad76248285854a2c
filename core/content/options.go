package content

// DefaultRowSeparator ends every emitted table row.
const DefaultRowSeparator = `\tnl`

// Options controls interpretation output.
type Options struct {
	// EmitTableHeaders wraps tables in their environment and header block.
	// Disable it to emit bare rows for embedding inside an open table.
	EmitTableHeaders bool
	// RowSeparator is appended after each table row.
	RowSeparator string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		EmitTableHeaders: true,
		RowSeparator:     DefaultRowSeparator,
	}
}

// WithTableHeaders sets whether tables are emitted with their environment.
func WithTableHeaders(emit bool) Option {
	return func(o *Options) {
		o.EmitTableHeaders = emit
	}
}

// WithRowSeparator sets the marker appended after each table row.
func WithRowSeparator(sep string) Option {
	return func(o *Options) {
		o.RowSeparator = sep
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
