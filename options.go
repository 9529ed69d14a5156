package jsonedit

import "log/slog"

const defaultIndent = "  "

type options struct {
	logger *slog.Logger
	indent string
	format Format
	strict bool
}

// Option configures a Session.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: slog.Default(),
		indent: defaultIndent,
		format: FormatJSON,
	}
}

// WithLogger sets the logger used for session events. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIndent sets the indent written per nesting level when the document is
// saved. For YAML documents only its length counts. An empty indent keeps the
// default of two spaces.
func WithIndent(indent string) Option {
	return func(o *options) {
		if indent != "" {
			o.indent = indent
		}
	}
}

// WithFormat sets the encoding of the text held by the document store.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithStrictPaths makes saves fail with ErrPathMismatch instead of replacing
// existing values whose kind disagrees with the node path.
func WithStrictPaths() Option {
	return func(o *options) { o.strict = true }
}
