package mailer

import (
	"log/slog"

	"github.com/dmitrymomot/mailcompose/pkg/logger"
)

// Option configures a Composer or a Mailer.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	htmlLayout Layout
	textLayout Layout
}

func defaultOptions() *options {
	return &options{
		logger:     logger.NewNope(),
		htmlLayout: DefaultHTMLLayout,
		textLayout: DefaultTextLayout,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithLogger sets the logger used for compose and send diagnostics.
// Default: a logger discarding all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTMLLayout sets the initial HTML layout of a Composer.
// Default: "layouts/html". Pass NoLayout to disable wrapping.
func WithHTMLLayout(layout Layout) Option {
	return func(o *options) {
		o.htmlLayout = layout
	}
}

// WithTextLayout sets the initial text layout of a Composer.
// Default: "layouts/text". Pass NoLayout to disable wrapping.
func WithTextLayout(layout Layout) Option {
	return func(o *options) {
		o.textLayout = layout
	}
}
