package preview

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailcompose/pkg/logger"
	"github.com/dmitrymomot/mailcompose/pkg/mailer/eml"
)

const defaultCheckTimeout = 5 * time.Second

// CheckFunc reports whether a dependency of the preview server is ready.
type CheckFunc func(ctx context.Context) error

// Option configures a Handler.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	checks       map[string]CheckFunc
	emlOpts      []eml.Option
	from         string
	checkTimeout time.Duration
	stackSize    int
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:       logger.NewNope(),
		checks:       make(map[string]CheckFunc),
		checkTimeout: defaultCheckTimeout,
		stackSize:    defaultStackSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithLogger sets the logger for request and error logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCheck registers a named readiness check served on /health/ready.
func WithCheck(name string, fn CheckFunc) Option {
	return func(o *options) {
		if name != "" && fn != nil {
			o.checks[name] = fn
		}
	}
}

// WithCheckTimeout limits the total time readiness checks may take.
func WithCheckTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.checkTimeout = d
		}
	}
}

// WithFrom sets the sender address of previewed messages.
func WithFrom(from string) Option {
	return func(o *options) {
		o.from = from
	}
}

// WithEMLOptions configures the documents served on /eml.
func WithEMLOptions(opts ...eml.Option) Option {
	return func(o *options) {
		o.emlOpts = append(o.emlOpts, opts...)
	}
}

// WithStackSize sets the maximum stack trace size logged for panics.
// Zero disables stack traces.
func WithStackSize(size int) Option {
	return func(o *options) {
		if size >= 0 {
			o.stackSize = size
		}
	}
}
