package pool

import (
	"context"
	"io"
	"log"
)

// Option configures a Pool.
type Option func(*options)

type options struct {
	ctx         context.Context
	log         *log.Logger
	drainOnStop bool
}

func defaultOptions() options {
	return options{
		ctx: context.Background(),
		log: log.New(io.Discard, "", 0),
	}
}

// WithLogger sets a logger for pool lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithContext sets the context passed to runners submitted with Execute.
// The pool never cancels it.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithDrainOnStop makes Stop run every queued task before the workers exit.
// By default queued tasks are abandoned.
func WithDrainOnStop() Option {
	return func(o *options) {
		o.drainOnStop = true
	}
}
