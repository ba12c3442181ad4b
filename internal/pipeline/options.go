package pipeline

import "github.com/zerospeech/zrc2021/internal/logging"

// Option configures a run.
type Option func(*options)

type options struct {
	logger *logging.Logger
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}
	return o
}

// WithLogger sets the logger used for run progress. Defaults to a no-op
// logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
