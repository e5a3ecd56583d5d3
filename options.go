package agree

import "log/slog"

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	propagateError bool
	sameAsLabel    string
	clean          bool
	logger         *slog.Logger
}

func defaultConfig() config {
	return config{
		propagateError: true,
		sameAsLabel:    "same-as",
		clean:          true,
		logger:         slog.Default(),
	}
}

// WithPropagateError controls whether keyphrase mismatches propagate into
// relation scoring as automatic misses (default: true).
func WithPropagateError(v bool) Option {
	return func(c *config) {
		c.propagateError = v
	}
}

// WithSameAsLabel sets the label of the co-reference relation (default:
// "same-as").
func WithSameAsLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.sameAsLabel = label
		}
	}
}

// WithoutCleaning disables the corpus cleaning pass (overlap merging and
// duplicate relation removal) after loading.
func WithoutCleaning() Option {
	return func(c *config) {
		c.clean = false
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
