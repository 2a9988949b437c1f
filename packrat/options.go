package packrat

import "github.com/sirupsen/logrus"

// Option configures an Engine at construction time, mirroring the
// teacher's functional-option shape for its vm.Option/Debug/Recover
// settings.
type Option func(*Engine)

// WithLogger makes the Engine emit a debug-level trace line per Apply/
// ApplyPlain call (rule, position, match result), replacing the
// teacher's -debug flag and snapshot dump with structured logging.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRecover makes the Engine recover a panic raised inside a rule
// body (typically from a grammar's own meta-action code) and report it
// as an ordinary match failure instead of unwinding the parse, and logs
// it if a logger was also supplied.
func WithRecover() Option {
	return func(e *Engine) { e.recover = true }
}
