package types

import "fmt"

// InputError is fatal: the scan root or another required input is unusable.
// It aborts the invocation before any scanning and maps to exit code 2.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ConfigError is fatal: a rule or profile definition is malformed. It is
// raised at load time, never during matching, and maps to exit code 2.
type ConfigError struct {
	Rule string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: rule %q: %v", e.Rule, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
