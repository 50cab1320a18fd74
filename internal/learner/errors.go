package learner

import "fmt"

// ConfigError reports a learner invoked without a required option, such as
// EP without settle.beta or FA/DFA without feedback matrices. It is raised
// before any computation and never caught internally: a misconfigured
// experiment must be visible, not silently degraded.
type ConfigError struct {
	Learner string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("learner: %s: invalid %s: %s", e.Learner, e.Field, e.Reason)
}
