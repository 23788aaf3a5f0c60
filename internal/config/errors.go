package config

import "fmt"

// ConfigError reports an unreadable, unparsable or structurally invalid
// configuration file, or a malformed credential value.
type ConfigError struct {
	// Path is the configuration file, when known.
	Path string

	// Field names the offending key for credential errors (e.g.
	// "telegram.chat_id"); empty for file-level failures.
	Field string

	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("config %s: %s: %s", e.Path, e.Field, msg)
	case e.Path != "":
		return fmt.Sprintf("config %s: %s", e.Path, msg)
	case e.Field != "":
		return fmt.Sprintf("config: %s: %s", e.Field, msg)
	default:
		return fmt.Sprintf("config: %s", msg)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError reports a schema violation on one entity record.
type ValidationError struct {
	// Kind is the entity kind the record was validated as.
	Kind string

	// Index is the record's position in its input sequence.
	Index int

	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d: field %q: %s", e.Kind, e.Index, e.Field, e.Reason)
}
