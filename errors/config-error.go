package errors

// ConfigError reports an invalid configuration at request-issuance time,
// before any script side effects occur.
type ConfigError struct {
	Message string
	Type    string
}

func NewConfigError(reason string) *ConfigError {
	return &ConfigError{
		Message: reason,
		Type:    "ConfigError",
	}
}

func (e *ConfigError) Err() error {
	return e
}

func (e *ConfigError) Error() string {
	return e.Message
}
