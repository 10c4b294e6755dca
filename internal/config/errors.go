// internal/config/errors.go
package config

import "fmt"

// FieldError reports one invalid configuration field.
// Device is empty for driver-level fields.
type FieldError struct {
	Device string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("config: device %q: %s: %s", e.Device, e.Field, e.Reason)
}
