// internal/status/constants.go
package status

// Health codes reported per device.
// These values are part of the API and MUST NOT be renumbered.

// ---- HEALTH CODES ----

// HealthUnknown represents a device that has not been activated yet.
const HealthUnknown uint16 = 0

// HealthOK represents an active device whose last operation succeeded.
const HealthOK uint16 = 1

// HealthError represents a failed activation or a failed flush.
const HealthError uint16 = 2

// HealthStale represents an active device that has not been sent a frame
// for StaleAfter.
const HealthStale uint16 = 3

// HealthDisabled represents a deactivated device.
const HealthDisabled uint16 = 4

// ---- LIMITS ----

// MaxSecondsInError saturates the error duration counter.
const MaxSecondsInError = 65535
