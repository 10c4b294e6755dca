// internal/status/snapshot.go
package status

import "time"

// Snapshot is the externally visible state of one device.
// It contains no logic; the runner is the only writer.
type Snapshot struct {
	DeviceID string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`

	Health uint16 `json:"health"`
	Active bool   `json:"active"`

	FramesSent     uint64 `json:"frames_sent"`
	SendErrors     uint64 `json:"send_errors"`
	LastError      string `json:"last_error,omitempty"`
	SecondsInError uint16 `json:"seconds_in_error"`

	UpdatedAt time.Time `json:"updated_at"`
}
