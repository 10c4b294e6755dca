// internal/status/encode.go
package status

import "encoding/json"

// HealthName maps a health code to its API name.
// Unknown codes map to "unknown".
func HealthName(code uint16) string {
	switch code {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthStale:
		return "stale"
	case HealthDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// MarshalJSON adds the health name next to the numeric code.
// No IO. No side effects.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		HealthName string `json:"health_name"`
	}{
		plain:      plain(s),
		HealthName: HealthName(s.Health),
	})
}
