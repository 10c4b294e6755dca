// internal/config/validate.go
package config

import "fmt"

// MaxFPS bounds driver.fps.
const MaxFPS = 1000

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
//
// Per-variant field ranges (port, pixel_count, ...) are checked when the
// device is constructed, not here.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &FieldError{Field: "config", Reason: "missing"}
	}

	// ------------------------------------------------------------
	// DRIVER
	// ------------------------------------------------------------

	if cfg.Driver.FPS < 0 || cfg.Driver.FPS > MaxFPS {
		return &FieldError{
			Field:  "driver.fps",
			Reason: fmt.Sprintf("must be within 1..%d (0 selects the default), got %d", MaxFPS, cfg.Driver.FPS),
		}
	}

	// ------------------------------------------------------------
	// DEVICES
	// ------------------------------------------------------------

	if len(cfg.Devices) == 0 {
		return &FieldError{Field: "devices", Reason: "at least one device is required"}
	}

	seen := make(map[string]int)

	for i, d := range cfg.Devices {
		if d.ID == "" {
			return &FieldError{
				Field:  fmt.Sprintf("devices[%d].id", i),
				Reason: "required",
			}
		}

		// printable ASCII, no spaces
		for j := 0; j < len(d.ID); j++ {
			if d.ID[j] <= 0x20 || d.ID[j] > 0x7E {
				return &FieldError{
					Device: d.ID,
					Field:  "id",
					Reason: "must contain printable ASCII characters only",
				}
			}
		}

		if prev, exists := seen[d.ID]; exists {
			return &FieldError{
				Device: d.ID,
				Field:  "id",
				Reason: fmt.Sprintf("duplicate of devices[%d]", prev),
			}
		}
		seen[d.ID] = i

		switch d.Type {
		case TypeUDP:
			if d.UDP == nil {
				return &FieldError{Device: d.ID, Field: "udp", Reason: "block required for type udp"}
			}
			if d.Modbus != nil {
				return &FieldError{Device: d.ID, Field: "modbus", Reason: "not allowed for type udp"}
			}
		case TypeModbus:
			if d.Modbus == nil {
				return &FieldError{Device: d.ID, Field: "modbus", Reason: "block required for type modbus"}
			}
			if d.UDP != nil {
				return &FieldError{Device: d.ID, Field: "udp", Reason: "not allowed for type modbus"}
			}
		case "":
			return &FieldError{Device: d.ID, Field: "type", Reason: "required"}
		default:
			return &FieldError{
				Device: d.ID,
				Field:  "type",
				Reason: fmt.Sprintf("unknown device type %q", d.Type),
			}
		}
	}

	return nil
}
