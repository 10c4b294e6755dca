// internal/device/udp/config.go
package udp

import (
	"fmt"
	"strings"

	"github.com/tamzrod/udp-pixel-driver/internal/config"
)

// Config is the validated, immutable configuration of one UDP device.
// Build it with NewConfig; the zero value is not usable.
type Config struct {
	IPAddress      string
	Port           int
	PixelCount     int
	IncludeIndexes bool

	// Hex strings, decoded per frame.
	DataPrefix  string
	DataPostfix string
}

// NewConfig validates a raw config block.
// Prefix/postfix hex is NOT checked here; malformed hex is a per-frame
// soft failure handled by Encoder.
func NewConfig(id string, raw config.UDPConfig) (Config, error) {
	ip := strings.TrimSpace(raw.IPAddress)
	if ip == "" {
		return Config{}, &config.FieldError{Device: id, Field: "udp.ip_address", Reason: "required"}
	}
	if raw.Port < 1 || raw.Port > 65535 {
		return Config{}, &config.FieldError{
			Device: id,
			Field:  "udp.port",
			Reason: fmt.Sprintf("must be within 1..65535, got %d", raw.Port),
		}
	}
	if raw.PixelCount < 1 {
		return Config{}, &config.FieldError{
			Device: id,
			Field:  "udp.pixel_count",
			Reason: fmt.Sprintf("must be >= 1, got %d", raw.PixelCount),
		}
	}

	return Config{
		IPAddress:      ip,
		Port:           raw.Port,
		PixelCount:     raw.PixelCount,
		IncludeIndexes: raw.IncludeIndexes,
		DataPrefix:     raw.DataPrefix,
		DataPostfix:    raw.DataPostfix,
	}, nil
}
