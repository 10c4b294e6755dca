// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultFPS             = 60
	DefaultListen          = ":8080"
	DefaultLogLevel        = "info"
	DefaultModbusTimeoutMs = 1000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Driver.FPS == 0 {
		cfg.Driver.FPS = DefaultFPS
	}
	if cfg.Driver.Listen == "" {
		cfg.Driver.Listen = DefaultListen
	}
	if cfg.Driver.LogLevel == "" {
		cfg.Driver.LogLevel = DefaultLogLevel
	}

	for i := range cfg.Devices {
		d := &cfg.Devices[i]

		if d.Name == "" {
			d.Name = d.ID
		}

		if d.Modbus != nil && d.Modbus.TimeoutMs <= 0 {
			d.Modbus.TimeoutMs = DefaultModbusTimeoutMs
		}

		// UDP blocks are left untouched: hex prefix/postfix stay verbatim
		// and are decoded per frame.
	}
}
