// internal/output/builder.go
package output

import (
	"fmt"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/udp-pixel-driver/internal/config"
	"github.com/tamzrod/udp-pixel-driver/internal/device"
	mdevice "github.com/tamzrod/udp-pixel-driver/internal/device/modbus"
	udevice "github.com/tamzrod/udp-pixel-driver/internal/device/udp"
)

// Options are passed through to every device variant.
type Options struct {
	Log *zerolog.Logger

	UDP    udevice.Options
	Modbus mdevice.Options
}

// Build constructs one inactive Device per config entry.
// Assumes config has already passed Validate and Normalize.
// Fails fast on the first invalid device.
//
// The returned closer deactivates every device; it is safe to call after
// the devices have already been deactivated.
func Build(c *cfg.Config, opts Options) ([]device.Device, func() error, error) {
	devices := make([]device.Device, 0, len(c.Devices))

	for _, dc := range c.Devices {
		d, err := buildOne(dc, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("output: build device %q: %w", dc.ID, err)
		}
		devices = append(devices, d)
	}

	closeAll := func() error {
		var last error
		for _, d := range devices {
			if err := d.Deactivate(); err != nil {
				last = err
			}
		}
		return last
	}

	return devices, closeAll, nil
}

func buildOne(dc cfg.DeviceConfig, opts Options) (device.Device, error) {
	switch dc.Type {
	case cfg.TypeUDP:
		o := opts.UDP
		if o.Log == nil {
			o.Log = opts.Log
		}
		d, err := udevice.FromConfig(dc, o)
		if err != nil {
			return nil, err
		}
		return d, nil

	case cfg.TypeModbus:
		o := opts.Modbus
		if o.Log == nil {
			o.Log = opts.Log
		}
		d, err := mdevice.FromConfig(dc, o)
		if err != nil {
			return nil, err
		}
		return d, nil

	default:
		return nil, fmt.Errorf("unsupported device type %q", dc.Type)
	}
}

// Find returns the device with the given id.
func Find(devices []device.Device, id string) (device.Device, bool) {
	for _, d := range devices {
		if d.ID() == id {
			return d, true
		}
	}
	return nil, false
}
