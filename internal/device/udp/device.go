// internal/device/udp/device.go
package udp

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"github.com/tamzrod/udp-pixel-driver/internal/config"
	"github.com/tamzrod/udp-pixel-driver/internal/device"
	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

// Options carries the collaborators of a Device. Zero values select the
// system resolver, an ephemeral UDP socket and a no-op logger.
type Options struct {
	Resolver Resolver
	Listen   ListenFunc
	Log      *zerolog.Logger
}

// Device sends each frame as one UDP datagram to a fixed destination.
type Device struct {
	id   string
	name string
	cfg  Config

	log      zerolog.Logger
	enc      Encoder
	resolver Resolver
	listen   ListenFunc

	// set only while active
	tx    *Transmitter
	state device.State
}

var _ device.Device = (*Device)(nil)

// New creates an inactive device. cfg must come from NewConfig.
func New(id, name string, cfg Config, opts Options) *Device {
	if name == "" {
		name = id
	}

	lg := zerolog.Nop()
	if opts.Log != nil {
		lg = *opts.Log
	}
	lg = lg.With().Str("device", id).Logger()

	d := &Device{
		id:       id,
		name:     name,
		cfg:      cfg,
		log:      lg,
		enc:      Encoder{Log: lg},
		resolver: opts.Resolver,
		listen:   opts.Listen,
		state:    device.StateInactive,
	}
	if d.resolver == nil {
		d.resolver = NetResolver{}
	}
	if d.listen == nil {
		d.listen = ListenUDP
	}
	return d
}

// FromConfig validates a config entry and builds the device.
func FromConfig(dc config.DeviceConfig, opts Options) (*Device, error) {
	if dc.UDP == nil {
		return nil, &config.FieldError{Device: dc.ID, Field: "udp", Reason: "block required"}
	}
	cfg, err := NewConfig(dc.ID, *dc.UDP)
	if err != nil {
		return nil, err
	}
	return New(dc.ID, dc.Name, cfg, opts), nil
}

func (d *Device) ID() string { return d.id }
func (d *Device) Name() string { return d.name }
func (d *Device) Type() string { return config.TypeUDP }
func (d *Device) PixelCount() int { return d.cfg.PixelCount }
func (d *Device) State() device.State { return d.state }
func (d *Device) Config() Config { return d.cfg }

// Destination is the resolved address while active, nil otherwise.
func (d *Device) Destination() *net.UDPAddr { return d.tx.Destination() }

// Activate opens the socket and resolves the destination once.
// If resolution fails the device stays inactive, a warning is logged and
// the returned error wraps device.ErrResolve. Activating an active device
// is a no-op.
func (d *Device) Activate(ctx context.Context) error {
	if d.state == device.StateActive {
		return nil
	}

	conn, err := d.listen()
	if err != nil {
		return fmt.Errorf("udp device %s: open socket: %w", d.id, err)
	}

	ip, err := d.resolver.Resolve(ctx, d.cfg.IPAddress)
	if err != nil {
		d.log.Warn().
			Err(err).
			Str("name", d.name).
			Str("ip_address", d.cfg.IPAddress).
			Msg("cannot resolve destination, aborting activation; check the ip/hostname and that the device is online")
		_ = conn.Close()
		return fmt.Errorf("udp device %s: %w: %q: %w", d.id, device.ErrResolve, d.cfg.IPAddress, err)
	}

	d.tx = NewTransmitter(conn, ip, d.cfg.Port)
	d.state = device.StateActive

	d.log.Info().
		Str("destination", d.tx.Destination().String()).
		Msg("udp device active")
	return nil
}

// Deactivate closes the socket and forgets the destination.
func (d *Device) Deactivate() error {
	err := d.tx.Close()
	d.tx = nil
	d.state = device.StateInactive

	if err != nil {
		return fmt.Errorf("udp device %s: close socket: %w", d.id, err)
	}
	return nil
}

// Flush encodes frame and sends it as one datagram.
// Transport errors are returned as-is for the caller to log; nothing here
// retries or waits.
func (d *Device) Flush(frame pixel.Frame) error {
	if d.state != device.StateActive || d.tx == nil {
		return device.ErrInactive
	}

	if err := d.tx.Send(d.enc.Encode(frame, d.cfg)); err != nil {
		return fmt.Errorf("udp device %s: send: %w", d.id, err)
	}
	return nil
}
