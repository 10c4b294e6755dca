// internal/device/modbus/device.go
package modbus

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/udp-pixel-driver/internal/config"
	"github.com/tamzrod/udp-pixel-driver/internal/device"
	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

// MaxRegistersPerWrite is the FC16 quantity limit (PDU bound).
const MaxRegistersPerWrite = 123

// AddressSpace is the number of addressable holding registers.
const AddressSpace = 65536

// registerWriter is the exact contract the device uses.
type registerWriter interface {
	WriteRegisters(addr uint16, payload []byte) error
	Close() error
}

// DialFunc opens a register writer. One attempt per call.
type DialFunc func(cfg ClientConfig) (registerWriter, error)

func dialTCP(cfg ClientConfig) (registerWriter, error) {
	return NewEndpointClient(cfg)
}

// Config is the validated configuration of one Modbus device.
type Config struct {
	Endpoint   string
	UnitID     uint8
	Address    uint16
	PixelCount int
	Timeout    time.Duration
}

// NewConfig validates a raw config block.
func NewConfig(id string, raw config.ModbusConfig) (Config, error) {
	if raw.Endpoint == "" {
		return Config{}, &config.FieldError{Device: id, Field: "modbus.endpoint", Reason: "required"}
	}
	if raw.UnitID > 247 {
		return Config{}, &config.FieldError{
			Device: id,
			Field:  "modbus.unit_id",
			Reason: fmt.Sprintf("must be within 0..247, got %d", raw.UnitID),
		}
	}
	if raw.PixelCount < 1 {
		return Config{}, &config.FieldError{
			Device: id,
			Field:  "modbus.pixel_count",
			Reason: fmt.Sprintf("must be >= 1, got %d", raw.PixelCount),
		}
	}

	// RGB frames of pixel_count pixels must fit above address
	if end := int(raw.Address) + (raw.PixelCount*3+1)/2; end > AddressSpace {
		return Config{}, &config.FieldError{
			Device: id,
			Field:  "modbus.address",
			Reason: fmt.Sprintf("%d pixels from address %d end at register %d, past 65535", raw.PixelCount, raw.Address, end-1),
		}
	}

	timeout := time.Duration(raw.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultModbusTimeoutMs) * time.Millisecond
	}

	return Config{
		Endpoint:   raw.Endpoint,
		UnitID:     raw.UnitID,
		Address:    raw.Address,
		PixelCount: raw.PixelCount,
		Timeout:    timeout,
	}, nil
}

// Device mirrors each frame into a block of holding registers.
// Channel bytes are packed two per register, big-endian; an odd tail is
// padded with zero.
type Device struct {
	id   string
	name string
	cfg  Config
	log  zerolog.Logger
	dial DialFunc

	cli   registerWriter
	state device.State
}

var _ device.Device = (*Device)(nil)

// Options carries the collaborators of a Device.
type Options struct {
	Dial DialFunc
	Log  *zerolog.Logger
}

func New(id, name string, cfg Config, opts Options) *Device {
	if name == "" {
		name = id
	}
	lg := zerolog.Nop()
	if opts.Log != nil {
		lg = *opts.Log
	}

	d := &Device{
		id:    id,
		name:  name,
		cfg:   cfg,
		log:   lg.With().Str("device", id).Logger(),
		dial:  opts.Dial,
		state: device.StateInactive,
	}
	if d.dial == nil {
		d.dial = dialTCP
	}
	return d
}

// FromConfig validates a config entry and builds the device.
func FromConfig(dc config.DeviceConfig, opts Options) (*Device, error) {
	if dc.Modbus == nil {
		return nil, &config.FieldError{Device: dc.ID, Field: "modbus", Reason: "block required"}
	}
	cfg, err := NewConfig(dc.ID, *dc.Modbus)
	if err != nil {
		return nil, err
	}
	return New(dc.ID, dc.Name, cfg, opts), nil
}

func (d *Device) ID() string { return d.id }
func (d *Device) Name() string { return d.name }
func (d *Device) Type() string { return config.TypeModbus }
func (d *Device) PixelCount() int { return d.cfg.PixelCount }
func (d *Device) State() device.State { return d.state }

// Activate connects to the endpoint. A failed connect leaves the device
// inactive; the error wraps device.ErrResolve when the endpoint host cannot
// be resolved.
func (d *Device) Activate(ctx context.Context) error {
	if d.state == device.StateActive {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cli, err := d.dial(ClientConfig{
		Endpoint: d.cfg.Endpoint,
		UnitID:   d.cfg.UnitID,
		Timeout:  d.cfg.Timeout,
	})
	if err != nil {
		d.log.Warn().
			Err(err).
			Str("name", d.name).
			Str("endpoint", d.cfg.Endpoint).
			Msg("cannot connect to modbus endpoint, aborting activation")
		if isResolveError(err) {
			return fmt.Errorf("modbus device %s: %w: %w", d.id, device.ErrResolve, err)
		}
		return fmt.Errorf("modbus device %s: connect: %w", d.id, err)
	}

	d.cli = cli
	d.state = device.StateActive
	d.log.Info().Str("endpoint", d.cfg.Endpoint).Msg("modbus device active")
	return nil
}

// Deactivate closes the connection unconditionally.
func (d *Device) Deactivate() error {
	var err error
	if d.cli != nil {
		err = d.cli.Close()
	}
	d.cli = nil
	d.state = device.StateInactive

	if err != nil {
		return fmt.Errorf("modbus device %s: close: %w", d.id, err)
	}
	return nil
}

// Flush writes the frame starting at the configured address, in chunks of
// at most MaxRegistersPerWrite registers. A frame that would run past the
// last register is rejected before anything is written.
func (d *Device) Flush(frame pixel.Frame) error {
	if d.state != device.StateActive || d.cli == nil {
		return device.ErrInactive
	}

	payload := packFrame(frame)
	addr := int(d.cfg.Address)

	if end := addr + len(payload)/2; end > AddressSpace {
		return fmt.Errorf("modbus device %s: frame of %d registers from addr=%d runs past register 65535", d.id, len(payload)/2, addr)
	}

	for len(payload) > 0 {
		n := len(payload)
		if n > MaxRegistersPerWrite*2 {
			n = MaxRegistersPerWrite * 2
		}

		if err := d.cli.WriteRegisters(uint16(addr), payload[:n]); err != nil {
			return fmt.Errorf("modbus device %s: write addr=%d qty=%d: %w", d.id, addr, n/2, err)
		}

		addr += n / 2
		payload = payload[n:]
	}

	return nil
}

// packFrame flattens channel bytes into register order (BIG-ENDIAN pairs).
func packFrame(frame pixel.Frame) []byte {
	size := 0
	for _, px := range frame {
		size += len(px)
	}

	out := make([]byte, 0, size+1)
	for _, px := range frame {
		out = append(out, px...)
	}
	if len(out)%2 != 0 {
		out = append(out, 0)
	}
	return out
}
