// internal/config/validate_test.go
package config

import (
	"errors"
	"testing"
)

// helper to build a udp device quickly
func udpDevice(id string, ip string, port int) DeviceConfig {
	return DeviceConfig{
		ID:   id,
		Type: TypeUDP,
		UDP: &UDPConfig{
			IPAddress:  ip,
			Port:       port,
			PixelCount: 10,
		},
	}
}

// ---- tests ----

func TestValidate_SingleUDPDevice(t *testing.T) {
	cfg := &Config{
		Devices: []DeviceConfig{
			udpDevice("d1", "127.0.0.1", 21324),
		},
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NoDevices(t *testing.T) {
	if err := Validate(&Config{}); err == nil {
		t.Fatalf("expected error for empty device list, got nil")
	}
}

func TestValidate_NilConfig(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatalf("expected error for nil config, got nil")
	}
}

func TestValidate_DuplicateID(t *testing.T) {
	cfg := &Config{
		Devices: []DeviceConfig{
			udpDevice("d1", "10.0.0.1", 1000),
			udpDevice("d1", "10.0.0.2", 1000),
		},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected duplicate id error, got nil")
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fe.Device != "d1" || fe.Field != "id" {
		t.Fatalf("unexpected field error: %+v", fe)
	}
}

func TestValidate_NonASCIIID(t *testing.T) {
	cfg := &Config{
		Devices: []DeviceConfig{
			udpDevice("dé", "10.0.0.1", 1000),
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ascii error, got nil")
	}
}

func TestValidate_MissingID(t *testing.T) {
	cfg := &Config{
		Devices: []DeviceConfig{
			udpDevice("", "10.0.0.1", 1000),
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing id error, got nil")
	}
}

func TestValidate_UnknownType(t *testing.T) {
	d := udpDevice("d1", "10.0.0.1", 1000)
	d.Type = "e131"

	cfg := &Config{Devices: []DeviceConfig{d}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown type error, got nil")
	}
}

func TestValidate_MissingTypeBlock(t *testing.T) {
	d := udpDevice("d1", "10.0.0.1", 1000)
	d.UDP = nil

	cfg := &Config{Devices: []DeviceConfig{d}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing udp block error, got nil")
	}
}

func TestValidate_MixedTypeBlocks(t *testing.T) {
	d := udpDevice("d1", "10.0.0.1", 1000)
	d.Modbus = &ModbusConfig{Endpoint: "10.0.0.1:502", PixelCount: 4}

	cfg := &Config{Devices: []DeviceConfig{d}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for modbus block on udp device, got nil")
	}
}

func TestValidate_ModbusDevice(t *testing.T) {
	cfg := &Config{
		Devices: []DeviceConfig{
			{
				ID:     "panel",
				Type:   TypeModbus,
				Modbus: &ModbusConfig{Endpoint: "10.0.0.5:502", UnitID: 1, PixelCount: 16},
			},
		},
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FPSOutOfRange(t *testing.T) {
	cfg := &Config{
		Driver:  DriverConfig{FPS: MaxFPS + 1},
		Devices: []DeviceConfig{udpDevice("d1", "10.0.0.1", 1000)},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected fps error, got nil")
	}
}

func TestValidate_DoesNotCheckHex(t *testing.T) {
	d := udpDevice("d1", "10.0.0.1", 1000)
	d.UDP.DataPrefix = "ZZ"

	cfg := &Config{Devices: []DeviceConfig{d}}

	// malformed hex is a per-frame soft failure
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
