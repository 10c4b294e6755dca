// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
driver:
  fps: 30
  listen: ":9090"
devices:
  - id: desk
    name: Desk strip
    type: udp
    auto_activate: true
    udp:
      ip_address: 192.168.1.40
      port: 21324
      pixel_count: 60
      include_indexes: true
      data_prefix: "02FF"
      data_postfix: "0A"
  - id: panel
    type: modbus
    modbus:
      endpoint: 10.0.0.5:502
      unit_id: 3
      address: 100
      pixel_count: 16
`

func TestLoad_SampleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixeldriver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, 30, cfg.Driver.FPS)
	assert.Equal(t, ":9090", cfg.Driver.Listen)
	require.Len(t, cfg.Devices, 2)

	desk := cfg.Devices[0]
	assert.Equal(t, "desk", desk.ID)
	assert.True(t, desk.AutoActivate)
	require.NotNil(t, desk.UDP)
	assert.Equal(t, "192.168.1.40", desk.UDP.IPAddress)
	assert.Equal(t, 21324, desk.UDP.Port)
	assert.Equal(t, 60, desk.UDP.PixelCount)
	assert.True(t, desk.UDP.IncludeIndexes)
	assert.Equal(t, "02FF", desk.UDP.DataPrefix)
	assert.Equal(t, "0A", desk.UDP.DataPostfix)

	panel := cfg.Devices[1]
	require.NotNil(t, panel.Modbus)
	assert.Equal(t, uint8(3), panel.Modbus.UnitID)
	assert.Equal(t, uint16(100), panel.Modbus.Address)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("devices:\n  - id: a\n    typo: 1\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Devices)
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := &Config{
		Devices: []DeviceConfig{
			udpDevice("d1", "10.0.0.1", 1000),
			{ID: "m1", Type: TypeModbus, Modbus: &ModbusConfig{Endpoint: "x:502", PixelCount: 1}},
		},
	}
	require.NoError(t, Validate(cfg))

	Normalize(cfg)

	assert.Equal(t, DefaultFPS, cfg.Driver.FPS)
	assert.Equal(t, DefaultListen, cfg.Driver.Listen)
	assert.Equal(t, DefaultLogLevel, cfg.Driver.LogLevel)
	assert.Equal(t, "d1", cfg.Devices[0].Name)
	assert.Equal(t, DefaultModbusTimeoutMs, cfg.Devices[1].Modbus.TimeoutMs)
}

func TestLoad_ExampleFileIsValid(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "pixeldriver.yaml"))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	Normalize(cfg)
	assert.Len(t, cfg.Devices, 3)
	assert.Equal(t, "shelf", cfg.Devices[1].Name)
}

const quotedUDP = `
devices:
  - id: desk
    type: udp
    udp:
      ip_address: 192.168.1.40
      port: "21324"
      pixel_count: " 60 "
      data_prefix: 02FF
`

func TestParse_QuotedIntegers(t *testing.T) {
	cfg, err := Parse([]byte(quotedUDP))
	require.NoError(t, err)
	require.Len(t, cfg.Devices, 1)

	u := cfg.Devices[0].UDP
	require.NotNil(t, u)
	assert.Equal(t, 21324, u.Port)
	assert.Equal(t, 60, u.PixelCount)
	assert.Equal(t, "02FF", u.DataPrefix)
}

func TestParse_UDPBlockStillStrict(t *testing.T) {
	_, err := Parse([]byte("devices:\n  - id: a\n    udp:\n      port: 1\n      prot: 2\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("devices:\n  - id: a\n    udp:\n      port: \"twelve\"\n"))
	assert.Error(t, err)
}
