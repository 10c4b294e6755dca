// internal/config/config.go
package config

type Config struct {
	Driver  DriverConfig   `yaml:"driver"`
	Devices []DeviceConfig `yaml:"devices"`
}

// ---- DRIVER ----

type DriverConfig struct {
	FPS       int    `yaml:"fps"`
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

// ---- DEVICE ----

// Device types understood by the builder.
const (
	TypeUDP    = "udp"
	TypeModbus = "modbus"
)

type DeviceConfig struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	AutoActivate bool   `yaml:"auto_activate"`

	// Exactly one of these is used depending on Type.
	UDP    *UDPConfig    `yaml:"udp"`
	Modbus *ModbusConfig `yaml:"modbus"`
}

// ---- UDP ----

type UDPConfig struct {
	IPAddress      string `yaml:"ip_address"`
	Port           int    `yaml:"port"`
	PixelCount     int    `yaml:"pixel_count"`
	IncludeIndexes bool   `yaml:"include_indexes"`

	// Hex encoded; checked per frame, not here.
	DataPrefix  string `yaml:"data_prefix"`
	DataPostfix string `yaml:"data_postfix"`
}

// ---- MODBUS ----

type ModbusConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	Address    uint16 `yaml:"address"`
	PixelCount int    `yaml:"pixel_count"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}
