// internal/device/modbus/client.go
package modbus

import (
	"errors"
	"time"

	"github.com/goburrow/modbus"
)

// EndpointClient is a single Modbus TCP connection to one endpoint.
// It is owned by one Device; no locking.
type EndpointClient struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type ClientConfig struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// NewEndpointClient connects to cfg.Endpoint.
func NewEndpointClient(cfg ClientConfig) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &EndpointClient{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *EndpointClient) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// WriteRegisters writes big-endian register payload starting at addr.
// len(payload) must be even.
func (c *EndpointClient) WriteRegisters(addr uint16, payload []byte) error {
	qty := uint16(len(payload) / 2)
	_, err := c.client.WriteMultipleRegisters(addr, qty, payload)
	return err
}
