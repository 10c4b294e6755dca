// internal/device/device.go
package device

import (
	"context"
	"errors"

	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

// Device is one configured output.
//
// A Device is owned by a single control flow: Activate, Deactivate and
// Flush are never called concurrently and implementations do no locking.
type Device interface {
	ID() string
	Name() string
	Type() string

	// Activate opens transport resources. On failure the device stays
	// StateInactive and the returned error says why.
	Activate(ctx context.Context) error

	// Deactivate releases transport resources unconditionally.
	Deactivate() error

	// Flush sends one frame. Only meaningful while StateActive.
	Flush(frame pixel.Frame) error

	// PixelCount is the configured strip length (a capacity hint).
	PixelCount() int

	State() State
}

// State is the lifecycle state of a Device.
type State uint8

const (
	StateInactive State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	default:
		return "inactive"
	}
}

var (
	// ErrResolve means the destination could not be resolved at activation.
	ErrResolve = errors.New("device: destination not resolvable")

	// ErrInactive is returned by Flush on a device that is not active.
	ErrInactive = errors.New("device: not active")
)
