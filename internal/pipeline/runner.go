// internal/pipeline/runner.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/udp-pixel-driver/internal/device"
	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
	"github.com/tamzrod/udp-pixel-driver/internal/source"
	"github.com/tamzrod/udp-pixel-driver/internal/status"
)

var (
	// ErrUnknownDevice is returned for commands naming a device the runner
	// does not own.
	ErrUnknownDevice = errors.New("pipeline: unknown device")

	// ErrStopped is returned for commands sent after Run has exited.
	ErrStopped = errors.New("pipeline: runner stopped")

	// ErrPanic wraps a panic recovered from a device call.
	ErrPanic = errors.New("pipeline: device panicked")
)

// Config controls one Runner.
type Config struct {
	FPS int

	// AutoActivate lists device ids activated when Run starts.
	AutoActivate []string

	Log *zerolog.Logger
}

type op uint8

const (
	opActivate op = iota
	opDeactivate
)

type command struct {
	op    op
	id    string
	reply chan error
}

// Runner is the single owner of every device.
// Activate, Deactivate and Flush are only ever called from Run.
type Runner struct {
	cfg     Config
	log     zerolog.Logger
	devices []device.Device
	byID    map[string]device.Device
	src     source.Source
	board   *status.Board

	cmds chan command
	done chan struct{}

	// failing tracks devices whose last flush failed; only the first
	// failure of a streak is logged.
	failing map[string]bool
}

func New(cfg Config, devices []device.Device, src source.Source, board *status.Board) *Runner {
	lg := zerolog.Nop()
	if cfg.Log != nil {
		lg = *cfg.Log
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}

	r := &Runner{
		cfg:     cfg,
		log:     lg,
		devices: devices,
		byID:    make(map[string]device.Device, len(devices)),
		src:     src,
		board:   board,
		cmds:    make(chan command),
		done:    make(chan struct{}),
		failing: make(map[string]bool),
	}

	for _, d := range devices {
		r.byID[d.ID()] = d
		board.Register(d.ID(), d.Name(), d.Type())
	}
	return r
}

// ------------------------------------------------------------
// Run
// ------------------------------------------------------------

// Run drives the devices until ctx is cancelled, then deactivates all of
// them. One goroutine. No overlap between ticks.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	defer r.shutdown()

	for _, id := range r.cfg.AutoActivate {
		if err := r.activate(ctx, id); err != nil {
			r.log.Warn().Err(err).Str("device", id).Msg("auto activation failed")
		}
	}

	frameTicker := time.NewTicker(time.Second / time.Duration(r.cfg.FPS))
	defer frameTicker.Stop()

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-r.cmds:
			cmd.reply <- r.handle(ctx, cmd)

		case <-frameTicker.C:
			r.tick()

		case <-secTicker.C:
			r.board.Tick()
		}
	}
}

// Activate asks the runner to activate a device and waits for the result.
func (r *Runner) Activate(ctx context.Context, id string) error {
	return r.send(ctx, command{op: opActivate, id: id})
}

// Deactivate asks the runner to deactivate a device and waits for the result.
func (r *Runner) Deactivate(ctx context.Context, id string) error {
	return r.send(ctx, command{op: opDeactivate, id: id})
}

func (r *Runner) send(ctx context.Context, cmd command) error {
	cmd.reply = make(chan error, 1)

	select {
	case r.cmds <- cmd:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// the runner always replies once it has taken the command
	return <-cmd.reply
}

// ---- owner-goroutine internals ----

func (r *Runner) handle(ctx context.Context, cmd command) error {
	switch cmd.op {
	case opActivate:
		return r.activate(ctx, cmd.id)
	case opDeactivate:
		return r.deactivate(cmd.id)
	default:
		return fmt.Errorf("pipeline: unknown op %d", cmd.op)
	}
}

func (r *Runner) activate(ctx context.Context, id string) error {
	d, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}

	err := safely(func() error { return d.Activate(ctx) })
	r.board.Activated(id, err)
	if err != nil {
		return err
	}

	delete(r.failing, id)
	r.log.Info().Str("device", id).Msg("device activated")
	return nil
}

func (r *Runner) deactivate(id string) error {
	d, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}

	err := safely(d.Deactivate)
	r.board.Deactivated(id)
	r.log.Info().Str("device", id).Msg("device deactivated")
	return err
}

// tick sends one frame to every active device.
// A failing device never stops the others.
func (r *Runner) tick() {
	for _, d := range r.devices {
		if d.State() != device.StateActive {
			continue
		}

		frame, ok := r.src.Frame(d.ID(), d.PixelCount())
		if !ok {
			continue
		}

		r.flush(d, frame)
	}
}

func (r *Runner) flush(d device.Device, frame pixel.Frame) {
	id := d.ID()
	err := safely(func() error { return d.Flush(frame) })
	r.board.Flushed(id, err)

	if err != nil {
		if !r.failing[id] {
			r.log.Warn().Err(err).Str("device", id).Msg("flush failed")
		}
		r.failing[id] = true
		return
	}

	if r.failing[id] {
		r.log.Info().Str("device", id).Msg("flush recovered")
		delete(r.failing, id)
	}
}

func (r *Runner) shutdown() {
	for _, d := range r.devices {
		if err := safely(d.Deactivate); err != nil {
			r.log.Warn().Err(err).Str("device", d.ID()).Msg("deactivate on shutdown failed")
		}
		r.board.Deactivated(d.ID())
	}
}

// safely runs fn and converts a panic into ErrPanic.
func safely(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()
	return fn()
}
