// internal/status/board.go
package status

import (
	"sort"
	"sync"
	"time"
)

// StaleAfter is how long an OK device may go without a frame before Tick
// reports it stale.
const StaleAfter = 5 * time.Second

// Board holds the latest Snapshot per device.
// Safe for concurrent use; the runner writes, the API reads.
type Board struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
	now   func() time.Time
}

func NewBoard() *Board {
	return &Board{
		snaps: make(map[string]Snapshot),
		now:   time.Now,
	}
}

// Set replaces the snapshot for s.DeviceID.
func (b *Board) Set(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snaps[s.DeviceID] = s
}

func (b *Board) Get(id string) (Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.snaps[id]
	return s, ok
}

// List returns all snapshots sorted by device id.
func (b *Board) List() []Snapshot {
	b.mu.RLock()
	out := make([]Snapshot, 0, len(b.snaps))
	for _, s := range b.snaps {
		out = append(out, s)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}

// ---- transitions ----

// Register adds a device in HealthUnknown. Existing entries are kept.
func (b *Board) Register(id, name, typ string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.snaps[id]; ok {
		return
	}
	b.snaps[id] = Snapshot{
		DeviceID:  id,
		Name:      name,
		Type:      typ,
		Health:    HealthUnknown,
		UpdatedAt: b.now(),
	}
}

// Activated records the outcome of an activation attempt.
func (b *Board) Activated(id string, err error) {
	b.update(id, func(s *Snapshot) {
		if err != nil {
			s.Active = false
			s.setError(err)
			return
		}
		s.Active = true
		s.setOK()
	})
}

// Flushed records the outcome of one frame send.
func (b *Board) Flushed(id string, err error) {
	b.update(id, func(s *Snapshot) {
		if err != nil {
			s.SendErrors++
			s.setError(err)
			return
		}
		s.FramesSent++
		s.setOK()
	})
}

// Deactivated marks the device disabled. Counters are kept.
func (b *Board) Deactivated(id string) {
	b.update(id, func(s *Snapshot) {
		s.Active = false
		s.Health = HealthDisabled
		s.SecondsInError = 0
	})
}

// Tick runs once per second: it counts seconds in error and marks quiet
// devices stale.
func (b *Board) Tick() {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, s := range b.snaps {
		switch {
		case s.Health == HealthError:
			if s.SecondsInError < MaxSecondsInError {
				s.SecondsInError++
			}
		case s.Health == HealthOK && s.Active && now.Sub(s.UpdatedAt) > StaleAfter:
			s.Health = HealthStale
		default:
			continue
		}
		b.snaps[id] = s
	}
}

func (b *Board) update(id string, fn func(s *Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.snaps[id]
	if !ok {
		s = Snapshot{DeviceID: id}
	}
	fn(&s)
	s.UpdatedAt = b.now()
	b.snaps[id] = s
}

func (s *Snapshot) setOK() {
	s.Health = HealthOK
	s.LastError = ""
	s.SecondsInError = 0
}

func (s *Snapshot) setError(err error) {
	s.Health = HealthError
	s.LastError = err.Error()
}
