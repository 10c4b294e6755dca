// internal/source/source.go
package source

import (
	"sync"

	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

// Source supplies the next frame for a device.
// ok=false means nothing to send this tick.
type Source interface {
	Frame(deviceID string, pixelCount int) (pixel.Frame, bool)
}

// Store keeps the latest frame pushed for each device.
// Frames are not consumed: a device keeps receiving its last frame until a
// new one is put.
type Store struct {
	mu     sync.RWMutex
	frames map[string]pixel.Frame
}

func NewStore() *Store {
	return &Store{frames: make(map[string]pixel.Frame)}
}

// Put replaces the latest frame for id. The store keeps its own copy.
func (s *Store) Put(id string, frame pixel.Frame) {
	cp := make(pixel.Frame, len(frame))
	for i, px := range frame {
		cp[i] = append([]byte(nil), px...)
	}

	s.mu.Lock()
	s.frames[id] = cp
	s.mu.Unlock()
}

// Clear drops the stored frame for id.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	delete(s.frames, id)
	s.mu.Unlock()
}

func (s *Store) Frame(deviceID string, _ int) (pixel.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[deviceID]
	return f, ok
}

// First asks each source in order and returns the first frame available.
type First []Source

func (f First) Frame(deviceID string, pixelCount int) (pixel.Frame, bool) {
	for _, s := range f {
		if frame, ok := s.Frame(deviceID, pixelCount); ok {
			return frame, true
		}
	}
	return nil, false
}
