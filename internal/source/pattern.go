// internal/source/pattern.go
package source

import (
	"sync"

	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

// Solid fills every pixel with one colour.
type Solid struct {
	Color [3]byte
}

func (s Solid) Frame(_ string, pixelCount int) (pixel.Frame, bool) {
	if pixelCount <= 0 {
		return nil, false
	}
	return pixel.Solid(pixelCount, s.Color), true
}

// Chase lights Width consecutive pixels and moves them one pixel forward on
// every call, wrapping at the end of the strip. Position is tracked per
// device.
type Chase struct {
	Color [3]byte
	Width int

	mu  sync.Mutex
	pos map[string]int
}

func (c *Chase) Frame(deviceID string, pixelCount int) (pixel.Frame, bool) {
	if pixelCount <= 0 {
		return nil, false
	}

	width := c.Width
	if width < 1 {
		width = 1
	}

	c.mu.Lock()
	if c.pos == nil {
		c.pos = make(map[string]int)
	}
	head := c.pos[deviceID] % pixelCount
	c.pos[deviceID] = (head + 1) % pixelCount
	c.mu.Unlock()

	frame := pixel.Solid(pixelCount, [3]byte{})
	for i := 0; i < width && i < pixelCount; i++ {
		copy(frame[(head+i)%pixelCount], c.Color[:])
	}
	return frame, true
}
