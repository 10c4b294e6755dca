// internal/source/source_test.go
package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

func lit(f pixel.Frame) []int {
	var out []int
	for i, px := range f {
		if px[0] != 0 || px[1] != 0 || px[2] != 0 {
			out = append(out, i)
		}
	}
	return out
}

func TestStore_ReturnsLatest(t *testing.T) {
	s := NewStore()

	_, ok := s.Frame("desk", 3)
	assert.False(t, ok)

	s.Put("desk", pixel.RGB([3]byte{1, 2, 3}))
	s.Put("desk", pixel.RGB([3]byte{4, 5, 6}))

	f, ok := s.Frame("desk", 3)
	require.True(t, ok)
	assert.Equal(t, []byte{4, 5, 6}, f[0])

	// not consumed
	_, ok = s.Frame("desk", 3)
	assert.True(t, ok)

	s.Clear("desk")
	_, ok = s.Frame("desk", 3)
	assert.False(t, ok)
}

func TestStore_CopiesInput(t *testing.T) {
	s := NewStore()
	in := pixel.RGB([3]byte{1, 2, 3})
	s.Put("desk", in)

	in[0][0] = 99

	f, _ := s.Frame("desk", 1)
	assert.Equal(t, byte(1), f[0][0])
}

func TestSolid(t *testing.T) {
	f, ok := Solid{Color: [3]byte{9, 8, 7}}.Frame("desk", 4)
	require.True(t, ok)
	require.Len(t, f, 4)
	for _, px := range f {
		assert.Equal(t, []byte{9, 8, 7}, px)
	}

	_, ok = Solid{}.Frame("desk", 0)
	assert.False(t, ok)
}

func TestChase_Advances(t *testing.T) {
	c := &Chase{Color: [3]byte{255, 0, 0}, Width: 2}

	f, ok := c.Frame("desk", 5)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, lit(f))

	f, _ = c.Frame("desk", 5)
	assert.Equal(t, []int{1, 2}, lit(f))

	// independent per device
	f, _ = c.Frame("panel", 5)
	assert.Equal(t, []int{0, 1}, lit(f))
}

func TestChase_Wraps(t *testing.T) {
	c := &Chase{Color: [3]byte{0, 0, 255}, Width: 2}

	var f pixel.Frame
	for i := 0; i < 3; i++ {
		f, _ = c.Frame("desk", 3)
	}
	// head at 2, tail wraps to 0
	assert.Equal(t, []int{0, 2}, lit(f))
}

func TestChase_WidthClamped(t *testing.T) {
	c := &Chase{Color: [3]byte{1, 1, 1}, Width: 10}
	f, _ := c.Frame("desk", 3)
	assert.Equal(t, []int{0, 1, 2}, lit(f))

	c = &Chase{Color: [3]byte{1, 1, 1}}
	f, _ = c.Frame("desk", 3)
	assert.Equal(t, []int{0}, lit(f))
}

func TestFirst_FallsBack(t *testing.T) {
	store := NewStore()
	src := First{store, Solid{Color: [3]byte{7, 7, 7}}}

	f, ok := src.Frame("desk", 2)
	require.True(t, ok)
	assert.Equal(t, []byte{7, 7, 7}, f[0])

	store.Put("desk", pixel.RGB([3]byte{1, 1, 1}))
	f, _ = src.Frame("desk", 2)
	assert.Equal(t, []byte{1, 1, 1}, f[0])

	_, ok = First{}.Frame("desk", 2)
	assert.False(t, ok)
}
