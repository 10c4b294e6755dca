// internal/pixel/frame_test.go
package pixel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGB(t *testing.T) {
	f := RGB([3]byte{1, 2, 3}, [3]byte{4, 5, 6})

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 3, f.Channels())
	assert.Equal(t, []byte{1, 2, 3}, f[0])
	assert.Equal(t, []byte{4, 5, 6}, f[1])
}

func TestSolid(t *testing.T) {
	f := Solid(4, [3]byte{9, 8, 7})

	assert.Equal(t, 4, f.Len())
	for i := range f {
		assert.Equal(t, []byte{9, 8, 7}, f[i])
	}

	// pixels must not alias each other
	f[0][0] = 0
	assert.Equal(t, byte(9), f[1][0])

	assert.Equal(t, 0, Solid(-1, [3]byte{}).Len())
}

func TestFromFlat(t *testing.T) {
	f := FromFlat([]byte{1, 2, 3, 4, 5, 6, 7}, 3)

	assert.Equal(t, Frame{{1, 2, 3}, {4, 5, 6}}, f)
	assert.Equal(t, 0, FromFlat([]byte{1, 2}, 0).Len())
}

func TestFromFloats(t *testing.T) {
	f := FromFloats([][]float64{
		{0, 127.9, 255},
		{-3, 300, math.NaN()},
	})

	assert.Equal(t, []byte{0, 127, 255}, f[0])
	assert.Equal(t, []byte{0, 255, 0}, f[1])
}

func TestChannels_Empty(t *testing.T) {
	assert.Equal(t, 0, Frame{}.Channels())
}
