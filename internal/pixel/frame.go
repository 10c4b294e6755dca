// internal/pixel/frame.go
package pixel

// Frame is one output cycle of pixel values.
// Entry i holds the channel bytes of the pixel at strip position i.
// Order is physical order; length may differ from a device's pixel count.
type Frame [][]byte

// Len returns the number of pixels.
func (f Frame) Len() int { return len(f) }

// Channels returns the channel count of the first pixel, 0 for an empty frame.
func (f Frame) Channels() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// RGB builds a frame from 3-channel tuples.
func RGB(px ...[3]byte) Frame {
	f := make(Frame, len(px))
	for i := range px {
		p := px[i]
		f[i] = []byte{p[0], p[1], p[2]}
	}
	return f
}

// Solid builds a frame of n identical pixels.
func Solid(n int, c [3]byte) Frame {
	if n < 0 {
		n = 0
	}
	f := make(Frame, n)
	for i := range f {
		f[i] = []byte{c[0], c[1], c[2]}
	}
	return f
}

// FromFlat splits a flat channel array into pixels of the given width.
// A trailing partial pixel is dropped.
func FromFlat(data []byte, channels int) Frame {
	if channels <= 0 {
		return Frame{}
	}
	n := len(data) / channels
	f := make(Frame, n)
	for i := 0; i < n; i++ {
		px := make([]byte, channels)
		copy(px, data[i*channels:(i+1)*channels])
		f[i] = px
	}
	return f
}

// FromFloats converts float channel values into bytes.
// Values are truncated toward zero and clamped to 0..255.
func FromFloats(px [][]float64) Frame {
	f := make(Frame, len(px))
	for i, p := range px {
		b := make([]byte, len(p))
		for c, v := range p {
			b[c] = clampByte(v)
		}
		f[i] = b
	}
	return f
}

func clampByte(v float64) byte {
	// NaN fails both comparisons and lands on 0
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
