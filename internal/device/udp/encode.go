// internal/device/udp/encode.go
package udp

import (
	"encoding/hex"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

// Encoder builds the datagram payload for one frame.
//
// Layout:
//
//	[prefix bytes][pixel section][postfix bytes]
//
// pixel section, include_indexes=false:
//
//	c0 c1 c2 | c0 c1 c2 | ...
//
// pixel section, include_indexes=true:
//
//	i c0 c1 c2 | i c0 c1 c2 | ...
//
// The index byte is the zero-based position truncated to 8 bits. Strips
// longer than 256 pixels repeat indexes 0..255; there is no overflow guard.
//
// No length field, no checksum. Output depends only on frame and cfg.
type Encoder struct {
	// Log receives hex decode warnings.
	Log zerolog.Logger
}

// Encode returns the payload for frame. A malformed prefix or postfix is
// logged and left out; the rest of the payload is still produced.
func (e Encoder) Encode(frame pixel.Frame, cfg Config) []byte {
	per := frame.Channels()
	if cfg.IncludeIndexes {
		per++
	}
	size := len(frame)*per + hex.DecodedLen(len(cfg.DataPrefix)) + hex.DecodedLen(len(cfg.DataPostfix))

	buf := make([]byte, 0, size)

	buf = e.appendSegment(buf, "prefix", cfg.DataPrefix)

	for i, px := range frame {
		if cfg.IncludeIndexes {
			buf = append(buf, byte(i))
		}
		buf = append(buf, px...)
	}

	buf = e.appendSegment(buf, "postfix", cfg.DataPostfix)

	return buf
}

func (e Encoder) appendSegment(dst []byte, segment, value string) []byte {
	if value == "" {
		return dst
	}

	out, err := appendHex(dst, value)
	if err != nil {
		e.Log.Warn().
			Err(err).
			Str("segment", segment).
			Str("value", value).
			Msg("cannot convert data " + segment + " to hex, sending frame without it")
		return dst
	}
	return out
}

// appendHex decodes s and appends the bytes to dst. Whitespace between
// digits is ignored ("02 FF" == "02FF").
// On error dst is returned unchanged.
func appendHex(dst []byte, s string) ([]byte, error) {
	n := len(dst)
	out, err := hex.AppendDecode(dst, []byte(strings.Join(strings.Fields(s), "")))
	if err != nil {
		return dst[:n], err
	}
	return out, nil
}
