// internal/pixel/color_test.go
package pixel

import "testing"

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want [3]byte
	}{
		{"FF8000", [3]byte{0xFF, 0x80, 0x00}},
		{"#00ff7f", [3]byte{0x00, 0xFF, 0x7F}},
		{" 010203 ", [3]byte{1, 2, 3}},
	}

	for _, tc := range cases {
		got, err := ParseHexColor(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "FFF", "GG0000", "#FF00001"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Fatalf("%q: expected error, got nil", in)
		}
	}
}
