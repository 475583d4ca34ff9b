package runtime

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// String values are kept in generalized UTF-8: well-formed text is plain
// UTF-8 and a lone surrogate code unit keeps its three-byte encoding
// (0xED 0xA0..0xBF 0x80..0xBF). Converting to code units and back is
// lossless.

// ToUnits converts a string value to its UTF-16 code units.
func ToUnits(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		if u, ok := surrogateAt(s, i); ok {
			units = append(units, u)
			i += 3
			continue
		}
		r, n := utf8.DecodeRuneInString(s[i:])
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			units = append(units, uint16(hi), uint16(lo))
		} else {
			units = append(units, uint16(r))
		}
		i += n
	}
	return units
}

// FromUnits builds the string value holding units. Surrogate pairs become
// one UTF-8 sequence.
func FromUnits(units []uint16) string {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			b.WriteRune(u)
			continue
		}
		if i+1 < len(units) {
			if r := utf16.DecodeRune(u, rune(units[i+1])); r != utf8.RuneError {
				b.WriteRune(r)
				i++
				continue
			}
		}
		b.WriteByte(0xED)
		b.WriteByte(byte(0x80 | (u>>6)&0x3F))
		b.WriteByte(byte(0x80 | u&0x3F))
	}
	return b.String()
}

// UnitString renders a single UTF-16 code unit.
func UnitString(u uint16) string {
	return FromUnits([]uint16{u})
}

func surrogateAt(s string, i int) (uint16, bool) {
	if i+3 > len(s) || s[i] != 0xED || s[i+1] < 0xA0 || s[i+1] > 0xBF || s[i+2]&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | uint16(s[i+1]&0x3F)<<6 | uint16(s[i+2]&0x3F), true
}

// canonicalString joins surrogate halves that ended up adjacent, as after
// concatenation, so equal code unit sequences have equal strings.
func canonicalString(s string) string {
	if strings.IndexByte(s, 0xED) < 0 {
		return s
	}
	return FromUnits(ToUnits(s))
}
