package runtime

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Textual number conversions. These are pure functions over float64 and
// string; the Value-level operators in coercion.go build on them.

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// NumberToString implements ES5 9.8.1 ToString applied to the Number type.
func NumberToString(m float64) string {
	switch {
	case math.IsNaN(m):
		return "NaN"
	case m == 0:
		return "0"
	case math.IsInf(m, 1):
		return "Infinity"
	case math.IsInf(m, -1):
		return "-Infinity"
	case m < 0:
		return "-" + NumberToString(-m)
	}
	// shortest round-tripping digits: d.ddddde+-x
	repr := strconv.FormatFloat(m, 'e', -1, 64)
	mant, exp, _ := strings.Cut(repr, "e")
	digits := strings.Replace(mant, ".", "", 1)
	e10, _ := strconv.Atoi(exp)
	k := len(digits)
	n := e10 + 1

	var b strings.Builder
	switch {
	case k <= n && n <= 21:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= 21:
		b.WriteString(digits[:n])
		b.WriteByte('.')
		b.WriteString(digits[n:])
	case -6 < n && n <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -n))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if n-1 >= 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(abs(n - 1)))
	}
	return b.String()
}

// NumberToStringRadix renders m in the given radix (2..36).
func NumberToStringRadix(m float64, radix int) string {
	if radix == 10 || math.IsNaN(m) || math.IsInf(m, 0) {
		return NumberToString(m)
	}
	if m == 0 {
		return "0"
	}
	neg := m < 0
	if neg {
		m = -m
	}
	ip := math.Floor(m)
	fp := m - ip
	r := float64(radix)

	var ib []byte
	if ip == 0 {
		ib = append(ib, '0')
	}
	for ip >= 1 {
		d := int(math.Mod(ip, r))
		ib = append(ib, digitChars[d])
		ip = math.Floor(ip / r)
	}
	for i, j := 0, len(ib)-1; i < j; i, j = i+1, j-1 {
		ib[i], ib[j] = ib[j], ib[i]
	}
	if fp > 0 {
		ib = append(ib, '.')
		for i := 0; i < 52 && fp > 0; i++ {
			fp *= r
			d := math.Floor(fp)
			fp -= d
			ib = append(ib, digitChars[int(d)])
		}
	}
	if neg {
		return "-" + string(ib)
	}
	return string(ib)
}

// IsWhiteSpace reports whether r is a WhiteSpace or LineTerminator code
// point (ES5 7.2, 7.3).
func IsWhiteSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', ' ', '\u00a0', '\ufeff', '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// TrimWhiteSpace strips leading and trailing ES5 white space.
func TrimWhiteSpace(s string) string {
	return strings.TrimFunc(s, IsWhiteSpace)
}

// StringToNumber implements ES5 9.3.1 ToNumber applied to the String type.
func StringToNumber(s string) float64 {
	s = TrimWhiteSpace(s)
	if s == "" {
		return 0
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return parseHex(s[2:])
	}
	body := s
	sign := 1.0
	switch body[0] {
	case '+':
		body = body[1:]
	case '-':
		body = body[1:]
		sign = -1
	}
	if body == "Infinity" {
		return sign * math.Inf(1)
	}
	if !isDecimalLiteral(body) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		// out of range still yields +-Inf or 0 from ParseFloat
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return math.NaN()
		}
	}
	return sign * f
}

func parseHex(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	var n float64
	for i := 0; i < len(s); i++ {
		d := hexDigit(s[i])
		if d < 0 {
			return math.NaN()
		}
		n = n*16 + float64(d)
	}
	return n
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// isDecimalLiteral matches StrUnsignedDecimalLiteral without Infinity.
func isDecimalLiteral(s string) bool {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// DoubleToInteger implements the numeric part of ES5 9.4 ToInteger.
func DoubleToInteger(n float64) float64 {
	if math.IsNaN(n) {
		return 0
	}
	if n == 0 || math.IsInf(n, 0) {
		return n
	}
	return math.Trunc(n)
}

// DoubleToUint32 implements the numeric part of ES5 9.6 ToUint32.
func DoubleToUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	m := math.Mod(math.Trunc(n), 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// DoubleToInt32 implements the numeric part of ES5 9.5 ToInt32.
func DoubleToInt32(n float64) int32 {
	return int32(DoubleToUint32(n))
}

// DoubleToUint16 implements the numeric part of ES5 9.7 ToUint16.
func DoubleToUint16(n float64) uint16 {
	return uint16(DoubleToUint32(n))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
