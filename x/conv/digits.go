package conv

// maxDigits bounds accepted input so the result always fits an int32.
// Nine decimal digits (999_999_999) is the largest safe width.
const maxDigits = 9

// ParseDigits reads the leading run of decimal digits from s and returns its
// value. ok is false when s has no leading digit, or when the run is wider
// than nine digits. Trailing non-digit bytes are ignored, matching the
// console input convention where a line may carry stray characters after
// the number.
func ParseDigits(s string) (int32, bool) {
	var n int32
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if i == maxDigits {
			return 0, false
		}
		n = n*10 + int32(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, false
	}
	return n, true
}

// FormatInt returns the base-10 representation of n without pulling in
// strconv. Stack buffer only.
func FormatInt(n int32) string {
	var buf [12]byte
	i := len(buf)
	u := uint32(n)
	if n < 0 {
		u = uint32(-n)
	}
	for {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	if n < 0 {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
