//go:build rp2040 || rp2350

package fmtx

import "deviceconsole-go/x/conv"

// Sprintf is a tiny formatter covering exactly the verbs the console
// messages use: %s %c %d %02d %.2f %%. Anything else is written literally
// to aid debugging. Keeps MCU builds free of the fmt package.
func Sprintf(format string, a ...any) string {
	var out []byte
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			out = append(out, c)
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			out = append(out, '%')
			i++
			continue
		}
		// Optional "02" width or ".2" precision.
		pad2 := false
		prec2 := false
		if i+1 < len(format) && format[i] == '0' && format[i+1] == '2' {
			pad2 = true
			i += 2
		} else if i+1 < len(format) && format[i] == '.' && format[i+1] == '2' {
			prec2 = true
			i += 2
		}
		if i >= len(format) || ai >= len(a) {
			break
		}
		verb := format[i]
		arg := a[ai]
		ai++
		i++
		switch verb {
		case 's':
			if s, ok := arg.(string); ok {
				out = append(out, s...)
			}
		case 'c':
			switch v := arg.(type) {
			case byte:
				out = append(out, v)
			case rune:
				out = append(out, byte(v))
			}
		case 'd':
			n := toInt32(arg)
			if pad2 && n >= 0 && n < 10 {
				out = append(out, '0')
			}
			out = append(out, conv.FormatInt(n)...)
		case 'f':
			// Only two-decimal output is supported; %.2f and %f render alike.
			_ = prec2
			out = appendFixed2(out, toFloat32(arg))
		default:
			out = append(out, '%', verb)
		}
	}
	return string(out)
}

func toInt32(v any) int32 {
	switch x := v.(type) {
	case int:
		return int32(x)
	case int8:
		return int32(x)
	case int16:
		return int32(x)
	case int32:
		return x
	case int64:
		return int32(x)
	case uint8:
		return int32(x)
	case uint16:
		return int32(x)
	case uint32:
		return int32(x)
	default:
		return 0
	}
}

func toFloat32(v any) float32 {
	switch x := v.(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	default:
		return 0
	}
}

// appendFixed2 writes f with exactly two decimal places, rounding half up.
func appendFixed2(out []byte, f float32) []byte {
	if f < 0 {
		out = append(out, '-')
		f = -f
	}
	scaled := int32(f*100 + 0.5)
	out = append(out, conv.FormatInt(scaled/100)...)
	out = append(out, '.')
	frac := scaled % 100
	out = append(out, byte('0'+frac/10), byte('0'+frac%10))
	return out
}
