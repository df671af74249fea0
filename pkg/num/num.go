// Package num parses and formats the numbers that appear in the
// textual record formats: plain integers, floats, the spreadsheet
// thousands-separator style, and the "non-zero or empty" rule used by
// CSV cells.
package num

import (
	"strconv"

	"github.com/tlunder/biotext/pkg/codec"
)

// AppendUint appends the decimal form of v to dst.
func AppendUint(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}

// AppendInt appends the decimal form of v to dst.
func AppendInt(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// AppendUintThousands appends v with sep between each group of three
// digits, spreadsheet style (1234567 -> 1,234,567).
func AppendUintThousands(dst []byte, v uint64, sep byte) []byte {
	var scratch [20]byte
	digits := strconv.AppendUint(scratch[:0], v, 10)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	dst = append(dst, digits[:lead]...)
	for i := lead; i < len(digits); i += 3 {
		dst = append(dst, sep)
		dst = append(dst, digits[i:i+3]...)
	}
	return dst
}

// AppendNonzeroUint appends v, or nothing when v is zero.
func AppendNonzeroUint(dst []byte, v uint64) []byte {
	if v == 0 {
		return dst
	}
	return strconv.AppendUint(dst, v, 10)
}

// AppendNonzeroUintThousands is AppendUintThousands with the
// non-zero-or-empty rule.
func AppendNonzeroUintThousands(dst []byte, v uint64, sep byte) []byte {
	if v == 0 {
		return dst
	}
	return AppendUintThousands(dst, v, sep)
}

// AppendFloat appends the shortest decimal form of v that parses back
// to the same value.
func AppendFloat(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

// FormatFloat returns the shortest decimal form of v that parses back
// to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseUint parses an unsigned decimal integer from b.
func ParseUint(b []byte) (uint64, error) {
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, codec.Wrap(codec.KindParseInt, err)
	}
	return v, nil
}

// ParseInt parses a signed decimal integer from b.
func ParseInt(b []byte) (int64, error) {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, codec.Wrap(codec.KindParseInt, err)
	}
	return v, nil
}

// ParseUintThousands parses an unsigned decimal integer, tolerating
// sep between digit groups of three ("35,780"). A separator in any
// other position is an error.
func ParseUintThousands(b []byte, sep byte) (uint64, error) {
	if len(b) == 0 {
		return 0, codec.Errorf(codec.KindParseInt, "empty number")
	}
	plain := make([]byte, 0, len(b))
	// Every separator must sit a multiple of four from the right and
	// the leading group may hold at most three digits.
	first := true
	for i, c := range b {
		if c != sep {
			plain = append(plain, c)
			continue
		}
		rest := len(b) - i - 1
		if i == 0 || rest == 0 || rest%4 != 3 || (first && i > 3) {
			return 0, codec.Errorf(codec.KindParseInt, "misplaced separator in %q", b)
		}
		first = false
	}
	return ParseUint(plain)
}

// ParseNonzeroUint parses b per the non-zero-or-empty rule: an empty
// slice is zero, anything else must be a plain unsigned integer.
func ParseNonzeroUint(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return ParseUint(b)
}

// ParseFloat parses a decimal float from b.
func ParseFloat(b []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, codec.Wrap(codec.KindParseInt, err)
	}
	return v, nil
}
