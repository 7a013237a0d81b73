package optics

import (
	"fmt"
	"strings"
)

// Orientation selects the axis pair a mirror is jittered about.
// ±X mirrors deflect horizontally and rotate about Y; ±Y mirrors deflect
// vertically and rotate about X.
type Orientation int

const (
	XPlus Orientation = iota
	XMinus
	YPlus
	YMinus
)

func (o Orientation) String() string {
	switch o {
	case XPlus:
		return "+X"
	case XMinus:
		return "-X"
	case YPlus:
		return "+Y"
	case YMinus:
		return "-Y"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts "+X", "-x", "xplus", "yminus" and similar spellings
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+x", "x+", "x", "xplus":
		return XPlus, nil
	case "-x", "x-", "xminus":
		return XMinus, nil
	case "+y", "y+", "y", "yplus":
		return YPlus, nil
	case "-y", "y-", "yminus":
		return YMinus, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidOrientation)
}

// Horizontal reports whether the mirror deflects in the X-Z plane
func (o Orientation) Horizontal() bool {
	return o == XPlus || o == XMinus
}

func (o Orientation) valid() bool {
	return o >= XPlus && o <= YMinus
}

// sign is +1 for the plus orientations and -1 for the minus ones
func (o Orientation) sign() float64 {
	if o == XMinus || o == YMinus {
		return -1
	}
	return 1
}
