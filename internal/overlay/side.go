package overlay

import (
	"fmt"
	"strings"
)

// Side is the edge of the anchor a panel is placed against.
//
// The declaration order of the concrete sides (top, bottom, left, right) is
// the deterministic tie-break used when two sides offer exactly the same
// space.
type Side int

const (
	// SideAuto asks the placer to pick a side from the available space.
	SideAuto Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

var (
	// AllSides lists every concrete side in tie-break order.
	AllSides = []Side{SideTop, SideBottom, SideLeft, SideRight}

	// VerticalSides restricts placement to above or below the anchor, the
	// way dropdowns and suggestion lists flip.
	VerticalSides = []Side{SideTop, SideBottom}

	// HorizontalSides restricts placement to the left or right of the anchor.
	HorizontalSides = []Side{SideLeft, SideRight}
)

func (s Side) String() string {
	switch s {
	case SideAuto:
		return "auto"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Vertical reports whether the panel stacks above or below the anchor.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

func (s Side) concrete() bool {
	return s >= SideTop && s <= SideRight
}

// ParseSide converts a user-facing side name ("top", "Right", "auto", "")
// into a Side.
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return SideAuto, nil
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	default:
		return SideAuto, fmt.Errorf("unknown side %q", value)
	}
}
