package overlay

import (
	"fmt"

	"github.com/treykane/listings/internal/logging"
)

// overlayLog is the structured logger shared by the engine.
var overlayLog = logging.New("overlay")

// strictContracts turns contract violations into panics. The package tests
// switch it on; the shipped program leaves it off and degrades to a fixed
// side.
var strictContracts bool

// fallbackSide is used when a side value outside the enumeration reaches
// the calculator.
const fallbackSide = SideBottom

// contractViolation reports a programming error inside the pipeline.
func contractViolation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if strictContracts {
		panic("overlay: " + msg)
	}
	overlayLog.Warn("contract violation", "detail", msg)
}
