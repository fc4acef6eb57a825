package driver

import (
	"math"

	"lattice/internal/diag"
)

// newBag treats maxDiagnostics <= 0 as "no limit".
func newBag(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = math.MaxUint16
	}
	return diag.NewBag(maxDiagnostics)
}
