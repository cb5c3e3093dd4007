package costfunction

import (
	"github.com/lintang-b-s/shiproute/pkg/grid"
)

// CostFunction is what a grid path search reads while expanding cells.
type CostFunction interface {
	Cost(cell grid.GridIndex) float64
	Shape() (rows, cols int)
}
