package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lvhmm/matrix"
)

// ExampleDense_AppendRow records a 2-D trajectory one time step at a time
// and rescales it into the unit square.
func ExampleDense_AppendRow() {
	m, _ := matrix.NewEmpty(2)
	_ = m.AppendRow([]float64{0, 100})
	_ = m.AppendRow([]float64{2, 150})
	_ = m.AppendRow([]float64{4, 200})

	_ = m.Scale(0, 1)
	fmt.Print(m)
	// Output:
	// [0, 0]
	// [0.5, 0.5]
	// [1, 1]
}
