// Package matrix_test provides benchmarks for the row-append and range
// operations the quantizer pipeline leans on.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvhmm/matrix"
)

// benchSizes are the row counts to benchmark; every matrix has 8 columns.
var benchSizes = []int{256, 1024, 4096}

const benchCols = 8

// sinks to defeat dead-code elimination
var (
	sinkR []matrix.MinMax
)

func randomRows(n int, seed int64) [][]float64 {
	r := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, benchCols)
		for j := range rows[i] {
			rows[i][j] = r.NormFloat64()
		}
	}

	return rows
}

func BenchmarkAppendRow(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		rows := randomRows(n, 1337)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := matrix.NewEmpty(benchCols)
				if err != nil {
					b.Fatal(err)
				}
				for _, row := range rows {
					if err = m.AppendRow(row); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}

func BenchmarkRanges(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		m, err := matrix.NewDenseFromRows(randomRows(n, 4242))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkR = m.Ranges()
			}
		})
	}
}

func BenchmarkScale(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		src, err := matrix.NewDenseFromRows(randomRows(n, 808))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m := src.CloneDense()
				if err := m.Scale(0, 1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
