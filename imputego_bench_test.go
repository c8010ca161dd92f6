package imputego

import (
	"context"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

// benchTable builds a rows x cols table with roughly the given fraction of
// cells missing.
func benchTable(rows, cols int, missingFrac float64) [][]float64 {
	rng := rand.New(rand.NewSource(1))

	X := make([][]float64, rows)
	for r := range X {
		X[r] = make([]float64, cols)
		for c := range X[r] {
			X[r][c] = float64(c) + rng.NormFloat64()
		}
	}

	// Never blank out row 0 or column 0 entirely.
	for r := 1; r < rows; r++ {
		for c := 1; c < cols; c++ {
			if rng.Float64() < missingFrac {
				X[r][c] = math.NaN()
			}
		}
	}
	return X
}

func benchImputer(b *testing.B, optFns ...func(*Options)) *Imputer {
	b.Helper()

	opts := append([]func(*Options){
		WithSeed(1),
		WithBurnIn(2),
		WithImputations(5),
	}, optFns...)

	imp, err := New(columnMeanFactory, opts...)
	if err != nil {
		b.Fatal(err)
	}
	return imp
}

func BenchmarkComplete(b *testing.B) {
	ctx := context.Background()

	cases := []struct {
		name       string
		rows, cols int
	}{
		{"100x10", 100, 10},
		{"1000x10", 1000, 10},
		{"100x50", 100, 50},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			imp := benchImputer(b)
			X := benchTable(tc.rows, tc.cols, 0.2)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := imp.Complete(ctx, X); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompletePMM(b *testing.B) {
	ctx := context.Background()

	imp := benchImputer(b, WithImputeType(ImputePMM))
	X := benchTable(200, 10, 0.2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := imp.Complete(ctx, X); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompleteNearestColumns(b *testing.B) {
	ctx := context.Background()

	imp := benchImputer(b, WithNearestColumns(5))
	X := benchTable(200, 50, 0.2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := imp.Complete(ctx, X); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompleteRow(b *testing.B) {
	ctx := context.Background()

	imp := benchImputer(b, WithModelRetention())
	if _, err := imp.Complete(ctx, benchTable(200, 10, 0.2)); err != nil {
		b.Fatal(err)
	}

	row := make([]float64, 10)
	for c := range row {
		row[c] = float64(c)
	}
	row[3] = math.NaN()
	row[7] = math.NaN()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := imp.CompleteRow(ctx, row, uint64(i)); err != nil {
			b.Fatal(err)
		}
	}
}
