package similarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gcbaptista/go-survey-similarity/model"
)

// Score is a similarity percentage in [0, 100] with two-decimal precision.
// Keep it numeric for comparisons; String is for display only.
type Score float64

// String renders the score the way API responses show it, e.g. "50.00%".
func (s Score) String() string {
	return fmt.Sprintf("%.2f%%", float64(s))
}

// Cosine returns the cosine similarity of the two matrices, flattened to
// vectors, as a percentage rounded to two decimals. If either matrix is all
// zeros the result is 0. Both matrices must have the same dimensions.
func Cosine(a, b *mat.Dense) Score {
	va, vb := flatten(a), flatten(b)

	dot := mat.Dot(va, vb)
	magnitudeA := math.Sqrt(mat.Dot(va, va))
	magnitudeB := math.Sqrt(mat.Dot(vb, vb))

	if magnitudeA == 0 || magnitudeB == 0 {
		return 0
	}

	similarity := dot / (magnitudeA * magnitudeB)
	return Score(math.Round(similarity*100*100) / 100)
}

// CandidateSimilarity encodes both candidates' answers and scores them.
func CandidateSimilarity(a, b model.CandidateRecord) Score {
	return Cosine(Encode(a.Answers), Encode(b.Answers))
}

// flatten views a matrix as a row-major vector without copying when the
// backing storage is contiguous.
func flatten(m *mat.Dense) *mat.VecDense {
	rows, cols := m.Dims()
	raw := m.RawMatrix()
	if raw.Stride != cols {
		raw = mat.DenseCopyOf(m).RawMatrix()
	}
	return mat.NewVecDense(rows*cols, raw.Data[:rows*cols])
}
