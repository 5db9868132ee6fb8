// Package similarity encodes survey answers into one-hot matrices and scores
// candidates against each other with cosine similarity.
package similarity

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/gcbaptista/go-survey-similarity/model"
)

const (
	// TotalQuestions is the number of questions in the survey (matrix rows).
	TotalQuestions = 20
	// NumOptions is the number of options offered per question (matrix columns).
	NumOptions = 10
)

// ParseLabel returns the 1-based ordinal carried by the last token of a label
// such as "Question 12" or "Option 3".
func ParseLabel(label string) (int, bool) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Encode converts a sparse list of answers into a TotalQuestions x NumOptions
// binary matrix. Answers whose labels do not parse, or whose indices fall
// outside the matrix, are skipped. A repeated question keeps only its last
// answer so every row stays one-hot.
func Encode(answers []model.Answer) *mat.Dense {
	m := mat.NewDense(TotalQuestions, NumOptions, nil)
	for _, answer := range answers {
		row, col, ok := cell(answer)
		if !ok {
			continue
		}
		m.SetRow(row, make([]float64, NumOptions))
		m.Set(row, col, 1)
	}
	return m
}

// cell maps an answer to its zero-based matrix coordinates.
func cell(answer model.Answer) (row, col int, ok bool) {
	question, ok := ParseLabel(answer.Question)
	if !ok {
		return 0, 0, false
	}
	option, ok := ParseLabel(answer.Option)
	if !ok {
		return 0, 0, false
	}
	row, col = question-1, option-1
	if row < 0 || row >= TotalQuestions || col < 0 || col >= NumOptions {
		return 0, 0, false
	}
	return row, col, true
}

// IsMalformed reports whether Encode would skip the answer.
func IsMalformed(answer model.Answer) bool {
	_, _, ok := cell(answer)
	return !ok
}
