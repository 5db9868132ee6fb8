// Package testing provides utilities and helpers for testing the survey service.
package testing

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/internal/engine"
	"github.com/gcbaptista/go-survey-similarity/model"
	"github.com/gcbaptista/go-survey-similarity/services"
	"github.com/gcbaptista/go-survey-similarity/store"
)

// CreateTestEngine creates an engine backed by a JSON file in a per-test temp directory.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	path := filepath.Join(t.TempDir(), "survey_responses.json")
	eng, err := engine.NewEngine(context.Background(), store.NewJSONFileStore(path, zap.NewNop()), zap.NewNop())
	require.NoError(t, err, "Failed to create test engine")

	return eng
}

// Responses builds answers for consecutive questions starting at Question 1.
// A zero option leaves that question unanswered.
func Responses(options ...int) []model.Answer {
	answers := make([]model.Answer, 0, len(options))
	for i, option := range options {
		if option == 0 {
			continue
		}
		answers = append(answers, model.NewAnswer(i+1, strconv.Itoa(option)))
	}
	return answers
}

// SampleCandidates returns a small population with known pairwise scores:
// Alice and Bob answer identically, Carol shares half of Alice's answers and
// Dave submitted nothing.
func SampleCandidates() []model.CandidateRecord {
	return []model.CandidateRecord{
		{Name: "Alice", Answers: Responses(1, 2, 3, 4)},
		{Name: "Bob", Answers: Responses(1, 2, 3, 4)},
		{Name: "Carol", Answers: Responses(1, 2, 5, 6)},
		{Name: "Dave", Answers: []model.Answer{}},
	}
}

// SubmitCandidates submits every record and fails the test on the first error.
func SubmitCandidates(t *testing.T, manager services.SubmissionManager, records []model.CandidateRecord) {
	t.Helper()

	for _, record := range records {
		require.NoError(t, manager.Submit(context.Background(), record), "Failed to submit %s", record.Name)
	}
}

// RankTestCase represents a test case for ranking a candidate against the population
type RankTestCase struct {
	Name          string
	Candidate     string
	ExpectedFirst model.FormattedPair
	ExpectedCount int
	ExpectError   error
}

// RunRankTests runs a suite of ranking tests against a querier
func RunRankTests(t *testing.T, querier services.SimilarityQuerier, tests []RankTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			results, err := querier.Rank(tt.Candidate)
			if tt.ExpectError != nil {
				assert.ErrorIs(t, err, tt.ExpectError)
				return
			}
			require.NoError(t, err, "Rank should not fail")

			assert.Len(t, results, tt.ExpectedCount, "Result count should match")
			if tt.ExpectedFirst != (model.FormattedPair{}) && len(results) > 0 {
				assert.Equal(t, tt.ExpectedFirst, results[0].Format(), "First result should match expected")
			}
		})
	}
}
