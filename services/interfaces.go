package services

import (
	"context"

	"github.com/gcbaptista/go-survey-similarity/internal/similarity"
	"github.com/gcbaptista/go-survey-similarity/model"
)

// CandidateStore persists survey submissions.
type CandidateStore interface {
	// LoadAll returns every stored record in submission order.
	LoadAll(ctx context.Context) ([]model.CandidateRecord, error)
	// Append persists one new record.
	Append(ctx context.Context, record model.CandidateRecord) error
}

// SubmissionManager accepts and lists survey submissions
type SubmissionManager interface {
	Submit(ctx context.Context, record model.CandidateRecord) error
	Candidates() []model.CandidateRecord
	Candidate(name string) (model.CandidateRecord, error)
	Stats() model.PopulationStats
}

// SimilarityQuerier computes similarity views over the population
type SimilarityQuerier interface {
	Rank(name string) ([]similarity.PairResult, error)
	Pairs() []similarity.PairResult
	PagedPairs(page, pageSize int) ([]similarity.PairResult, error)
	Search(query string) []similarity.PairResult
}

// CandidateManager combines submissions and similarity queries
type CandidateManager interface {
	SubmissionManager
	SimilarityQuerier
}
