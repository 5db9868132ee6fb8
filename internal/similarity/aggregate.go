package similarity

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"gonum.org/v1/gonum/mat"

	"github.com/gcbaptista/go-survey-similarity/internal/errors"
	"github.com/gcbaptista/go-survey-similarity/model"
)

// PairResult is the score between two named candidates.
type PairResult struct {
	NameA string `json:"candidate_a"`
	NameB string `json:"candidate_b"`
	Score Score  `json:"score"`
}

// Format renders the pair for API responses.
func (p PairResult) Format() model.FormattedPair {
	return model.FormattedPair{
		Candidates:      p.NameA + " and " + p.NameB,
		SimilarityScore: p.Score.String(),
	}
}

// FormatAll renders a result list, preserving its order.
func FormatAll(results []PairResult) []model.FormattedPair {
	formatted := make([]model.FormattedPair, len(results))
	for i, r := range results {
		formatted[i] = r.Format()
	}
	return formatted
}

// RankAgainst scores target against every other candidate in the population
// and orders the results by descending score. Ties keep population order.
func RankAgainst(target model.CandidateRecord, population []model.CandidateRecord) []PairResult {
	targetMatrix := Encode(target.Answers)

	results := make([]PairResult, 0, len(population))
	for _, candidate := range population {
		if candidate.Name == target.Name {
			continue
		}
		results = append(results, PairResult{
			NameA: target.Name,
			NameB: candidate.Name,
			Score: Cosine(targetMatrix, Encode(candidate.Answers)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// AllPairs scores every unordered pair (i < j) of the population once.
func AllPairs(population []model.CandidateRecord) []PairResult {
	return pairsFrom(encodeAll(population), population, 0, len(population))
}

// PagedPairs paginates over anchor candidates, not over the flattened pair
// list: anchors are indices [(page-1)*pageSize, page*pageSize) and each
// anchor i contributes its pairs (i, j) for every j > i. Earlier pages
// therefore hold more pairs than later ones.
func PagedPairs(population []model.CandidateRecord, page, pageSize int) ([]PairResult, error) {
	if page < 1 {
		return nil, errors.NewValidationError("page", "page must be greater than 0")
	}
	if pageSize < 1 {
		return nil, errors.NewValidationError("page_size", "page size must be greater than 0")
	}

	// Compare page counts first so (page-1)*pageSize cannot overflow.
	pages := len(population) / pageSize
	if len(population)%pageSize != 0 {
		pages++
	}
	if page > pages {
		return nil, errors.NewPageNotFoundError(page, pageSize, len(population))
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(population))

	return pairsFrom(encodeAll(population), population, start, end), nil
}

// MatchingPairs scores every pair (i < j) whose two names both appear in
// query, compared with Unicode case folding.
func MatchingPairs(population []model.CandidateRecord, query string) []PairResult {
	fold := cases.Fold()
	foldedQuery := fold.String(query)

	matrices := make([]*mat.Dense, len(population))
	for i, candidate := range population {
		if candidate.Name != "" && strings.Contains(foldedQuery, fold.String(candidate.Name)) {
			matrices[i] = Encode(candidate.Answers)
		}
	}

	results := make([]PairResult, 0)
	for i := range population {
		if matrices[i] == nil {
			continue
		}
		for j := i + 1; j < len(population); j++ {
			if matrices[j] == nil {
				continue
			}
			results = append(results, PairResult{
				NameA: population[i].Name,
				NameB: population[j].Name,
				Score: Cosine(matrices[i], matrices[j]),
			})
		}
	}
	return results
}

func encodeAll(population []model.CandidateRecord) []*mat.Dense {
	matrices := make([]*mat.Dense, len(population))
	for i, candidate := range population {
		matrices[i] = Encode(candidate.Answers)
	}
	return matrices
}

// pairsFrom emits pairs (i, j), j > i, for anchors i in [start, end).
func pairsFrom(matrices []*mat.Dense, population []model.CandidateRecord, start, end int) []PairResult {
	results := make([]PairResult, 0)
	for i := start; i < end; i++ {
		for j := i + 1; j < len(population); j++ {
			results = append(results, PairResult{
				NameA: population[i].Name,
				NameB: population[j].Name,
				Score: Cosine(matrices[i], matrices[j]),
			})
		}
	}
	return results
}
