package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/internal/errors"
	"github.com/gcbaptista/go-survey-similarity/internal/similarity"
	"github.com/gcbaptista/go-survey-similarity/model"
	"github.com/gcbaptista/go-survey-similarity/services"
)

// Engine owns the in-memory candidate population.
// It implements the services.CandidateManager interface.
//
// The population is loaded once from the store, only ever appended to, and
// every scan runs over a snapshot taken under the read lock, so a scan never
// observes a half-applied submission.
type Engine struct {
	mu         sync.RWMutex
	candidates []model.CandidateRecord
	byName     map[string]int
	store      services.CandidateStore
	logger     *zap.Logger
}

// NewEngine loads the population from store and returns a ready engine.
func NewEngine(ctx context.Context, store services.CandidateStore, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	eng := &Engine{
		candidates: make([]model.CandidateRecord, 0, len(records)),
		byName:     make(map[string]int, len(records)),
		store:      store,
		logger:     logger,
	}
	for _, record := range records {
		if _, exists := eng.byName[record.Name]; exists {
			// The first submission under a name wins lookups; later ones still take part in scans.
			logger.Warn("duplicate candidate name in stored data", zap.String("candidate", record.Name))
		} else {
			eng.byName[record.Name] = len(eng.candidates)
		}
		eng.candidates = append(eng.candidates, record)
	}

	logger.Info("candidates loaded", zap.Int("count", len(eng.candidates)))
	return eng, nil
}

// Submit validates record, persists it and appends it to the population.
// The in-memory population is left untouched when persistence fails.
func (e *Engine) Submit(ctx context.Context, record model.CandidateRecord) error {
	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return errors.NewValidationError("candidateName", "candidate name is required")
	}
	if record.Answers == nil {
		record.Answers = []model.Answer{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byName[record.Name]; exists {
		return errors.NewCandidateExistsError(record.Name)
	}

	if err := e.store.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to persist submission for '%s': %w", record.Name, err)
	}

	e.byName[record.Name] = len(e.candidates)
	e.candidates = append(e.candidates, record)

	e.logger.Info("survey submitted",
		zap.String("candidate", record.Name),
		zap.Int("answers", len(record.Answers)),
		zap.Int("population", len(e.candidates)),
	)
	return nil
}

// Candidates returns a snapshot of the population in submission order.
func (e *Engine) Candidates() []model.CandidateRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshotUnsafe()
}

// snapshotUnsafe assumes the caller holds e.mu.
func (e *Engine) snapshotUnsafe() []model.CandidateRecord {
	snapshot := make([]model.CandidateRecord, len(e.candidates))
	copy(snapshot, e.candidates)
	return snapshot
}

// Candidate looks a record up by name.
func (e *Engine) Candidate(name string) (model.CandidateRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, exists := e.byName[name]
	if !exists {
		return model.CandidateRecord{}, errors.NewCandidateNotFoundError(name)
	}
	return e.candidates[idx], nil
}

// Rank scores the named candidate against everyone else, best match first.
func (e *Engine) Rank(name string) ([]similarity.PairResult, error) {
	e.mu.RLock()
	idx, exists := e.byName[name]
	if !exists {
		e.mu.RUnlock()
		return nil, errors.NewCandidateNotFoundError(name)
	}
	target := e.candidates[idx]
	population := e.snapshotUnsafe()
	e.mu.RUnlock()

	return similarity.RankAgainst(target, population), nil
}

// Pairs scores every pair of candidates.
func (e *Engine) Pairs() []similarity.PairResult {
	return similarity.AllPairs(e.Candidates())
}

// PagedPairs returns the pairs anchored on one page of candidates.
func (e *Engine) PagedPairs(page, pageSize int) ([]similarity.PairResult, error) {
	return similarity.PagedPairs(e.Candidates(), page, pageSize)
}

// Search scores the pairs of candidates both named in query.
func (e *Engine) Search(query string) []similarity.PairResult {
	return similarity.MatchingPairs(e.Candidates(), query)
}

// Stats summarises the population.
func (e *Engine) Stats() model.PopulationStats {
	candidates := e.Candidates()

	stats := model.PopulationStats{
		TotalCandidates:   len(candidates),
		AnswersByQuestion: make(map[int]int, similarity.TotalQuestions),
	}
	for q := 1; q <= similarity.TotalQuestions; q++ {
		stats.AnswersByQuestion[q] = 0
	}

	for _, candidate := range candidates {
		if len(candidate.Answers) == 0 {
			stats.EmptySubmissions++
		}
		for _, answer := range candidate.Answers {
			if similarity.IsMalformed(answer) {
				stats.MalformedAnswers++
				continue
			}
			q, _ := similarity.ParseLabel(answer.Question)
			stats.AnswersByQuestion[q]++
		}
	}
	return stats
}
