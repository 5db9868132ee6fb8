package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	apperrors "github.com/gcbaptista/go-survey-similarity/internal/errors"
	"github.com/gcbaptista/go-survey-similarity/internal/similarity"
	"github.com/gcbaptista/go-survey-similarity/model"
	"github.com/gcbaptista/go-survey-similarity/store"
)

// memoryStore is an in-memory CandidateStore with an optional failure switch
type memoryStore struct {
	mu        sync.Mutex
	records   []model.CandidateRecord
	failWrite error
	failLoad  error
}

func (s *memoryStore) LoadAll(_ context.Context) ([]model.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLoad != nil {
		return nil, s.failLoad
	}
	return append([]model.CandidateRecord(nil), s.records...), nil
}

func (s *memoryStore) Append(_ context.Context, record model.CandidateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return s.failWrite
	}
	s.records = append(s.records, record)
	return nil
}

func answers(pairs ...string) []model.Answer {
	result := make([]model.Answer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, model.Answer{Question: pairs[i], Option: pairs[i+1]})
	}
	return result
}

func newTestEngine(t *testing.T, records ...model.CandidateRecord) (*Engine, *memoryStore) {
	t.Helper()
	st := &memoryStore{records: records}
	eng, err := NewEngine(context.Background(), st, nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng, st
}

func TestNewEngine_LoadsPopulation(t *testing.T) {
	eng, _ := newTestEngine(t,
		model.CandidateRecord{Name: "Alice", Answers: answers("Question 1", "Option 1")},
		model.CandidateRecord{Name: "Bob"},
	)

	candidates := eng.Candidates()
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Name != "Alice" || candidates[1].Name != "Bob" {
		t.Errorf("Expected submission order to be preserved, got %v", candidates)
	}
}

func TestNewEngine_LoadFailure(t *testing.T) {
	st := &memoryStore{failLoad: errors.New("disk on fire")}
	if _, err := NewEngine(context.Background(), st, nil); err == nil {
		t.Fatal("Expected error when the store cannot be read")
	}
}

func TestEngine_Submit(t *testing.T) {
	eng, st := newTestEngine(t)

	err := eng.Submit(context.Background(), model.CandidateRecord{
		Name:    "  Carol  ",
		Answers: answers("Question 2", "Option 4"),
	})
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}

	record, err := eng.Candidate("Carol")
	if err != nil {
		t.Fatalf("Expected submitted candidate to be found: %v", err)
	}
	if len(record.Answers) != 1 {
		t.Errorf("Expected 1 answer, got %d", len(record.Answers))
	}
	if len(st.records) != 1 || st.records[0].Name != "Carol" {
		t.Errorf("Expected submission to be persisted, got %v", st.records)
	}
}

func TestEngine_SubmitNormalisesMissingAnswers(t *testing.T) {
	eng, st := newTestEngine(t)

	if err := eng.Submit(context.Background(), model.CandidateRecord{Name: "Dan"}); err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	if st.records[0].Answers == nil {
		t.Error("Expected persisted answers to be an empty list, not nil")
	}
}

func TestEngine_SubmitValidation(t *testing.T) {
	eng, _ := newTestEngine(t, model.CandidateRecord{Name: "Eve"})

	err := eng.Submit(context.Background(), model.CandidateRecord{Name: "   "})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}

	err = eng.Submit(context.Background(), model.CandidateRecord{Name: "Eve"})
	if !errors.Is(err, apperrors.ErrCandidateExists) {
		t.Errorf("Expected ErrCandidateExists for duplicate name, got %v", err)
	}

	if n := len(eng.Candidates()); n != 1 {
		t.Errorf("Expected population to stay at 1, got %d", n)
	}
}

func TestEngine_SubmitPersistenceFailureLeavesPopulationUntouched(t *testing.T) {
	eng, st := newTestEngine(t)
	st.failWrite = errors.New("read-only filesystem")

	if err := eng.Submit(context.Background(), model.CandidateRecord{Name: "Finn"}); err == nil {
		t.Fatal("Expected persistence failure to be returned")
	}
	if n := len(eng.Candidates()); n != 0 {
		t.Errorf("Expected empty population, got %d", n)
	}
	if _, err := eng.Candidate("Finn"); !errors.Is(err, apperrors.ErrCandidateNotFound) {
		t.Errorf("Expected Finn to be unknown, got %v", err)
	}
}

func TestEngine_Rank(t *testing.T) {
	eng, _ := newTestEngine(t,
		model.CandidateRecord{Name: "C1", Answers: answers("Question 1", "Option 1", "Question 2", "Option 3")},
		model.CandidateRecord{Name: "C2", Answers: answers("Question 1", "Option 1", "Question 2", "Option 5")},
		model.CandidateRecord{Name: "C3"},
		model.CandidateRecord{Name: "C4", Answers: answers("Question 1", "Option 1", "Question 2", "Option 3")},
	)

	results, err := eng.Rank("C1")
	if err != nil {
		t.Fatalf("Failed to rank: %v", err)
	}

	want := []similarity.PairResult{
		{NameA: "C1", NameB: "C4", Score: 100},
		{NameA: "C1", NameB: "C2", Score: 50},
		{NameA: "C1", NameB: "C3", Score: 0},
	}
	if len(results) != len(want) {
		t.Fatalf("Expected %d results, got %d", len(want), len(results))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("Result %d: expected %+v, got %+v", i, want[i], results[i])
		}
	}

	if _, err := eng.Rank("nobody"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown candidate, got %v", err)
	}
}

func TestEngine_PagedPairs(t *testing.T) {
	records := make([]model.CandidateRecord, 7)
	for i := range records {
		records[i] = model.CandidateRecord{Name: fmt.Sprintf("c%d", i), Answers: answers("Question 1", "Option 1")}
	}
	eng, _ := newTestEngine(t, records...)

	results, err := eng.PagedPairs(2, 5)
	if err != nil {
		t.Fatalf("Failed to page: %v", err)
	}
	if len(results) != 1 || results[0].NameA != "c5" || results[0].NameB != "c6" {
		t.Errorf("Expected only (c5, c6), got %+v", results)
	}

	if _, err := eng.PagedPairs(3, 5); !errors.Is(err, apperrors.ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound, got %v", err)
	}

	if n := len(eng.Pairs()); n != 21 {
		t.Errorf("Expected 21 pairs for 7 candidates, got %d", n)
	}
}

func TestEngine_Search(t *testing.T) {
	eng, _ := newTestEngine(t,
		model.CandidateRecord{Name: "Alice", Answers: answers("Question 1", "Option 1")},
		model.CandidateRecord{Name: "Bob", Answers: answers("Question 1", "Option 2")},
		model.CandidateRecord{Name: "Carol", Answers: answers("Question 1", "Option 1")},
	)

	results := eng.Search("how similar are ALICE and carol?")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Score != 100 {
		t.Errorf("Expected 100, got %v", results[0].Score)
	}
}

func TestEngine_Stats(t *testing.T) {
	eng, _ := newTestEngine(t,
		model.CandidateRecord{Name: "A", Answers: answers("Question 1", "Option 1", "Question 2", "Option 2", "Question 99", "Option 1")},
		model.CandidateRecord{Name: "B", Answers: answers("Question 1", "Option 3")},
		model.CandidateRecord{Name: "C"},
	)

	stats := eng.Stats()
	if stats.TotalCandidates != 3 {
		t.Errorf("Expected 3 candidates, got %d", stats.TotalCandidates)
	}
	if stats.EmptySubmissions != 1 {
		t.Errorf("Expected 1 empty submission, got %d", stats.EmptySubmissions)
	}
	if stats.MalformedAnswers != 1 {
		t.Errorf("Expected 1 malformed answer, got %d", stats.MalformedAnswers)
	}
	if stats.AnswersByQuestion[1] != 2 || stats.AnswersByQuestion[2] != 1 || stats.AnswersByQuestion[20] != 0 {
		t.Errorf("Unexpected per-question counts: %v", stats.AnswersByQuestion)
	}
	if len(stats.AnswersByQuestion) != similarity.TotalQuestions {
		t.Errorf("Expected %d question buckets, got %d", similarity.TotalQuestions, len(stats.AnswersByQuestion))
	}
}

func TestEngine_ConcurrentSubmitAndScan(t *testing.T) {
	eng, _ := newTestEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			err := eng.Submit(context.Background(), model.CandidateRecord{
				Name:    fmt.Sprintf("candidate-%d", i),
				Answers: answers("Question 1", fmt.Sprintf("Option %d", i%10+1)),
			})
			if err != nil {
				t.Errorf("Submit %d failed: %v", i, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			for _, pair := range eng.Pairs() {
				if pair.NameA == "" || pair.NameB == "" {
					t.Errorf("Scan observed a partially written record: %+v", pair)
				}
			}
		}()
	}
	wg.Wait()

	if n := len(eng.Candidates()); n != 20 {
		t.Errorf("Expected 20 candidates, got %d", n)
	}
}

func TestEngine_WithJSONFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey_responses.json")
	ctx := context.Background()

	eng, err := NewEngine(ctx, store.NewJSONFileStore(path, nil), nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if err := eng.Submit(ctx, model.CandidateRecord{Name: "Gail", Answers: answers("Question 3", "Option 3")}); err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}

	// A fresh engine over the same file sees the submission.
	reloaded, err := NewEngine(ctx, store.NewJSONFileStore(path, nil), nil)
	if err != nil {
		t.Fatalf("Failed to reload engine: %v", err)
	}
	if _, err := reloaded.Candidate("Gail"); err != nil {
		t.Errorf("Expected reloaded engine to know Gail: %v", err)
	}
}
