package model

import "fmt"

// Answer is a single (question, option) pair submitted by a candidate.
// Both labels carry a 1-based ordinal, e.g. "Question 3" and "Option 7".
type Answer struct {
	Question string `json:"question" form:"question"`
	Option   string `json:"option" form:"option"`
}

// NewAnswer builds an Answer from 1-based question and option numbers.
func NewAnswer(question int, option string) Answer {
	return Answer{
		Question: fmt.Sprintf("Question %d", question),
		Option:   "Option " + option,
	}
}

// CandidateRecord is one survey submission.
// The JSON layout matches the survey responses file: {"candidateName": ..., "responses": [...]}.
type CandidateRecord struct {
	Name    string   `json:"candidateName"`
	Answers []Answer `json:"responses"`
}

// FormattedPair is the display form of a scored candidate pair.
type FormattedPair struct {
	Candidates      string `json:"Candidates"`
	SimilarityScore string `json:"SimilarityScore"`
}

// PopulationStats summarises the stored submissions.
type PopulationStats struct {
	TotalCandidates   int         `json:"total_candidates"`
	EmptySubmissions  int         `json:"empty_submissions"`
	AnswersByQuestion map[int]int `json:"answers_by_question"` // 1-based question number to answer count
	MalformedAnswers  int         `json:"malformed_answers"`
}
