package app

import (
	"math/rand"

	"edahub/domain/trivia"
	"edahub/internal"
	"edahub/internal/errors"
	"edahub/internal/session"
)

// TriviaService runs the trivia game: one open question per session, graded
// exactly once, with the score carried in session state.
type TriviaService struct {
	dashboard *DashboardService
	generator *trivia.Generator
	log       *internal.Logger
}

// NewTriviaService creates the service over the given random source.
func NewTriviaService(dashboard *DashboardService, rng *rand.Rand, log *internal.Logger) *TriviaService {
	return &TriviaService{
		dashboard: dashboard,
		generator: trivia.NewGenerator(rng),
		log:       log,
	}
}

// Round is the render-ready trivia state.
type Round struct {
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`
	Score   int      `json:"score"`
}

// Verdict is the result of grading one answer.
type Verdict struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Score         int    `json:"score"`
}

// Question returns the session's open question, generating a fresh one from
// the current filtered view when none is pending.
func (s *TriviaService) Question(state *session.State) (*Round, error) {
	if state.CurrentQuestion == nil {
		view, err := s.dashboard.FilteredView(state)
		if err != nil {
			return nil, err
		}
		q, err := s.generator.Next(view)
		if err != nil {
			return nil, err
		}
		state.CurrentQuestion = q
	}
	return &Round{
		Prompt:  state.CurrentQuestion.Prompt,
		Options: state.CurrentQuestion.Options,
		Score:   state.TriviaScore,
	}, nil
}

// Submit grades the pending question and discards it; the next call to
// Question generates a fresh one.
func (s *TriviaService) Submit(state *session.State, answer string) (*Verdict, error) {
	q := state.CurrentQuestion
	if q == nil {
		return nil, errors.New(errors.CodeValidation, "no open trivia question to answer")
	}

	correct := q.Grade(answer)
	if correct {
		state.TriviaScore++
	}
	state.CurrentQuestion = nil

	s.log.Debug("trivia answer graded: correct=%v score=%d", correct, state.TriviaScore)
	return &Verdict{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer(),
		Score:         state.TriviaScore,
	}, nil
}

// Reset clears the score and any pending question.
func (s *TriviaService) Reset(state *session.State) {
	state.ResetTrivia()
}
