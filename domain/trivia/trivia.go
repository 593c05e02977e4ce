// Package trivia synthesizes multiple-choice questions about the current
// filtered view. A question is answered exactly once, then discarded; the
// running score lives in the caller's session state.
package trivia

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/montanaflynn/stats"

	"edahub/domain/dataset"
	"edahub/internal/errors"
)

// QuestionKind selects the statistic a question asks about.
type QuestionKind string

const (
	KindAverage      QuestionKind = "average"
	KindMostFrequent QuestionKind = "most_frequent"
)

// Question is one round of the trivia game. Options always has four entries
// and always contains the correct answer. Coinciding distractors (a mean that
// rounds to the median, say) are kept as-is, so the list may hold duplicates.
type Question struct {
	Kind    QuestionKind `json:"kind"`
	Prompt  string       `json:"prompt"`
	Column  string       `json:"column"`
	Options []string     `json:"options"`

	correct string
}

// CorrectAnswer exposes the expected answer, for the reveal after grading.
func (q *Question) CorrectAnswer() string { return q.correct }

// Grade checks a submitted answer by exact string match.
func (q *Question) Grade(answer string) bool { return answer == q.correct }

// Generator produces questions from a view. The random source is injected so
// rounds are reproducible under test. One generator is shared by every
// session and rand.Rand is not concurrency safe, so draws are serialized.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator over the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Next generates a fresh question. Both kinds are equally likely; if the
// drawn kind has no eligible column the other kind is tried, and with no
// eligible columns at all no question is produced.
func (g *Generator) Next(view dataset.View) (*Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	numeric := view.Frame().NumericColumns()
	categorical := view.Frame().CategoricalColumns()

	kind := KindAverage
	if g.rng.Intn(2) == 1 {
		kind = KindMostFrequent
	}

	if kind == KindAverage && len(numeric) == 0 {
		kind = KindMostFrequent
	}
	if kind == KindMostFrequent && len(categorical) == 0 {
		kind = KindAverage
	}

	switch {
	case kind == KindAverage && len(numeric) > 0:
		return g.averageQuestion(view, numeric)
	case kind == KindMostFrequent && len(categorical) > 0:
		return g.mostFrequentQuestion(view, categorical)
	}
	return nil, errors.New(errors.CodeEmptySelection,
		"no suitable columns for trivia questions")
}

func (g *Generator) averageQuestion(view dataset.View, numeric []string) (*Question, error) {
	col := numeric[g.rng.Intn(len(numeric))]
	values := dataset.NumericValues(view, col)
	if len(values) == 0 {
		return nil, errors.Newf(errors.CodeEmptySelection,
			"column %q has no values in the current view", col)
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	correct := fmt.Sprintf("%.2f", mean)
	options := []string{
		correct,
		fmt.Sprintf("%.2f", median),
		fmt.Sprintf("%.2f", min),
		fmt.Sprintf("%.2f", max),
	}
	g.shuffle(options)

	return &Question{
		Kind:    KindAverage,
		Prompt:  fmt.Sprintf("What is the average value of '%s'?", col),
		Column:  col,
		Options: options,
		correct: correct,
	}, nil
}

func (g *Generator) mostFrequentQuestion(view dataset.View, categorical []string) (*Question, error) {
	col := categorical[g.rng.Intn(len(categorical))]
	counts := dataset.ValueCounts(view, col)
	if len(counts) == 0 {
		return nil, errors.Newf(errors.CodeEmptySelection,
			"column %q has no values in the current view", col)
	}

	mode := counts[0].Value
	top := make([]string, 0, 4)
	for _, vc := range counts {
		top = append(top, vc.Value)
		if len(top) == 4 {
			break
		}
	}

	// The mode must appear among the options even if the naive top cut
	// somehow missed it: drop the least frequent of the sampled values.
	if !contains(top, mode) {
		top[len(top)-1] = mode
	}
	g.shuffle(top)

	return &Question{
		Kind:    KindMostFrequent,
		Prompt:  fmt.Sprintf("Which category appears most frequently in '%s'?", col),
		Column:  col,
		Options: top,
		correct: mode,
	}, nil
}

func (g *Generator) shuffle(items []string) {
	g.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
