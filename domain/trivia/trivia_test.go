package trivia

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edahub/domain/dataset"
	"edahub/internal/errors"
)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func TestNextAverageQuestion(t *testing.T) {
	f := dataset.NewFrame(
		[]string{"Revenue"},
		[][]string{{"100"}, {"200"}, {"300"}, {"400"}},
	)
	v := dataset.NewView(f)

	// Only a numeric column exists, so every draw lands on the average kind.
	for seed := int64(0); seed < 5; seed++ {
		q, err := newTestGenerator(seed).Next(v)
		require.NoError(t, err)

		assert.Equal(t, KindAverage, q.Kind)
		assert.Equal(t, "What is the average value of 'Revenue'?", q.Prompt)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer())
		assert.Equal(t, "250.00", q.CorrectAnswer())
	}
}

func TestNextMostFrequentQuestion(t *testing.T) {
	f := dataset.NewFrame(
		[]string{"Region"},
		[][]string{
			{"East"}, {"East"}, {"East"},
			{"West"}, {"West"},
			{"North"}, {"South"}, {"Central"},
		},
	)
	v := dataset.NewView(f)

	for seed := int64(0); seed < 5; seed++ {
		q, err := newTestGenerator(seed).Next(v)
		require.NoError(t, err)

		assert.Equal(t, KindMostFrequent, q.Kind)
		assert.Equal(t, "Which category appears most frequently in 'Region'?", q.Prompt)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, "East")
		assert.Equal(t, "East", q.CorrectAnswer())
	}
}

func TestNextFewerThanFourCategories(t *testing.T) {
	f := dataset.NewFrame(
		[]string{"Flag"},
		[][]string{{"yes"}, {"yes"}, {"no"}},
	)
	q, err := newTestGenerator(1).Next(dataset.NewView(f))
	require.NoError(t, err)

	assert.Equal(t, KindMostFrequent, q.Kind)
	assert.Len(t, q.Options, 2)
	assert.Equal(t, "yes", q.CorrectAnswer())
}

func TestNextNoEligibleColumns(t *testing.T) {
	f := dataset.NewFrame([]string{"When"}, [][]string{{"2024-01-01"}})
	require.NoError(t, f.PromoteTemporal("When"))

	_, err := newTestGenerator(1).Next(dataset.NewView(f))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeEmptySelection))
}

func TestNextDuplicateOptionsKept(t *testing.T) {
	// A constant column makes mean, median, min, and max coincide; the option
	// list stays four entries long regardless.
	f := dataset.NewFrame(
		[]string{"V"},
		[][]string{{"5"}, {"5"}, {"5"}},
	)
	q, err := newTestGenerator(1).Next(dataset.NewView(f))
	require.NoError(t, err)

	assert.Len(t, q.Options, 4)
	for _, opt := range q.Options {
		assert.Equal(t, "5.00", opt)
	}
}

func TestGrade(t *testing.T) {
	f := dataset.NewFrame(
		[]string{"V"},
		[][]string{{"10"}, {"20"}},
	)
	q, err := newTestGenerator(3).Next(dataset.NewView(f))
	require.NoError(t, err)

	assert.True(t, q.Grade(q.CorrectAnswer()))
	assert.False(t, q.Grade("not an option"))
}

func TestNextConcurrentSessions(t *testing.T) {
	f := dataset.NewFrame(
		[]string{"Region", "Revenue"},
		[][]string{
			{"East", "100"}, {"West", "200"}, {"East", "300"},
			{"North", "400"}, {"South", "500"},
		},
	)
	v := dataset.NewView(f)

	// One generator serves every session; concurrent draws must be safe.
	gen := newTestGenerator(7)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q, err := gen.Next(v)
				if err != nil {
					t.Errorf("Next failed: %v", err)
					return
				}
				if !contains(q.Options, q.CorrectAnswer()) {
					t.Error("options missing the correct answer")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNextAnsweredColumnComesFromView(t *testing.T) {
	f := dataset.NewFrame(
		[]string{"Revenue"},
		[][]string{{"100"}, {"200"}, {"300"}, {"400"}},
	)
	// Restricting the view changes the statistics the question is built from.
	v := dataset.SubView(dataset.NewView(f), []int{0, 1})

	q, err := newTestGenerator(1).Next(v)
	require.NoError(t, err)
	assert.Equal(t, "150.00", q.CorrectAnswer())
}
