package similarity

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/go-resume-matcher/internal/errors"
	"github.com/gcbaptista/go-resume-matcher/internal/tokenizer"
)

func TestScore_EmptyInputs(t *testing.T) {
	scorer := NewEnglishScorer()

	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"first empty", "", "anything goes here"},
		{"second empty", "anything goes here", ""},
		{"whitespace only", "   \n\t", "python developer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := scorer.Score(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, 0.0, score)
		})
	}
}

func TestScore_IdenticalText(t *testing.T) {
	scorer := NewEnglishScorer()

	texts := []string{
		"Python developer with React experience",
		"docker",
		"Machine learning engineer, machine learning researcher",
	}

	for _, text := range texts {
		score, err := scorer.Score(text, text)
		require.NoError(t, err)
		assert.Equal(t, 100.0, score, "identical text %q should reach the maximum score", text)
	}
}

func TestScore_KnownValue(t *testing.T) {
	scorer := NewEnglishScorer()

	// vocabulary: developer, engineer, python
	// idf(python) = ln(3/3)+1 = 1, idf(developer) = idf(engineer) = ln(3/2)+1
	// cos = 1 / (1 + idf^2) ≈ 0.3361
	score, err := scorer.Score("Python developer", "Python engineer")
	require.NoError(t, err)

	idf := math.Log(1.5) + 1
	expected := math.Round(100/(1+idf*idf)*100) / 100
	assert.Equal(t, expected, score)
	assert.Equal(t, 33.61, score)
}

func TestScore_NoSharedVocabulary(t *testing.T) {
	scorer := NewEnglishScorer()

	score, err := scorer.Score("gardening tomatoes", "kubernetes clusters")
	require.NoError(t, err, "orthogonal documents are not an error")
	assert.Equal(t, 0.0, score)
}

func TestScore_OneSideOnlyStopWords(t *testing.T) {
	scorer := NewEnglishScorer()

	score, err := scorer.Score("the and of", "python developer")
	require.NoError(t, err, "a zero vector on one side is a degenerate, valid outcome")
	assert.Equal(t, 0.0, score)
}

func TestScore_EmptyVocabulary(t *testing.T) {
	scorer := NewEnglishScorer()

	score, err := scorer.Score("the and of", "!!! ???")
	require.Error(t, err)
	assert.Equal(t, 0.0, score)
	assert.True(t, errors.Is(err, apperrors.ErrComputation))
	assert.True(t, errors.Is(err, apperrors.ErrEmptyVocabulary))
}

func TestScore_Range(t *testing.T) {
	scorer := NewEnglishScorer()

	pairs := [][2]string{
		{"Python developer with 3 years experience in web development using React and Django.",
			"Looking for Python Developer with React experience. Machine Learning knowledge preferred."},
		{"Experienced in Python, AWS, and teamwork", "Looking for Python, Docker, leadership skills"},
		{"a", "b"},
		{"java java java", "java"},
		{"Résumé: ingénieur logiciel", "ingénieur données"},
	}

	for _, p := range pairs {
		score, _ := scorer.Score(p[0], p[1])
		assert.GreaterOrEqual(t, score, MinScore)
		assert.LessOrEqual(t, score, MaxScore)
		assert.Equal(t, score, math.Round(score*100)/100, "score must have at most two decimals")
	}
}

func TestScore_Symmetric(t *testing.T) {
	scorer := NewEnglishScorer()

	a := "Experienced in Python, AWS, and teamwork"
	b := "Looking for Python, Docker, leadership skills"

	ab, err := scorer.Score(a, b)
	require.NoError(t, err)
	ba, err := scorer.Score(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	assert.Greater(t, ab, 0.0)
	assert.Less(t, ab, 100.0)
}

func TestScore_StopWordsIgnored(t *testing.T) {
	scorer := NewEnglishScorer()

	withStopWords, err := scorer.Score("the python developer", "a python developer")
	require.NoError(t, err)
	assert.Equal(t, 100.0, withStopWords)

	noStopWords := NewScorer(tokenizer.NewAnalyzer(nil))
	raw, err := noStopWords.Score("the python developer", "a python developer")
	require.NoError(t, err)
	assert.Less(t, raw, 100.0, "without stop-word removal 'the' makes the documents differ")
}

func TestVectorize(t *testing.T) {
	scorer := NewEnglishScorer()

	model, err := scorer.Vectorize("Python developer", "Python engineer")
	require.NoError(t, err)

	assert.Equal(t, []string{"developer", "engineer", "python"}, model.Vocabulary)
	require.Len(t, model.Vectors, 2)
	assert.InDelta(t, 1.0, model.IDF[model.TermIndex["python"]], 1e-12)
	assert.InDelta(t, math.Log(1.5)+1, model.IDF[model.TermIndex["developer"]], 1e-12)

	for _, vec := range model.Vectors {
		var sum float64
		for _, w := range vec {
			sum += w * w
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "vectors are L2-normalized")
	}
}

func TestCosine(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(Vector{}, Vector{1}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine(Vector{0, 0}, Vector{1, 1}))
	assert.InDelta(t, 1.0, Cosine(Vector{2, 2}, Vector{1, 1}), 1e-12)
	assert.InDelta(t, 0.0, Cosine(Vector{1, 0}, Vector{0, 1}), 1e-12)
	assert.InDelta(t, 1.0, Cosine(Vector{3}, Vector{1, 0}), 1e-12)
}

func TestScore_Concurrent(t *testing.T) {
	scorer := NewEnglishScorer()

	pairs := [][2]string{
		{"Python developer", "Python engineer"},
		{"python developer", "python developer"},
		{"Java developer", "Go engineer"},
		{"the and of", "is a the"},
		{"", "python"},
	}
	want := make([]float64, len(pairs))
	wantErr := make([]bool, len(pairs))
	for i, p := range pairs {
		score, err := scorer.Score(p[0], p[1])
		want[i], wantErr[i] = score, err != nil
	}

	const workers = 32
	got := make([][]float64, workers)
	gotErr := make([][]bool, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			got[w] = make([]float64, len(pairs))
			gotErr[w] = make([]bool, len(pairs))
			for i, p := range pairs {
				score, err := scorer.Score(p[0], p[1])
				got[w][i], gotErr[w][i] = score, err != nil
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 33.61, want[0])
	for w := 0; w < workers; w++ {
		assert.Equal(t, want, got[w], "worker %d", w)
		assert.Equal(t, wantErr, gotErr[w], "worker %d", w)
	}
}
