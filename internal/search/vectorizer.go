package search

import (
	"math"
	"sort"
)

// Vectorizer turns text into a vector
type Vectorizer interface {
	Fit(docs []string)
	Transform(text string) []float64
}

// TFIDFVectorizer implements Term Frequency - Inverse Document Frequency
// over unigrams and adjacent bigrams, with a bounded vocabulary.
type TFIDFVectorizer struct {
	MaxFeatures int     // vocabulary cap, lowest-df terms pruned first
	MinDF       int     // terms in fewer documents are dropped
	MaxDF       float64 // terms in more than this fraction of documents are dropped

	Vocabulary map[string]int
	IDF        []float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		MaxFeatures: 5000,
		MinDF:       1,
		MaxDF:       0.9,
		Vocabulary:  make(map[string]int),
	}
}

// ngrams extracts candidate terms: every token plus every pair of adjacent
// tokens joined by a single space.
func ngrams(tokens []string) []string {
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// Fit analyzes the corpus to build the bounded vocabulary and IDF stats.
// An empty corpus yields an empty vocabulary; transforms against it produce
// zero-length vectors rather than an error.
func (v *TFIDFVectorizer) Fit(docs []string) {
	docCount := len(docs)

	// 1. Count document frequency per term
	df := make(map[string]int)
	for _, doc := range docs {
		seenInDoc := make(map[string]bool)
		for _, term := range ngrams(Tokenize(doc)) {
			if !seenInDoc[term] {
				df[term]++
				seenInDoc[term] = true
			}
		}
	}

	// 2. Prune by document-frequency bounds
	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count < v.MinDF {
			continue
		}
		if docCount > 0 && float64(count)/float64(docCount) > v.MaxDF {
			continue
		}
		candidates = append(candidates, term)
	}

	// 3. Keep the top MaxFeatures by document frequency. Ties break on
	// ascending term order so the surviving vocabulary is reproducible.
	sort.Slice(candidates, func(i, j int) bool {
		if df[candidates[i]] != df[candidates[j]] {
			return df[candidates[i]] > df[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if v.MaxFeatures > 0 && len(candidates) > v.MaxFeatures {
		candidates = candidates[:v.MaxFeatures]
	}

	// 4. Assign column indices in lexical order and compute smoothed IDF:
	// idf = ln((1+N)/(1+df)) + 1, strictly positive for every term.
	sort.Strings(candidates)
	v.Vocabulary = make(map[string]int, len(candidates))
	v.IDF = make([]float64, len(candidates))
	for i, term := range candidates {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log(float64(1+docCount)/float64(1+df[term])) + 1
	}
}

// Transform converts text to an L2-normalized tf-idf vector in the fitted
// space. It never mutates the vocabulary; terms outside it contribute zero.
func (v *TFIDFVectorizer) Transform(text string) []float64 {
	vector := make([]float64, len(v.Vocabulary))

	tf := make(map[int]float64)
	for _, term := range ngrams(Tokenize(text)) {
		if idx, exists := v.Vocabulary[term]; exists {
			tf[idx]++
		}
	}
	for idx, count := range tf {
		vector[idx] = count * v.IDF[idx]
	}

	// L2 normalize; an all-zero vector stays zero
	var norm float64
	for _, x := range vector {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}

// FitTransform fits the vocabulary on the corpus and returns one row per
// document, all in the fitted space.
func (v *TFIDFVectorizer) FitTransform(docs []string) [][]float64 {
	v.Fit(docs)
	matrix := make([][]float64, len(docs))
	for i, doc := range docs {
		matrix[i] = v.Transform(doc)
	}
	return matrix
}
