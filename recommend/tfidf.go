package recommend

import (
	"math"
)

// Tokenizer splits a document into terms. Terms are expected to be normalized
// (case, stop words) already.
type Tokenizer interface {
	Tokens(string) []string
}

// TFIDF scores documents with the cosine similarity of their tf-idf vectors.
// Weights are raw term counts times a smoothed idf, ln((1+n)/(1+df)) + 1,
// and vectors are l2 normalized.
type TFIDF struct {
	tokenizer Tokenizer
}

func NewTFIDF(tokenizer Tokenizer) *TFIDF {
	return &TFIDF{tokenizer: tokenizer}
}

func (*TFIDF) Available() bool { return true }

// Scores returns the similarity of every candidate to profile. The vocabulary
// is built from all the documents. ErrEmptyVocabulary is returned when no
// document has a single usable term.
func (s *TFIDF) Scores(profile string, candidates []string) ([]float64, error) {
	docs := make([]map[string]float64, 0, len(candidates)+1)
	df := make(map[string]int)

	for _, text := range append([]string{profile}, candidates...) {
		counts := make(map[string]float64)
		for _, term := range s.tokenizer.Tokens(text) {
			counts[term]++
		}
		for term := range counts {
			df[term]++
		}
		docs = append(docs, counts)
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	for _, doc := range docs {
		weigh(doc, idf)
	}

	scores := make([]float64, len(candidates))
	for i, doc := range docs[1:] {
		scores[i] = dot(docs[0], doc)
	}
	return scores, nil
}

// weigh replaces the counts of doc by their normalized tf-idf weights.
func weigh(doc map[string]float64, idf map[string]float64) {
	norm := 0.0
	for term, count := range doc {
		w := count * idf[term]
		doc[term] = w
		norm += w * w
	}

	if norm == 0 {
		return
	}

	norm = math.Sqrt(norm)
	for term := range doc {
		doc[term] /= norm
	}
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}

	sum := 0.0
	for term, w := range a {
		sum += w * b[term]
	}
	return sum
}
