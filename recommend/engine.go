package recommend

import (
	"sort"
	"strings"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/errors"
)

// DefaultK is the number of recommendations when none is asked for.
const DefaultK = 3

var ErrEmptyVocabulary = errors.New("empty vocabulary: documents only contain stop words", errors.Unsupported())

// Similarity scores candidate documents against a profile document.
type Similarity interface {
	Available() bool
	Scores(profile string, candidates []string) ([]float64, error)
}

// Unavailable is the similarity of deployments without text scoring. The
// engine falls back to catalog order when it is used.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Scores(string, []string) ([]float64, error) {
	return nil, errors.New("similarity is not available", errors.Unavailable())
}

// Path tells which strategy produced a recommendation.
type Path string

const (
	PathSimilarity Path = "similarity"
	PathFallback   Path = "no-similarity"
)

type Engine struct {
	similarity Similarity
}

func NewEngine(similarity Similarity) *Engine {
	if similarity == nil {
		similarity = Unavailable{}
	}
	return &Engine{similarity: similarity}
}

// Recommend ranks the approved books that are not saved by their similarity to
// the saved ones and returns the k best, never one with a zero score. It
// returns nothing when there are no saved books.
//
// When the similarity is unavailable, or fails, the first k candidates in
// catalog order are returned instead, and the path is PathFallback.
func (e *Engine) Recommend(saved, approved []bookshelf.Book, k int) ([]bookshelf.Book, Path) {
	if k <= 0 {
		k = DefaultK
	}

	path := PathSimilarity
	if !e.similarity.Available() {
		path = PathFallback
	}

	if len(saved) == 0 {
		return nil, path
	}

	candidates := unsaved(saved, approved)
	if len(candidates) == 0 {
		return nil, path
	}

	if path == PathFallback {
		return firstK(candidates, k), path
	}

	profile := make([]string, len(saved))
	for i, book := range saved {
		profile[i] = document(book)
	}
	docs := make([]string, len(candidates))
	for i, book := range candidates {
		docs[i] = document(book)
	}

	scores, err := e.similarity.Scores(strings.Join(profile, " "), docs)
	if err == ErrEmptyVocabulary {
		return nil, path
	} else if err != nil {
		return firstK(candidates, k), PathFallback
	}

	return rank(candidates, scores, k), path
}

// document is the text of a book used for the comparison.
func document(book bookshelf.Book) string {
	return strings.Join([]string{book.Title, book.Genre, book.Description}, " ")
}

func unsaved(saved, approved []bookshelf.Book) []bookshelf.Book {
	ids := make(map[int]struct{}, len(saved))
	for _, book := range saved {
		ids[book.ID] = struct{}{}
	}

	candidates := make([]bookshelf.Book, 0, len(approved))
	for _, book := range approved {
		if _, ok := ids[book.ID]; !ok {
			candidates = append(candidates, book)
		}
	}
	return candidates
}

type scored struct {
	book  bookshelf.Book
	score float64
}

// rank keeps the candidate order for equal scores.
func rank(candidates []bookshelf.Book, scores []float64, k int) []bookshelf.Book {
	all := make([]scored, len(candidates))
	for i, book := range candidates {
		all[i] = scored{book: book, score: scores[i]}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	books := make([]bookshelf.Book, 0, k)
	for _, s := range all {
		if len(books) == k || s.score <= 0 {
			break
		}
		books = append(books, s.book)
	}
	return books
}

func firstK(books []bookshelf.Book, k int) []bookshelf.Book {
	if len(books) > k {
		books = books[:k]
	}
	return append([]bookshelf.Book(nil), books...)
}
