package bleve

import (
	"errors"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/analysis/token/length"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/tokenizer/unicode"
)

const (
	AnalyzerName = "bookshelf_en"

	minLengthFilterName = "bookshelf_min_length"
)

// Analyzer turns free text into the terms used to compare books: unicode
// words, lower cased, without english stop words and single characters.
type Analyzer struct {
	analyzer *analysis.Analyzer
}

func NewAnalyzer() (*Analyzer, error) {
	m := bleve.NewIndexMapping()

	err := m.AddCustomTokenFilter(minLengthFilterName, map[string]interface{}{
		"type": length.Name,
		"min":  2.0,
	})
	if err != nil {
		return nil, err
	}

	err = m.AddCustomAnalyzer(AnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicode.Name,
		"token_filters": []string{
			lowercase.Name,
			en.StopName,
			minLengthFilterName,
		},
	})
	if err != nil {
		return nil, err
	}

	analyzer := m.AnalyzerNamed(AnalyzerName)
	if analyzer == nil {
		return nil, errors.New("could not build analyzer " + AnalyzerName)
	}

	return &Analyzer{analyzer: analyzer}, nil
}

// Tokens returns the terms of text, in order and with repetitions.
func (a *Analyzer) Tokens(text string) []string {
	stream := a.analyzer.Analyze([]byte(text))

	tokens := make([]string, len(stream))
	for i, token := range stream {
		tokens[i] = string(token.Term)
	}
	return tokens
}
