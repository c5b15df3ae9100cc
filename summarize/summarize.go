package summarize

import (
	"context"
	"unicode/utf8"

	"github.com/bobinette/bookshelf/errors"
	"github.com/bobinette/bookshelf/log"
)

const (
	// MaxInputLength is the number of characters of a text sent to the model.
	MaxInputLength = 2000

	// MinTextLength is the number of characters under which a text is not
	// worth summarizing.
	MinTextLength = 50

	// Bounds of the generated summary, in model tokens.
	MinSummaryLength = 50
	MaxSummaryLength = 150
)

const (
	MessageUnavailable = "AI summary is unavailable on this server."
	MessageTooShort    = "Not enough text to generate a summary."
	MessageFailed      = "An error occurred while generating the summary."
)

type Summarizer interface {
	Available() bool
	Summarize(ctx context.Context, text string) (string, error)
}

// Unavailable is the summarizer of deployments without a summarization model.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Summarize(context.Context, string) (string, error) {
	return "", errors.New("summarization is not available", errors.Unavailable())
}

// Service wraps a summarizer so that summarizing never fails: errors and
// missing capability are turned into a message for the reader.
type Service struct {
	summarizer Summarizer
	logger     log.Logger
}

func NewService(summarizer Summarizer, logger log.Logger) *Service {
	if summarizer == nil {
		summarizer = Unavailable{}
	}

	return &Service{
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *Service) Available() bool {
	return s.summarizer.Available()
}

// Summarize returns a summary of the first MaxInputLength characters of text,
// or one of the Message* texts.
func (s *Service) Summarize(ctx context.Context, text string) string {
	if !s.summarizer.Available() {
		return MessageUnavailable
	}

	if utf8.RuneCountInString(text) < MinTextLength {
		return MessageTooShort
	}

	summary, err := s.summarizer.Summarize(ctx, truncate(text, MaxInputLength))
	if err != nil {
		s.logger.Errorf("could not summarize text: %v", err)
		return MessageFailed
	}

	return summary
}

// truncate keeps the first n runes of text.
func truncate(text string, n int) string {
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}
