package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/bobinette/bookshelf/errors"
	"github.com/bobinette/bookshelf/log"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client calls a hosted summarization model speaking the Hugging Face
// inference API. Calls go through a circuit breaker: after repeated failures
// the model is not called for a while and Summarize fails right away.
type Client struct {
	url   string
	token string

	client HTTPClient
	cb     *gobreaker.CircuitBreaker[string]
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MinLength  int  `json:"min_length"`
	MaxLength  int  `json:"max_length"`
	DoSample   bool `json:"do_sample"`
	Truncation bool `json:"truncation"`
}

type response []struct {
	SummaryText string `json:"summary_text"`
}

func NewClient(url, token string, c HTTPClient, logger log.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "summarizer",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		url:   url,
		token: token,

		client: c,
		cb:     cb,
	}
}

func (*Client) Available() bool { return true }

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := c.cb.Execute(func() (string, error) {
		return c.summarize(ctx, text)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return "", errors.New("summarizer is unavailable", errors.Unavailable(), errors.WithCause(err))
	}
	return summary, err
}

func (c *Client) summarize(ctx context.Context, text string) (string, error) {
	body := bytes.Buffer{}
	err := json.NewEncoder(&body).Encode(request{
		Inputs: text,
		Parameters: parameters{
			MinLength:  MinSummaryLength,
			MaxLength:  MaxSummaryLength,
			DoSample:   false,
			Truncation: true,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		data, err := io.ReadAll(res.Body)
		if err != nil {
			return "", err
		}

		return "", errors.New(fmt.Sprintf("summarizer returned %d: %s", res.StatusCode, data))
	}

	var resBody response
	err = json.NewDecoder(res.Body).Decode(&resBody)
	if err != nil {
		return "", err
	}

	if len(resBody) == 0 {
		return "", errors.New("summarizer returned no summary")
	}
	return resBody[0].SummaryText, nil
}
