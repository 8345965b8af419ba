// Package inference provides the HTTP client for the sentence-embedding
// similarity endpoint used by the remote scorer.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/scholarlink/recommender/internal/errors"
)

// similarityRequest is the wire format the endpoint expects: one source
// sentence compared against a batch of candidate sentences.
type similarityRequest struct {
	Inputs similarityInputs `json:"inputs"`
}

type similarityInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

// Client calls the remote similarity endpoint. Requests are bearer-token
// authenticated and rate limited; failed requests are not retried — a failed
// offer is simply excluded from the accepted set upstream.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an inference client. requestsPerSecond bounds the
// sustained call rate against the external, rate-limited API.
func NewClient(baseURL, token string, timeout time.Duration, requestsPerSecond float64) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Similarity sends one round trip pairing source against sentences and
// returns one score per input sentence. The context bounds the whole call,
// including time spent waiting on the rate limiter.
func (c *Client) Similarity(ctx context.Context, source string, sentences []string) ([]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.NewInferenceError(0, "rate limiter wait aborted", err)
	}

	payload, err := json.Marshal(similarityRequest{
		Inputs: similarityInputs{SourceSentence: source, Sentences: sentences},
	})
	if err != nil {
		return nil, errors.NewInferenceError(0, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewInferenceError(0, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewInferenceError(0, "request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logrus.WithField("component", "inference").Warnf("Failed to close response body: %v", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.NewInferenceError(resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewInferenceError(resp.StatusCode, string(bytes.TrimSpace(body)), nil)
	}

	var scores []float64
	if err := json.Unmarshal(body, &scores); err != nil {
		return nil, errors.NewInferenceError(resp.StatusCode, "unexpected response format", err)
	}

	if len(scores) != len(sentences) {
		return nil, errors.NewInferenceError(resp.StatusCode,
			fmt.Sprintf("expected %d scores, got %d", len(sentences), len(scores)), nil)
	}

	return scores, nil
}
