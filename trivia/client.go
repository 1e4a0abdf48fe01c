package trivia

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the trivia API endpoint returning a json array with one random question
	DefaultEndpoint = "https://jservice.io/api/random"

	// DefaultTimeout is the default timeout of a question fetch
	DefaultTimeout = time.Duration(10) * time.Second

	// maxPayloadSize caps how much of a response body gets read
	maxPayloadSize = 1 << 20
)

// Client fetches questions from a trivia API over http
type Client struct {
	endpoint           string
	timeout            time.Duration
	insecureSkipVerify bool
	httpClient         *http.Client
}

// Option defines an option for the trivia Client
type Option func(*Client)

// OptionEndpoint sets the url of the trivia API endpoint
func OptionEndpoint(endpoint string) func(*Client) {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// OptionTimeout sets the timeout of each question fetch. A zero value means no timeout
func OptionTimeout(timeout time.Duration) func(*Client) {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// OptionInsecureSkipVerify disables verification of the trivia API's TLS certificate
func OptionInsecureSkipVerify(skip bool) func(*Client) {
	return func(c *Client) {
		c.insecureSkipVerify = skip
	}
}

// OptionHTTPClient sets the http client to use. When set, OptionTimeout and OptionInsecureSkipVerify
// are ignored
func OptionHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new trivia Client
func NewClient(options ...Option) (c *Client) {
	c = new(Client)
	c.endpoint = DefaultEndpoint
	c.timeout = DefaultTimeout

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if c.insecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}

		c.httpClient = &http.Client{Timeout: c.timeout, Transport: transport}
	}

	return c
}

// FetchRandomQuestion fetches a random question from the trivia API. The first element of the
// returned array is used and must have its id, question and answer set
func (c *Client) FetchRandomQuestion(ctx context.Context) (q Question, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Question{}, newNetworkFailure(err, "invalid request to [%s]", c.endpoint)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Question{}, newNetworkFailure(errors.Wrapf(err, "failed to get [%s]", c.endpoint), "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Question{}, newNetworkFailure(nil, "unexpected status [%d] from [%s]", resp.StatusCode, c.endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return Question{}, newNetworkFailure(errors.Wrap(err, "failed to read response body"), "incomplete response from [%s]", c.endpoint)
	}

	return parseQuestion(body)
}

// parseQuestion parses the first question of a trivia API json array
func parseQuestion(payload []byte) (q Question, err error) {
	var questions []Question
	if err := json.Unmarshal(payload, &questions); err != nil {
		return Question{}, newCorruptPayload(err, "payload isn't a json array of questions")
	}

	if len(questions) == 0 {
		return Question{}, newCorruptPayload(nil, "payload has no question")
	}

	q = questions[0]
	if !q.isComplete() {
		return Question{}, newCorruptPayload(nil, "question is missing one of id, question or answer: %+v", q)
	}

	return q, nil
}
