package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrTimeout            = errors.New("ollama request timed out")
	ErrServiceUnavailable = errors.New("ollama service unavailable")
)

type IOllama interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Health(ctx context.Context) error
}

type ollamaClient struct {
	config     Config
	httpClient *http.Client
	slots      chan struct{}
	log        *logrus.Logger
}

// New builds a bridge instance with a bounded worker pool. The pool size
// caps concurrent outbound calls; there is no queue beyond the slot
// channel, so a saturated pool surfaces as a timeout to the caller.
func New(config Config, log *logrus.Logger) IOllama {
	workers := config.Workers
	if workers <= 0 {
		workers = 3
	}

	return &ollamaClient{
		config: config,
		httpClient: &http.Client{
			// the underlying call may outlive an abandoned caller; this
			// bound keeps stray goroutines from living forever
			Timeout: 2 * config.Timeout,
		},
		slots: make(chan struct{}, workers),
		log:   log,
	}
}

type generateRequest struct {
	Model       string          `json:"model"`
	Prompt      string          `json:"prompt"`
	Stream      bool            `json:"stream"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system"`
	Format      string          `json:"format"`
	Options     generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate schedules the outbound call on the worker pool and waits at
// most the configured deadline. On expiry the wait is abandoned and any
// in-flight network result is discarded.
func (c *ollamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	deadline := time.NewTimer(c.config.Timeout)
	defer deadline.Stop()

	select {
	case c.slots <- struct{}{}:
	case <-deadline.C:
		c.log.WithFields(logrus.Fields{
			"timeout": c.config.Timeout.String(),
		}).Warn("Ollama worker pool saturated, request timed out")
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ErrTimeout
	}

	type outcome struct {
		text string
		err  error
	}
	results := make(chan outcome, 1)

	go func() {
		defer func() { <-c.slots }()
		text, err := c.post(prompt)
		results <- outcome{text: text, err: err}
	}()

	select {
	case result := <-results:
		return result.text, result.err
	case <-deadline.C:
		c.log.WithFields(logrus.Fields{
			"timeout": c.config.Timeout.String(),
			"model":   c.config.Model,
		}).Warn("Ollama request timed out, abandoning in-flight call")
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ErrTimeout
	}
}

func (c *ollamaClient) post(prompt string) (string, error) {
	payload := generateRequest{
		Model:       c.config.Model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: c.config.Temperature,
		System:      "You are a JSON output generator. Always respond with valid JSON only, no explanations.",
		Format:      "json",
		Options: generateOptions{
			NumPredict:  300,
			Temperature: c.config.Temperature,
			TopP:        0.9,
			TopK:        40,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := c.httpClient.Post(
		fmt.Sprintf("%s/api/generate", c.config.URL),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"url":   c.config.URL,
			"error": err.Error(),
		}).Error("Ollama connection failed")
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
		}).Error("Ollama returned non-OK status")
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("%w: undecodable envelope", ErrServiceUnavailable)
	}

	return envelope.Response, nil
}

// Health probes the Ollama server root with a short deadline.
func (c *ollamaClient) Health(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.config.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
