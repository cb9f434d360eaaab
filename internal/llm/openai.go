package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openAICompleter struct {
	client *openai.Client
}

func newOpenAI(cfg Config) (*openAICompleter, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if u, err := url.Parse(base); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = base
	if cfg.Headers != nil {
		// No Timeout: the SDK's default client behaviour is kept.
		oc.HTTPClient = &http.Client{Transport: &headerTransport{base: http.DefaultTransport, headers: cfg.Headers}}
	}
	return &openAICompleter{client: openai.NewClientWithConfig(oc)}, nil
}

func (o *openAICompleter) Complete(ctx context.Context, req Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	temp := req.Temperature
	if temp == 0 {
		// Temperature is omitempty in the SDK; zero would fall back to the server default.
		temp = math.SmallestNonzeroFloat32
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: temp,
	})
	if err != nil {
		var (
			apiErr  *openai.APIError
			reqErr  *openai.RequestError
			synErr  *json.SyntaxError
			typeErr *json.UnmarshalTypeError
		)
		switch {
		case errors.As(err, &apiErr):
			return "", &StatusError{Status: apiErr.HTTPStatusCode, Err: err}
		case errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0:
			return "", &StatusError{Status: reqErr.HTTPStatusCode, Err: err}
		case errors.As(err, &synErr), errors.As(err, &typeErr):
			return "", errors.Join(ErrMalformedResponse, err)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyChoices
	}
	// The SDK decodes an absent message to its zero value. A null content is
	// indistinguishable from "" here.
	msg := resp.Choices[0].Message
	if msg.Role == "" {
		return "", fmt.Errorf("%w: first choice has no message", ErrMalformedResponse)
	}
	return msg.Content, nil
}

type headerTransport struct {
	base    http.RoundTripper
	headers func() map[string]string
}

func (h *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	for k, v := range h.headers() {
		if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
			r.Header.Set(k, v)
		}
	}
	return h.base.RoundTrip(r)
}
