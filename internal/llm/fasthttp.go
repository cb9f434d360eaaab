package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/park285/chatgpt-move/internal/llmfast"
)

type fastHTTPCompleter struct {
	client *llmfast.Client
}

func newFastHTTP(cfg Config) (*fastHTTPCompleter, error) {
	opts := []llmfast.Option{llmfast.WithTimeout(cfg.Timeout)}
	if cfg.Headers != nil {
		opts = append(opts, llmfast.WithHeaderProvider(cfg.Headers))
	}
	client, err := llmfast.NewClient(cfg.BaseURL, cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	return &fastHTTPCompleter{client: client}, nil
}

func (f *fastHTTPCompleter) Complete(ctx context.Context, req Request) (string, error) {
	msgs := make([]llmfast.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, llmfast.ChatMessage{Role: m.Role, Content: m.Content})
	}
	resp, err := f.client.CreateChatCompletion(ctx, llmfast.ChatRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *llmfast.APIError
		switch {
		case errors.As(err, &apiErr):
			return "", &StatusError{Status: apiErr.Status, Err: err}
		case errors.Is(err, llmfast.ErrDecode):
			return "", errors.Join(ErrMalformedResponse, err)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyChoices
	}
	msg := resp.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("%w: first choice has no message content", ErrMalformedResponse)
	}
	return *msg.Content, nil
}
