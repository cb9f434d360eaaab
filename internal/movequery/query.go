package movequery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/park285/chatgpt-move/internal/llm"
	"github.com/park285/chatgpt-move/internal/movecache"
	"github.com/park285/chatgpt-move/internal/prompt"
	"github.com/park285/chatgpt-move/pkg/movedto"
	"go.uber.org/zap"
)

// Factory builds the completion client. It is only invoked once a credential
// is known to be present.
type Factory func() (llm.Completer, error)

// Cache stores trimmed answers by prompt fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, move string) error
}

type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}

type Querier struct {
	cfg     Config
	factory Factory
	prompts *prompt.Catalog
	cache   Cache
	logger  *zap.Logger
}

type Option func(*Querier)

func WithCache(c Cache) Option {
	return func(q *Querier) { q.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(q *Querier) {
		if l != nil {
			q.logger = l
		}
	}
}

func New(cfg Config, factory Factory, prompts *prompt.Catalog, opts ...Option) *Querier {
	q := &Querier{cfg: cfg, factory: factory, prompts: prompts, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// GetMove returns the model's trimmed answer for board, or movedto.FallbackMove.
func (q *Querier) GetMove(ctx context.Context, board string) string {
	return q.Query(ctx, board).Move
}

// Query runs the single request and reports which terminal state was reached.
// It never returns an error; every failure becomes a fallback outcome.
func (q *Querier) Query(ctx context.Context, board string) (out movedto.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = movedto.Fallback(movedto.CodeRequestFailed, fmt.Sprintf("panic: %v", r), 0)
		}
		q.log(out)
	}()

	if strings.TrimSpace(q.cfg.APIKey) == "" {
		return movedto.Fallback(movedto.CodeNoCredential, "no api key configured", 0)
	}

	if q.factory == nil {
		return movedto.Fallback(movedto.CodeClientUnavailable, "no completion client", 0)
	}
	client, err := q.factory()
	if err != nil || client == nil {
		return movedto.Fallback(movedto.CodeClientUnavailable, errText(err, "no completion client"), 0)
	}

	if q.prompts == nil {
		return movedto.Fallback(movedto.CodePromptFailed, "no prompt catalog", 0)
	}
	system, user, err := q.prompts.Move(board)
	if err != nil {
		return movedto.Fallback(movedto.CodePromptFailed, err.Error(), 0)
	}

	key := movecache.Key(q.cfg.Model, q.cfg.MaxTokens, q.cfg.Temperature, system, user)
	if q.cache != nil {
		move, ok, err := q.cache.Get(ctx, key)
		if err != nil {
			q.logger.Debug("move_cache_get_failed", zap.Error(err))
		} else if ok {
			return movedto.Success(move, true)
		}
	}

	raw, err := client.Complete(ctx, llm.Request{
		Model: q.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
		MaxTokens:   q.cfg.MaxTokens,
		Temperature: q.cfg.Temperature,
	})
	if err != nil {
		return classify(err)
	}

	move := strings.TrimSpace(raw)
	if q.cache != nil {
		if err := q.cache.Put(ctx, key, move); err != nil {
			q.logger.Debug("move_cache_put_failed", zap.Error(err))
		}
	}
	return movedto.Success(move, false)
}

func (q *Querier) log(out movedto.Outcome) {
	if out.Fallback && out.Err != nil {
		q.logger.Debug("move_fallback",
			zap.String("code", out.Err.Code),
			zap.Int("status", out.Err.Status),
			zap.String("reason", out.Err.Message),
		)
		return
	}
	q.logger.Debug("move_answer", zap.String("move", out.Move), zap.Bool("cached", out.Cached))
}

func classify(err error) movedto.Outcome {
	var se *llm.StatusError
	switch {
	case errors.As(err, &se):
		code := movedto.CodeAPIError
		switch se.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = movedto.CodeAuthRejected
		case http.StatusTooManyRequests:
			code = movedto.CodeRateLimited
		}
		return movedto.Fallback(code, err.Error(), se.Status)
	case errors.Is(err, llm.ErrEmptyChoices):
		return movedto.Fallback(movedto.CodeEmptyChoices, err.Error(), 0)
	case errors.Is(err, llm.ErrMalformedResponse):
		return movedto.Fallback(movedto.CodeMalformedResponse, err.Error(), 0)
	case llm.IsTimeout(err):
		return movedto.Fallback(movedto.CodeTimeout, err.Error(), 0)
	default:
		return movedto.Fallback(movedto.CodeRequestFailed, err.Error(), 0)
	}
}

func errText(err error, def string) string {
	if err == nil {
		return def
	}
	return err.Error()
}
