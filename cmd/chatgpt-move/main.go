package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	appcfg "github.com/park285/chatgpt-move/internal/config"
	"github.com/park285/chatgpt-move/internal/llm"
	"github.com/park285/chatgpt-move/internal/movecache"
	"github.com/park285/chatgpt-move/internal/movequery"
	"github.com/park285/chatgpt-move/internal/obslog"
	"github.com/park285/chatgpt-move/internal/prompt"
	"github.com/park285/chatgpt-move/pkg/movedto"
	"go.uber.org/zap"
)

// chatgpt-move [board]
//
// Prints one line: the model's move "sr sc er ec" or the fallback "0 0 0 0".
// The exit status is always 0.
func main() {
	// Logging is optional; a broken LOG_* setup must not change the output.
	_ = obslog.InitFromEnv()
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	fmt.Fprintln(os.Stdout, run(context.Background(), boardFromArgs(os.Args), os.Getenv, logger))
}

func boardFromArgs(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func run(ctx context.Context, board string, getenv func(string) string, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}
	queryID := uuid.NewString()
	logger = logger.With(zap.String("query_id", queryID))

	cfg, err := appcfg.LoadFrom(getenv)
	if err != nil {
		logger.Debug("config_invalid", zap.Error(err))
		return movedto.FallbackMove
	}

	prompts, err := prompt.New(cfg.PromptDir)
	if err != nil {
		// Query reports the missing catalog after the credential check.
		logger.Debug("prompt_catalog_failed", zap.Error(err))
	}

	factory := func() (llm.Completer, error) {
		return llm.New(llm.Config{
			Backend: cfg.Backend,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
			Headers: func() map[string]string {
				return map[string]string{"X-Client-Request-Id": queryID}
			},
		})
	}

	opts := []movequery.Option{movequery.WithLogger(logger)}
	if cfg.CacheURL != "" && cfg.HasCredential() {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		store, err := movecache.Open(cctx, cfg.CacheURL, cfg.CacheTTL)
		cancel()
		if err != nil {
			logger.Debug("move_cache_unavailable", zap.Error(err))
		} else {
			defer store.Close()
			opts = append(opts, movequery.WithCache(store))
		}
	}

	q := movequery.New(movequery.Config{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}, factory, prompts, opts...)

	return q.GetMove(ctx, board)
}
