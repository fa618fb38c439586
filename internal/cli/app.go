package cli

import (
	"io"
	"os"

	"github.com/HartBrook/lyra/internal/config"
	"github.com/HartBrook/lyra/internal/draft"
	"github.com/HartBrook/lyra/internal/eval"
	"github.com/HartBrook/lyra/internal/history"
	"github.com/HartBrook/lyra/internal/llm"
	"github.com/HartBrook/lyra/internal/logging"
	"github.com/HartBrook/lyra/internal/optimize"
	"go.uber.org/zap"
)

// clientFactory matches llm.New so tests can substitute fake models.
type clientFactory func(provider string, opts ...llm.Option) (llm.Client, error)

// app carries what every command needs: paths, config, logger, and model clients.
// Config and logger are loaded on first use.
type app struct {
	paths     *config.Paths
	workDir   string
	stdin     io.Reader
	stderr    io.Writer
	newClient clientFactory
	logLevel  string

	// tokens overrides the candidate token counter when set.
	tokens optimize.TokenCounter

	cfg    *config.Config
	logger *zap.Logger
}

func defaultApp() *app {
	wd, _ := os.Getwd()
	return &app{
		paths:     config.NewPaths(),
		workDir:   wd,
		stdin:     os.Stdin,
		stderr:    os.Stderr,
		newClient: llm.New,
	}
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.LoadOrDefault(a.paths)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// log returns the logger at the configured level. format overrides the config when set.
func (a *app) log(format string) (*zap.Logger, error) {
	if a.logger != nil {
		return a.logger, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if format == "" {
		format = cfg.Log.Format
	}

	logger, err := logging.New(level, format, a.stderr)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	return logger, nil
}

// client creates a model client for one role (generation or judge).
// The API key comes from .env in the working directory, then the environment.
func (a *app) client(role config.ModelConfig) (llm.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return a.newClient(cfg.Provider,
		llm.WithAPIKey(config.APIKey(llm.EnvVar(cfg.Provider), a.workDir)),
		llm.WithBaseURL(cfg.BaseURL),
		llm.WithModel(role.Model),
		llm.WithTemperature(role.Temperature),
		llm.WithMaxTokens(role.MaxTokens),
	)
}

func (a *app) generator() (*optimize.Generator, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	logger, err := a.log("")
	if err != nil {
		return nil, err
	}
	client, err := a.client(cfg.Generation)
	if err != nil {
		return nil, err
	}
	opts := []optimize.GeneratorOption{optimize.WithLogger(logger)}
	if a.tokens != nil {
		opts = append(opts, optimize.WithExtractor(optimize.NewExtractor(a.tokens)))
	}
	return optimize.NewGenerator(client, opts...), nil
}

func (a *app) judge() (*eval.Judge, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	logger, err := a.log("")
	if err != nil {
		return nil, err
	}
	client, err := a.client(cfg.Judge)
	if err != nil {
		return nil, err
	}
	return eval.NewJudge(client, eval.WithLogger(logger)), nil
}

func (a *app) drafts() *draft.Store {
	return draft.NewStore(a.paths)
}

func (a *app) history() (*history.Store, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.History.Path), nil
}
