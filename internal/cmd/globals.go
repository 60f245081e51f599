package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/config"
	"github.com/gravitrone/rxmart/internal/logging"
)

// Globals are the persistent root flags every subcommand reads.
type Globals struct {
	Verbose  bool
	BaseURL  string
	LogLevel string
}

// Bind registers the persistent flags on root.
func (g *Globals) Bind(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "log debug output")
	flags.StringVar(&g.BaseURL, "base-url", "", "API base URL (overrides config and "+config.EnvBaseURL+")")
	flags.StringVar(&g.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Config loads ~/.rxmart/config, or defaults when it does not exist, and
// applies flag overrides.
func (g *Globals) Config() (*config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	if g.BaseURL != "" {
		cfg.BaseURL = g.BaseURL
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds the logger for cfg. An empty file logs to stderr.
func (g *Globals) Logger(cfg *config.Config, file string) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    file,
		Verbose: g.Verbose,
	})
}

// NewClient builds the API client described by cfg.
func NewClient(cfg *config.Config, logger *zap.Logger) *api.Client {
	return api.NewClient(cfg.BaseURL, cfg.APIKey,
		api.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		api.WithLogger(logger),
	)
}

type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
}

// open prepares one command run. Commands that take over the terminal log
// to a file; the rest log to stderr.
func (g *Globals) open(tui bool) (*session, error) {
	cfg, err := g.Config()
	if err != nil {
		return nil, err
	}
	logFile := ""
	if tui {
		logFile = TUILogFile(cfg)
	}
	logger, err := g.Logger(cfg, logFile)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, client: NewClient(cfg, logger)}, nil
}

// TUILogFile is where interactive runs write their log.
func TUILogFile(cfg *config.Config) string {
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	return logging.DefaultFile()
}

func (s *session) close() {
	_ = s.logger.Sync()
}
