package cli

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/engine"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/session"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds configuration values
type config struct {
	logLevel   string
	configPath string
	coding     bool
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("NOCTUA_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML file with session resource limits",
			Sources:     cli.EnvVars("NOCTUA_CONFIG"),
			Destination: &cfg.configPath,
		},
		&cli.BoolFlag{
			Name:        "coding",
			Usage:       "Enable the coding pattern detector",
			Sources:     cli.EnvVars("NOCTUA_CODING"),
			Destination: &cfg.coding,
		},
	}
}

// newEngine creates a new engine instance from the configuration
func (cfg *config) newEngine() (*engine.Engine, error) {
	sessionCfg := model.DefaultSessionConfig()
	if cfg.configPath != "" {
		loaded, err := loadSessionConfig(cfg.configPath)
		if err != nil {
			return nil, err
		}
		sessionCfg = loaded
	}

	opts := []engine.Option{
		engine.WithStore(session.New(session.WithConfig(sessionCfg))),
	}
	if cfg.coding {
		opts = append(opts, engine.WithCodingPatterns())
	}

	return engine.New(opts...), nil
}

// loadSessionConfig reads session resource limits from a YAML file.
// Omitted fields keep their defaults.
func loadSessionConfig(path string) (model.SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SessionConfig{}, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	sessionCfg := model.DefaultSessionConfig()
	if err := yaml.Unmarshal(data, &sessionCfg); err != nil {
		return model.SessionConfig{}, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	if err := sessionCfg.Validate(); err != nil {
		return model.SessionConfig{}, goerr.Wrap(err, "invalid config file", goerr.V("path", path))
	}

	return sessionCfg, nil
}
