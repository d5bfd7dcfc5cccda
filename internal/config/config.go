// Package config loads application configuration from file, environment, and
// defaults, and owns the global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/bracket-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Sim    SimConfig    `yaml:"sim" mapstructure:"sim"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string            `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// DataConfig locates the season/bracket fixtures and the name-normalization
// dictionaries.
type DataConfig struct {
	FixtureDir string `yaml:"fixture_dir" mapstructure:"fixture_dir"`
	// NamesFile overrides the built-in name dictionaries when set.
	NamesFile string `yaml:"names_file" mapstructure:"names_file"`
}

// SimConfig configures the simulation itself.
type SimConfig struct {
	// TrainYears are the historical tournaments the transformer is fit on.
	TrainYears []int `yaml:"train_years" mapstructure:"train_years"`
	// UpsetCutoff is the probability threshold above which a matchup reads
	// as an upset.
	UpsetCutoff float64 `yaml:"upset_cutoff" mapstructure:"upset_cutoff"`
	// UpsetProbability drives the built-in constant-probability stub when no
	// external model is wired in.
	UpsetProbability float64 `yaml:"upset_probability" mapstructure:"upset_probability"`
	// Classifier selects the prediction backend: "favorite", "threshold",
	// or "seedgap".
	Classifier string `yaml:"classifier" mapstructure:"classifier"`
	// MaxConcurrentYears bounds parallel simulations in batch mode.
	MaxConcurrentYears int `yaml:"max_concurrent_years" mapstructure:"max_concurrent_years"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BRACKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "bracket.db")
	v.SetDefault("data.fixture_dir", "data")
	v.SetDefault("sim.upset_cutoff", 0.5)
	v.SetDefault("sim.upset_probability", 0.25)
	v.SetDefault("sim.classifier", "favorite")
	v.SetDefault("sim.max_concurrent_years", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
