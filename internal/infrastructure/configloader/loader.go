package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// EthereumConfig holds the server registry settings.
type EthereumConfig struct {
	// CurrentServer is the id of the default server.
	CurrentServer string `yaml:"currentServer"`
	ServersFile   string `yaml:"serversFile"`
	NetworksFile  string `yaml:"networksFile"`
	ChainlistURL  string `yaml:"chainlistURL"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines    int     `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds    int     `yaml:"rpc_call_timeout_seconds"`
	ConnectionTimeoutSeconds int     `yaml:"connection_timeout_seconds"`
	ProbesPerSecond          float64 `yaml:"probes_per_second"`
	ProbeBurst               int     `yaml:"probe_burst"`
}

// CacheConfig holds configuration for the validation result cache.
type CacheConfig struct {
	ValidationTTLSeconds   int `yaml:"validationTTLSeconds"`
	CleanupIntervalSeconds int `yaml:"cleanupIntervalSeconds"`
}

// CORSConfig holds CORS settings for the REST API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Ethereum    EthereumConfig    `yaml:"ethereum"`
	Performance PerformanceConfig `yaml:"performance"`
	Cache       CacheConfig       `yaml:"cache"`
	CORS        CORSConfig        `yaml:"cors"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML configuration data and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults заполняет нулевые значения значениями по умолчанию и пишет об этом в лог.
func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 120
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Ethereum.ServersFile == "" {
		cfg.Ethereum.ServersFile = "data/servers.yml"
		logrus.Infof("Ethereum.ServersFile not set, defaulting to %s", cfg.Ethereum.ServersFile)
	}
	if cfg.Ethereum.CurrentServer == "" {
		logrus.Warn("Ethereum.CurrentServer not set, no server will be reported as default")
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
		logrus.Infof("Performance.MaxConcurrentRoutines not set, defaulting to %d", cfg.Performance.MaxConcurrentRoutines)
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
		logrus.Infof("Performance.RPCCallTimeoutSeconds not set, defaulting to %d seconds", cfg.Performance.RPCCallTimeoutSeconds)
	}
	// по умолчанию соединение ограничено тем же таймаутом, что и вызов
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = cfg.Performance.RPCCallTimeoutSeconds
	}
	if cfg.Performance.ProbesPerSecond <= 0 {
		cfg.Performance.ProbesPerSecond = 20
	}
	if cfg.Performance.ProbeBurst <= 0 {
		cfg.Performance.ProbeBurst = cfg.Performance.MaxConcurrentRoutines
	}

	if cfg.Cache.ValidationTTLSeconds <= 0 {
		cfg.Cache.ValidationTTLSeconds = 300
		logrus.Infof("Cache.ValidationTTLSeconds not set, defaulting to %d seconds", cfg.Cache.ValidationTTLSeconds)
	}
	if cfg.Cache.CleanupIntervalSeconds <= 0 {
		cfg.Cache.CleanupIntervalSeconds = 600
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
}
