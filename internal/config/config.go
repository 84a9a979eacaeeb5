package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultPath = "config/local.yaml"

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	Log        LogConfig        `yaml:"log"`
	HTTP       HTTPConfig       `yaml:"http"`
	BCP        BCPConfig        `yaml:"bcp"`
	T3         T3Config         `yaml:"t3"`
	Browser    BrowserConfig    `yaml:"browser"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Jaeger     JaegerConfig     `yaml:"jaeger"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"PORT" env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type BCPConfig struct {
	BaseURL  string        `yaml:"base_url" env:"BCP_BASE_URL"`
	Timeout  time.Duration `yaml:"timeout" env:"BCP_TIMEOUT" env-default:"10s"`
	PageSize int           `yaml:"page_size" env:"BCP_PAGE_SIZE" env-default:"100"`
	MaxPages int           `yaml:"max_pages" env:"BCP_MAX_PAGES" env-default:"15"`
}

type T3Config struct {
	SearchURL string        `yaml:"search_url" env:"T3_SEARCH_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"T3_TIMEOUT" env-default:"10s"`
}

type BrowserConfig struct {
	RemoteURL   string        `yaml:"remote_url" env:"BROWSER_REMOTE_URL"`
	// Headless defaults to true; a false in the file reads as unset, so
	// headful mode needs BROWSER_HEADLESS=false.
	Headless    bool          `yaml:"headless" env:"BROWSER_HEADLESS" env-default:"true"`
	WaitTimeout time.Duration `yaml:"wait_timeout" env:"BROWSER_WAIT_TIMEOUT" env-default:"30s"`
}

type AggregatorConfig struct {
	// LookupConcurrency bounds parallel nickname lookups; 0 means unbounded.
	LookupConcurrency int `yaml:"lookup_concurrency" env:"LOOKUP_CONCURRENCY" env-default:"0"`
}

type JaegerConfig struct {
	// Address of the collector; empty disables span export.
	Address string `yaml:"address" env:"JAEGER_ADDRESS"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// Load reads configPath when it exists and falls back to environment
// variables and defaults otherwise.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if configPath != DefaultPath {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read the config from env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read the config: %w", err)
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	return ResolvePath(res)
}

// ResolvePath applies the CONFIG_PATH and default fallbacks to an explicit
// path.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return DefaultPath
}
