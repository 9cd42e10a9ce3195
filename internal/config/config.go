package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the askdex API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Generation GenerationConfig `yaml:"generation"`
	Scope      ScopeConfig      `yaml:"scope"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Records    RecordsConfig    `yaml:"records"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds record storage settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// GenerationConfig holds text-generation settings.
type GenerationConfig struct {
	Providers map[string]ProviderConfig `yaml:"providers"`
	Generator GeneratorConfig           `yaml:"generator"`
}

// ProviderConfig holds generation provider connection settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// GeneratorConfig holds model and answer cache settings.
type GeneratorConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Instruction string  `yaml:"instruction"`   // optional text prepended to every prompt
	CacheTTLSec int     `yaml:"cache_ttl_sec"` // 0 disables the answer cache
}

// ScopeConfig holds the domain keyword lists for scope classification.
// Domain order matters: the first matching domain wins.
type ScopeConfig struct {
	Domains []DomainConfig `yaml:"domains"`
}

// DomainConfig is one recognized question category with its keyword list.
type DomainConfig struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// RetrievalConfig holds retrieval and answer composition settings.
type RetrievalConfig struct {
	TopK               int     `yaml:"top_k"`
	GroundedConfidence float64 `yaml:"grounded_confidence"`
}

// RecordsConfig declares the record field schema.
type RecordsConfig struct {
	Required   []string `yaml:"required"`
	Optional   []string `yaml:"optional"`
	Searchable []string `yaml:"searchable"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Generation.Generator.MaxTokens <= 0 {
		c.Generation.Generator.MaxTokens = 512
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 3
	}
	if c.Retrieval.GroundedConfidence <= 0 {
		c.Retrieval.GroundedConfidence = 0.85
	}
	if len(c.Scope.Domains) == 0 {
		c.Scope.Domains = []DomainConfig{{
			Category: "people",
			Keywords: []string{
				"who", "person", "people", "leader", "leadership", "executive",
				"role", "team", "department", "ceo", "cto", "cfo", "coo",
				"founder", "director", "manager", "head",
			},
		}}
	}
	if len(c.Records.Required) == 0 {
		c.Records.Required = []string{"name", "role", "department", "bio"}
	}
	if len(c.Records.Optional) == 0 {
		c.Records.Optional = []string{"email", "photo_url"}
	}
	if len(c.Records.Searchable) == 0 {
		c.Records.Searchable = c.Records.Required
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Database.Driver {
	case "memory":
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("database.driver must be \"memory\" or \"redis\", got %q", c.Database.Driver)
	}

	if p := c.Generation.Generator.Provider; p != "" {
		if _, ok := c.Generation.Providers[p]; !ok {
			return fmt.Errorf("generation.generator.provider %q has no matching entry in generation.providers", p)
		}
	}
	if tmp := c.Generation.Generator.Temperature; tmp < 0 || tmp > 2 {
		return fmt.Errorf("generation.generator.temperature must be in [0, 2], got %v", tmp)
	}

	for i, d := range c.Scope.Domains {
		if d.Category == "" {
			return fmt.Errorf("scope.domains[%d].category is required", i)
		}
		if len(d.Keywords) == 0 {
			return fmt.Errorf("scope.domains[%d] (%s) has no keywords", i, d.Category)
		}
	}

	if c.Retrieval.GroundedConfidence > 1 {
		return fmt.Errorf("retrieval.grounded_confidence must be at most 1, got %v", c.Retrieval.GroundedConfidence)
	}

	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
