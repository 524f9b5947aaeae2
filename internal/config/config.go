package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration. It is loaded once at process
// start and passed by pointer into constructors; nothing reads it globally.
type Config struct {
	App     App     `mapstructure:"app"`
	Search  Search  `mapstructure:"search"`
	LLM     LLM     `mapstructure:"llm"`
	Extract Extract `mapstructure:"extract"`
	Parser  Parser  `mapstructure:"parser"`
	Logging Logging `mapstructure:"logging"`
	Server  Server  `mapstructure:"server"`
}

// App holds general run configuration
type App struct {
	City       string        `mapstructure:"city"`
	Language   string        `mapstructure:"language"`
	Mode       string        `mapstructure:"mode"` // grounded or ungrounded
	RunTimeout time.Duration `mapstructure:"run_timeout"`
	ConfigFile string        `mapstructure:"config_file"`
}

// Search holds search provider configuration
type Search struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	SearchDepth     string          `mapstructure:"search_depth"`
	MaxResults      int             `mapstructure:"max_results"`
	Timeout         time.Duration   `mapstructure:"timeout"`
	Parallel        bool            `mapstructure:"parallel"`
	Providers       SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search providers
type SearchProviders struct {
	Tavily     TavilyConfig       `mapstructure:"tavily"`
	Google     GoogleSearchConfig `mapstructure:"google"`
	SerpAPI    SerpAPIConfig      `mapstructure:"serpapi"`
	DuckDuckGo DuckDuckGoConfig   `mapstructure:"duckduckgo"`
}

// TavilyConfig holds Tavily configuration
type TavilyConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// GoogleSearchConfig holds Google Custom Search configuration
type GoogleSearchConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SearchID string `mapstructure:"search_id"`
	BaseURL  string `mapstructure:"base_url"`
}

// SerpAPIConfig holds SerpAPI configuration
type SerpAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// DuckDuckGoConfig holds DuckDuckGo configuration
type DuckDuckGoConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// LLM holds completion provider configuration
type LLM struct {
	DefaultProvider string           `mapstructure:"default_provider"`
	Temperature     float64          `mapstructure:"temperature"`
	OpenRouter      OpenRouterConfig `mapstructure:"openrouter"`
	Gemini          GeminiConfig     `mapstructure:"gemini"`
}

// OpenRouterConfig holds OpenRouter (OpenAI-compatible) configuration
type OpenRouterConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Referer string        `mapstructure:"referer"`
	Title   string        `mapstructure:"title"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Extract holds candidate extraction configuration
type Extract struct {
	Limit int `mapstructure:"limit"`
}

// Parser holds response parsing configuration
type Parser struct {
	ScanMode string `mapstructure:"scan_mode"` // first or balanced
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server holds HTTP presentation configuration
type Server struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Address returns host:port for the HTTP listener.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads the configuration from .env, the config file and the environment.
// An empty configFile searches for .trendy.yaml in the working directory and $HOME.
func Load(configFile string) (*Config, error) {
	return LoadWithOverrides(configFile, nil)
}

// LoadWithOverrides is Load with explicit key overrides (for example from
// command-line flags) applied before validation. Keys use viper dot notation.
func LoadWithOverrides(configFile string, overrides map[string]any) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".trendy")
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	bindEnvironmentVariables(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.App.ConfigFile = v.ConfigFileUsed()

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.city", "Riyadh")
	v.SetDefault("app.language", "ar")
	v.SetDefault("app.mode", "grounded")
	v.SetDefault("app.run_timeout", "2m")

	v.SetDefault("search.default_provider", "tavily")
	v.SetDefault("search.search_depth", "basic")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.parallel", false)
	v.SetDefault("search.providers.tavily.base_url", "https://api.tavily.com")
	v.SetDefault("search.providers.google.base_url", "https://customsearch.googleapis.com/")
	v.SetDefault("search.providers.serpapi.base_url", "https://serpapi.com/search")
	v.SetDefault("search.providers.duckduckgo.base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("search.providers.duckduckgo.user_agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")

	v.SetDefault("llm.default_provider", "openrouter")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.openrouter.model", "google/gemini-2.0-flash-exp:free")
	v.SetDefault("llm.openrouter.referer", "trendy")
	v.SetDefault("llm.openrouter.title", "trendy")
	v.SetDefault("llm.openrouter.timeout", "60s")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
	v.SetDefault("llm.gemini.timeout", "60s")

	v.SetDefault("extract.limit", 3)
	v.SetDefault("parser.scan_mode", "first")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "3m")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables(v *viper.Viper) {
	bindEnvKeys(v, "search.providers.tavily.api_key", []string{
		"TAVILY_API_KEY",
	})

	bindEnvKeys(v, "search.providers.serpapi.api_key", []string{
		"SERPAPI_API_KEY",
		"SERPAPI_KEY",
	})

	bindEnvKeys(v, "search.providers.google.api_key", []string{
		"GOOGLE_CUSTOM_SEARCH_API_KEY",
		"GOOGLE_CSE_API_KEY",
	})

	bindEnvKeys(v, "search.providers.google.search_id", []string{
		"GOOGLE_CUSTOM_SEARCH_ID",
		"GOOGLE_CSE_ID",
	})

	bindEnvKeys(v, "llm.openrouter.api_key", []string{
		"OPENROUTER_API_KEY",
	})

	bindEnvKeys(v, "llm.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys(v, "app.city", []string{
		"TRENDY_CITY",
	})

	bindEnvKeys(v, "search.default_provider", []string{
		"SEARCH_PROVIDER",
	})

	bindEnvKeys(v, "llm.default_provider", []string{
		"LLM_PROVIDER",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(v *viper.Viper, viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			v.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures required configuration is present
func validateConfig(cfg *Config) error {
	var problems []string

	if strings.TrimSpace(cfg.App.City) == "" {
		problems = append(problems, "app.city must not be empty")
	}
	if cfg.App.Language != "ar" {
		problems = append(problems, fmt.Sprintf("unsupported language %q (supported: ar)", cfg.App.Language))
	}
	switch cfg.App.Mode {
	case "grounded", "ungrounded":
	default:
		problems = append(problems, fmt.Sprintf("unknown mode %q (supported: grounded, ungrounded)", cfg.App.Mode))
	}

	// Search credentials only matter when the run will actually search.
	if cfg.App.Mode == "grounded" {
		switch cfg.Search.DefaultProvider {
		case "tavily":
			if cfg.Search.Providers.Tavily.APIKey == "" {
				problems = append(problems, "Tavily requires an API key. Set TAVILY_API_KEY")
			}
		case "serpapi":
			if cfg.Search.Providers.SerpAPI.APIKey == "" {
				problems = append(problems, "SerpAPI requires an API key. Set SERPAPI_API_KEY")
			}
		case "google":
			if cfg.Search.Providers.Google.APIKey == "" || cfg.Search.Providers.Google.SearchID == "" {
				problems = append(problems, "Google Custom Search requires both API key and Search ID. Set GOOGLE_CUSTOM_SEARCH_API_KEY and GOOGLE_CUSTOM_SEARCH_ID")
			}
		case "duckduckgo", "mock":
		default:
			problems = append(problems, fmt.Sprintf("Unknown search provider: %s. Supported: tavily, serpapi, google, duckduckgo, mock", cfg.Search.DefaultProvider))
		}
	}

	switch cfg.LLM.DefaultProvider {
	case "openrouter":
		if cfg.LLM.OpenRouter.APIKey == "" {
			problems = append(problems, "OpenRouter requires an API key. Set OPENROUTER_API_KEY")
		}
	case "gemini":
		if cfg.LLM.Gemini.APIKey == "" {
			problems = append(problems, "Gemini requires an API key. Set GEMINI_API_KEY")
		}
	case "mock":
	default:
		problems = append(problems, fmt.Sprintf("Unknown LLM provider: %s. Supported: openrouter, gemini, mock", cfg.LLM.DefaultProvider))
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		problems = append(problems, fmt.Sprintf("llm.temperature must be within [0, 2], got %v", cfg.LLM.Temperature))
	}
	if cfg.Extract.Limit <= 0 {
		problems = append(problems, "extract.limit must be positive")
	}
	switch cfg.Parser.ScanMode {
	case "first", "balanced":
	default:
		problems = append(problems, fmt.Sprintf("unknown parser.scan_mode %q (supported: first, balanced)", cfg.Parser.ScanMode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalidConfig, strings.Join(problems, "\n- "))
	}

	return nil
}
