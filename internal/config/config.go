package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Match     MatchConfig     `mapstructure:"match"`
	Phrase    PhraseConfig    `mapstructure:"phrase"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Photo     PhotoConfig     `mapstructure:"photo"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Outbound  OutboundConfig  `mapstructure:"outbound"`
}

type TelegramConfig struct {
	Token          string `mapstructure:"token"`
	PollingTimeout int    `mapstructure:"polling_timeout"`
	Debug          bool   `mapstructure:"debug"`
}

// ServerConfig configures the keep-alive HTTP server.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MatchConfig holds the fuzzy-matching thresholds. The source revisions
// disagree on exact cutoffs, so they are tunable here.
type MatchConfig struct {
	NameCutoff      float64 `mapstructure:"name_cutoff"`
	NameAcceptRatio float64 `mapstructure:"name_accept_ratio"`
	DescCutoff      float64 `mapstructure:"desc_cutoff"`
}

type PhraseConfig struct {
	TextGenURL     string        `mapstructure:"text_gen_url"`
	ProfanityURL   string        `mapstructure:"profanity_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Retries        int           `mapstructure:"retries"`
	MaxLength      int           `mapstructure:"max_length"`
	HistorySize    int           `mapstructure:"history_size"`
	UserTTL        time.Duration `mapstructure:"user_ttl"`
	MaxUsers       int           `mapstructure:"max_users"`
	CheckProfanity bool          `mapstructure:"check_profanity"`
}

type AudioConfig struct {
	TTSURL       string         `mapstructure:"tts_url"`
	Voice        string         `mapstructure:"voice"`
	Timeout      time.Duration  `mapstructure:"timeout"`
	Retries      int            `mapstructure:"retries"`
	MinBytes     int64          `mapstructure:"min_bytes"`
	TempDir      string         `mapstructure:"temp_dir"`
	CleanupDelay time.Duration  `mapstructure:"cleanup_delay"`
	EffectGap    time.Duration  `mapstructure:"effect_gap"`
	Effects      []EffectConfig `mapstructure:"effects"`
}

// EffectConfig is a primary+fallback URL pair for one sound-effect clip.
type EffectConfig struct {
	URL      string `mapstructure:"url"`
	Fallback string `mapstructure:"fallback"`
}

type PhotoConfig struct {
	AssistantURL    string        `mapstructure:"assistant_url"`
	AssistantModel  string        `mapstructure:"assistant_model"`
	AssistantAPIKey string        `mapstructure:"assistant_api_key"`
	ScrapeURL       string        `mapstructure:"scrape_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MinBytes        int64         `mapstructure:"min_bytes"`
	MinWidth        int           `mapstructure:"min_width"`
	MinHeight       int           `mapstructure:"min_height"`
}

type RateLimitConfig struct {
	Window      time.Duration `mapstructure:"window"`
	MaxRequests int           `mapstructure:"max_requests"`
	FirstBan    time.Duration `mapstructure:"first_ban"`
	RepeatBan   time.Duration `mapstructure:"repeat_ban"`
	UserTTL     time.Duration `mapstructure:"user_ttl"`
}

// OutboundConfig bounds concurrent calls to third-party endpoints.
type OutboundConfig struct {
	MaxConcurrent int64 `mapstructure:"max_concurrent"`
}

// Load reads configuration from file and environment.
// Parameters:
//   - configPath: explicit config file path; empty searches ./configs and cwd.
// Returns:
//   - *Config: populated configuration.
//   - error: non-nil on unreadable config or missing Telegram token.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	v.BindEnv("photo.assistant_api_key", "ASSISTANT_API_KEY")
	v.BindEnv("server.port", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A bot without a token cannot start at all.
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is not set (TELEGRAM_TOKEN)")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.polling_timeout", 60)
	v.SetDefault("telegram.debug", false)

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("catalog.path", "./data/memes.json")

	v.SetDefault("match.name_cutoff", 0.3)
	v.SetDefault("match.name_accept_ratio", 0.6)
	v.SetDefault("match.desc_cutoff", 0.5)

	v.SetDefault("phrase.text_gen_url", "https://text.pollinations.ai")
	v.SetDefault("phrase.profanity_url", "https://www.purgomalum.com/service/containsprofanity")
	v.SetDefault("phrase.timeout", 15*time.Second)
	v.SetDefault("phrase.retries", 3)
	v.SetDefault("phrase.max_length", 100)
	v.SetDefault("phrase.history_size", 20)
	v.SetDefault("phrase.user_ttl", 24*time.Hour)
	v.SetDefault("phrase.max_users", 10000)
	v.SetDefault("phrase.check_profanity", true)

	v.SetDefault("audio.tts_url", "https://text.pollinations.ai")
	v.SetDefault("audio.voice", "echo")
	v.SetDefault("audio.timeout", 30*time.Second)
	v.SetDefault("audio.retries", 3)
	v.SetDefault("audio.min_bytes", 1000)
	v.SetDefault("audio.temp_dir", "./meme_audios")
	v.SetDefault("audio.cleanup_delay", 2*time.Second)
	v.SetDefault("audio.effect_gap", 300*time.Millisecond)
	v.SetDefault("audio.effects", []map[string]interface{}{})

	v.SetDefault("photo.assistant_url", "https://api.openai.com/v1")
	v.SetDefault("photo.assistant_model", "gpt-4o-mini")
	v.SetDefault("photo.scrape_url", "https://duckduckgo.com/html/")
	v.SetDefault("photo.timeout", 15*time.Second)
	v.SetDefault("photo.min_bytes", 5000)
	v.SetDefault("photo.min_width", 200)
	v.SetDefault("photo.min_height", 200)

	v.SetDefault("rate_limit.window", 10*time.Second)
	v.SetDefault("rate_limit.max_requests", 5)
	v.SetDefault("rate_limit.first_ban", 60*time.Second)
	v.SetDefault("rate_limit.repeat_ban", 300*time.Second)
	v.SetDefault("rate_limit.user_ttl", 24*time.Hour)

	v.SetDefault("outbound.max_concurrent", 4)
}
