package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
)

// Environment variable names kept compatible with the existing deployment.
const (
	envSummarizerKey   = "GEMINI_API_KEY"
	envSummarizerModel = "AI2_GEMINI_MODEL_NAME"
	envAnalysisToken   = "HF_API_TOKEN"
	envAnalysisURL     = "AI3_HF_ENDPOINT_URL"
	envVoiceKey        = "ULTRAVOX_API_KEY"
	envVoiceAgentID    = "ULTRAVOX_AGENT_ID"
	envAllowedOrigins  = "ALLOWED_ORIGINS"
	envRedisAddr       = "REDIS_ADDR"
	envPort            = "PORT"
)

const (
	defaultSummarizerBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultSummarizerModel   = "gemini-2.5-flash-preview-05-20"
	defaultVoiceBaseURL      = "https://api.ultravox.ai/api"
	defaultVoiceAgentID      = "fb42f359-003c-4875-b1a1-06c4c1c87376"
)

// Load reads configuration from an optional YAML file and the environment,
// applies defaults, and validates that required credentials are present.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			logger.Info("config file not found, using environment only")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	c.AllowedOrigins = resolveAllowedOrigins(c.AllowedOrigins)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// MustLoad loads configuration and panics if there's an error
func MustLoad(configPath string) Config {
	c, err := Load(configPath)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return c
}

// Validate refuses to start without the credentials every pipeline stage
// depends on.
func (c Config) Validate() error {
	var missing []string
	if c.Summarizer.APIKey == "" {
		missing = append(missing, envSummarizerKey)
	}
	if c.Analysis.APIToken == "" {
		missing = append(missing, envAnalysisToken)
	}
	if c.Analysis.EndpointURL == "" {
		missing = append(missing, envAnalysisURL)
	}
	if c.VoiceSession.APIKey == "" {
		missing = append(missing, envVoiceKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("required configuration missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("loglevel", "info")

	v.SetDefault("summarizer.baseurl", defaultSummarizerBaseURL)
	v.SetDefault("summarizer.model", defaultSummarizerModel)
	v.SetDefault("summarizer.timeoutsec", 180)

	v.SetDefault("analysis.timeoutsec", 120)

	v.SetDefault("voicesession.baseurl", defaultVoiceBaseURL)
	v.SetDefault("voicesession.agentid", defaultVoiceAgentID)
	v.SetDefault("voicesession.timeoutsec", 20)

	v.SetDefault("cooldownsec", 5)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.dir", "logs/intake")
	v.SetDefault("archive.scanintervalsec", 60)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("summarizer.apikey", envSummarizerKey)
	_ = v.BindEnv("summarizer.model", envSummarizerModel)
	_ = v.BindEnv("analysis.apitoken", envAnalysisToken)
	_ = v.BindEnv("analysis.endpointurl", envAnalysisURL)
	_ = v.BindEnv("voicesession.apikey", envVoiceKey)
	_ = v.BindEnv("voicesession.agentid", envVoiceAgentID)
	_ = v.BindEnv("redis.addr", envRedisAddr)
	_ = v.BindEnv("port", envPort)
}

// resolveAllowedOrigins applies the deployment's CORS contract: an unset or
// empty variable falls back to the local development defaults (or the config
// file's list), while a variable set to only separators means no origins at
// all.
func resolveAllowedOrigins(fromFile []string) []string {
	raw, ok := os.LookupEnv(envAllowedOrigins)
	if !ok || raw == "" {
		if len(fromFile) > 0 {
			return fromFile
		}
		return defaultAllowedOrigins()
	}

	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		logger.Warn("ALLOWED_ORIGINS was set but contained no valid origins; CORS will allow none")
		return []string{}
	}
	return origins
}

func defaultAllowedOrigins() []string {
	return []string{
		"http://localhost:3000",
		"http://localhost:8081",
		"http://localhost:5173",
	}
}
