package config

// SummarizerConfig holds the JSON-summarizer provider settings
type SummarizerConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	TimeoutSec int
}

// AnalysisConfig holds the clinical-analysis provider settings
type AnalysisConfig struct {
	EndpointURL string
	APIToken    string
	TimeoutSec  int
}

// VoiceSessionConfig holds the voice call-session provider settings
type VoiceSessionConfig struct {
	BaseURL    string
	APIKey     string
	AgentID    string
	TimeoutSec int
}

// RedisConfig holds Redis configuration. A non-empty Addr switches the
// session cooldown to the shared Redis gate.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config holds the optional object-store target for archived records
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ArchiveConfig holds intake-record archiving configuration
type ArchiveConfig struct {
	Enabled         bool
	Dir             string
	ScanIntervalSec int
	S3              S3Config
}

// Config holds all service configuration
type Config struct {
	// Server configuration
	Host     string
	Port     int
	LogLevel string

	// CORS origins permitted to call the API
	AllowedOrigins []string

	// Upstream providers
	Summarizer   SummarizerConfig
	Analysis     AnalysisConfig
	VoiceSession VoiceSessionConfig

	// Minimum interval between successful session initiations
	CooldownSec int

	Redis   RedisConfig
	Archive ArchiveConfig
}
