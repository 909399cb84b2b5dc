package svc

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medvox-ai/intake-pipeline/internal/client"
	"github.com/medvox-ai/intake-pipeline/internal/config"
	"github.com/medvox-ai/intake-pipeline/internal/cooldown"
	"github.com/medvox-ai/intake-pipeline/internal/service"
	"github.com/medvox-ai/intake-pipeline/internal/utils"
)

// ServiceContext holds all service dependencies
type ServiceContext struct {
	Config config.Config

	// Clients
	Summarizer   client.CompletionProvider
	Analysis     client.CompletionProvider
	VoiceSession client.CallSessionProvider

	// Session initiation rate limit
	CooldownGate cooldown.Gate

	// Services
	Archiver       service.RecordArchiver
	MetricsService service.MetricsInterface

	// Utilities
	TokenCounter *utils.TokenCounter
}

// NewServiceContext creates a new service context with all dependencies
func NewServiceContext(c config.Config) *ServiceContext {
	// Initialize token counter
	tokenCounter, err := utils.NewTokenCounter()
	if err != nil {
		// Fall back to simple estimation if tiktoken fails
		tokenCounter = nil
	}

	// Initialize metrics service on the default registry
	metricsService := service.NewMetricsService(nil)

	// Initialize the cooldown gate. A configured Redis address switches to
	// the shared gate so the cooldown holds across replicas.
	window := time.Duration(c.CooldownSec) * time.Second
	var gate cooldown.Gate
	if c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		gate = cooldown.NewRedisGate(rdb, window)
	} else {
		gate = cooldown.NewMemoryGate(window)
	}

	// Initialize the record archiver
	var archiver service.RecordArchiver
	if c.Archive.Enabled {
		var store client.ObjectStore
		if c.Archive.S3.Endpoint != "" {
			minioStore, err := client.NewMinioStore(c.Archive.S3)
			if err != nil {
				panic("Failed to create object store client: " + err.Error())
			}
			store = minioStore
		}

		archiveService := service.NewArchiveService(c.Archive, store)
		archiveService.SetMetricsService(metricsService)
		if err := archiveService.Start(); err != nil {
			panic("Failed to start archive service: " + err.Error())
		}
		archiver = archiveService
	}

	return &ServiceContext{
		Config:         c,
		Summarizer:     client.NewGeminiClient(c.Summarizer),
		Analysis:       client.NewHuggingFaceClient(c.Analysis),
		VoiceSession:   client.NewUltravoxClient(c.VoiceSession),
		CooldownGate:   gate,
		Archiver:       archiver,
		MetricsService: metricsService,
		TokenCounter:   tokenCounter,
	}
}

// Stop gracefully stops all services
func (svc *ServiceContext) Stop() {
	if svc.Archiver != nil {
		svc.Archiver.Stop()
	}
}
