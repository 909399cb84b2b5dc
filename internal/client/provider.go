package client

import (
	"context"

	"github.com/medvox-ai/intake-pipeline/internal/types"
)

//go:generate mockgen -source=provider.go -destination=mocks/provider_mock.go -package=mocks

// CompletionProvider is a text-in, text-out model endpoint.
type CompletionProvider interface {
	// Complete sends a prompt and returns the raw generated text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// CallSessionProvider creates live voice interview sessions.
type CallSessionProvider interface {
	// CreateCall starts a new agent call and returns its join details.
	CreateCall(ctx context.Context) (*types.InitiateIntakeResponse, error)
}
