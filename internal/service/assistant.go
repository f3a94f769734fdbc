package service

import (
	"context"
	"time"

	"github.com/deppfellow/registry/internal/assistant"
	"github.com/deppfellow/registry/internal/config"
	"github.com/deppfellow/registry/internal/errs"
	"github.com/deppfellow/registry/internal/lib/llm"
	"github.com/deppfellow/registry/internal/metrics"
)

// AssistantService answers free-text questions with a tool-using agent.
//
// Nothing is shared between runs: every Chat builds a fresh model client,
// dials the tool endpoint, lists the tools and runs one agent.
type AssistantService struct {
	cfg     config.AssistantConfig
	metrics *metrics.Metrics

	newModel func(ctx context.Context, cfg config.AssistantConfig) (llm.ChatModel, error)
	dial     func(ctx context.Context, url string) (assistant.Toolbox, error)
}

func NewAssistantService(cfg config.AssistantConfig, m *metrics.Metrics) *AssistantService {
	return &AssistantService{
		cfg:      cfg,
		metrics:  m,
		newModel: llm.New,
		dial: func(ctx context.Context, url string) (assistant.Toolbox, error) {
			return assistant.Dial(ctx, url)
		},
	}
}

// Chat runs the agent once on message and returns its final reply.
// Any failure to reach the model or the tools is a 502 carrying the
// underlying error text.
func (s *AssistantService) Chat(ctx context.Context, message string) (string, error) {
	start := time.Now()
	reply, err := s.run(ctx, message)

	if s.metrics != nil {
		s.metrics.ObserveAgentRun(time.Since(start), err)
	}
	if err != nil {
		return "", errs.NewBadGatewayError(err.Error())
	}

	logFor(ctx).Info().
		Dur("duration", time.Since(start)).
		Msg("assistant replied")

	return reply, nil
}

func (s *AssistantService) run(ctx context.Context, message string) (string, error) {
	model, err := s.newModel(ctx, s.cfg)
	if err != nil {
		return "", err
	}

	tools, err := s.dial(ctx, s.cfg.ToolsURL)
	if err != nil {
		return "", err
	}
	defer tools.Close()

	agent := assistant.NewAgent(model, tools,
		assistant.WithSystemPrompt(s.cfg.SystemPrompt),
		assistant.WithMaxSteps(s.cfg.MaxSteps),
	)
	return agent.Run(ctx, message)
}
